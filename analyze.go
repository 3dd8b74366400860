package main

import (
	"fmt"

	"github.com/k0kubun/pp"
)

//abstractLevel maps a decision level onto one bit of a 32-bit fingerprint
func (s *Solver) abstractLevel(x Var) uint32 {
	return 1 << (uint32(s.Level(x)) & 31)
}

//Analyze analyzes the conflict and produces a First-UIP reason clause.
//
//Pre-conditions:
//  - learntClause and selectors are empty
//  - the current decision level is greater than the root level
//
//Post-conditions:
//  - learntClause[0] is the asserting literal at level backTrackLevel
//  - if len(learntClause) > 1 then learntClause[1] has the greatest decision
//    level of the rest of literals
func (s *Solver) Analyze(confl ClauseReference, learntClause, selectors []Lit) ([]Lit, []Lit, int, int, int) {
	pathConflict := 0
	p := Lit{X: LitUndef}
	idx := len(s.Trail) - 1

	learntClause = append(learntClause, p) //(leave room for the asserting literal)
	for {
		if confl == ClaRefUndef {
			pp.Println(s.VarData[p.Var()], p.Var(), s.decisionLevel(), s.ValueLit(p), pathConflict)
			panic("The conflict doesn't point any reasons")
		}
		conflClause := s.ClaAllocator.GetClause(confl)

		//Binary clauses keep the currently true literal first
		if p.X != LitUndef && conflClause.Size() == 2 && s.ValueLit(conflClause.At(0)) == LitBoolFalse {
			if s.ValueLit(conflClause.At(1)) != LitBoolTrue {
				panic(fmt.Errorf("The 1th literal of a binary reason is not true: %v", conflClause.At(1)))
			}
			conflClause.Data[0], conflClause.Data[1] = conflClause.Data[1], conflClause.Data[0]
		}

		if conflClause.Learnt() {
			s.parallelImportClauseDuringConflictAnalysis(conflClause, confl)
			s.clauseBumpActivity(conflClause)
		} else if !conflClause.SeenOriginal() {
			s.Statistics.OriginalClausesSeen++
			conflClause.SetSeenOriginal(true)
		}

		//DYNAMIC NBLEVEL trick: a learnt reason whose LBD improved enough is
		//protected for one reduce DB pass
		if conflClause.Learnt() && conflClause.LBD() > 2 {
			nbLevels := s.ComputeLBDClause(conflClause)
			if nbLevels+1 < conflClause.LBD() {
				if conflClause.LBD() <= s.opts.LbLBDFrozenClause {
					conflClause.SetCanBeDeleted(false)
				}
				conflClause.SetLBD(nbLevels)
			}
		}

		startIdx := 0
		if p.X != LitUndef {
			startIdx = 1
		}
		for j := startIdx; j < conflClause.Size(); j++ {
			q := conflClause.At(j)
			v := q.Var()
			if s.Seen[v] || s.Level(v) == 0 {
				continue
			}
			if !s.isSelector(v) {
				if s.Highcenter[v] && s.Statistics.DecisionCount < s.opts.DecisionWarmup {
					//Prefer variables from central communities early in the search
					s.varBumpActivityByInc(v, s.VarIncreaseRatio*s.opts.VarIncX)
				} else {
					s.varBumpActivity(v)
				}
			}
			s.Seen[v] = true
			if s.Level(v) > s.decisionLevel() {
				panic("The decision level of var is greater than the current level")
			}
			if s.Level(v) == s.decisionLevel() {
				pathConflict++
				if !s.isSelector(v) && s.Reason(v) != ClaRefUndef && s.ClaAllocator.GetClause(s.Reason(v)).Learnt() {
					s.lastDecisionLevel = append(s.lastDecisionLevel, q)
				}
			} else if s.isSelector(v) {
				if s.ValueLit(q) != LitBoolFalse {
					panic(fmt.Errorf("A selector in the resolvent is not false: %v", q))
				}
				selectors = append(selectors, q)
			} else {
				learntClause = append(learntClause, q)
			}
		}

		// Select next clause to look at:
		for !s.Seen[s.Trail[idx].Var()] {
			idx--
		}
		p = s.Trail[idx]
		idx--
		confl = s.Reason(p.Var())
		s.Seen[p.Var()] = false
		pathConflict--
		if pathConflict <= 0 {
			break
		}
	}
	learntClause[0] = p.Flip()

	learntClause = append(learntClause, selectors...)
	s.analyzeToClear = append(s.analyzeToClear[:0], learntClause...)

	//Simplify conflict clause
	switch s.opts.CcminMode {
	case 2:
		//Deep minimization: keep an abstraction of the levels involved in the
		//conflict and drop every literal whose implication ancestry stays
		//inside it
		abstractLevels := uint32(0)
		for i := 1; i < len(learntClause); i++ {
			abstractLevels |= s.abstractLevel(learntClause[i].Var())
		}
		copiedIdx := 1
		for i := 1; i < len(learntClause); i++ {
			x := learntClause[i].Var()
			if s.Reason(x) == ClaRefUndef || !s.litRedundant(learntClause[i], abstractLevels) {
				learntClause[copiedIdx] = learntClause[i]
				copiedIdx++
			}
		}
		learntClause = learntClause[:copiedIdx]
	case 1:
		copiedIdx := 1
		for i := 1; i < len(learntClause); i++ {
			x := learntClause[i].Var()
			if s.Reason(x) == ClaRefUndef {
				learntClause[copiedIdx] = learntClause[i]
				copiedIdx++
				continue
			}
			c := s.ClaAllocator.GetClause(s.Reason(x))
			startK := 1
			if c.Size() == 2 {
				startK = 0
			}
			for k := startK; k < c.Size(); k++ {
				v := c.At(k)
				if !s.Seen[v.Var()] && s.Level(v.Var()) > 0 {
					learntClause[copiedIdx] = learntClause[i]
					copiedIdx++
					break
				}
			}
		}
		learntClause = learntClause[:copiedIdx]
	}

	//Minimization with binary resolution of the asserting clause
	if !s.incremental && len(learntClause) <= s.opts.LbSizeMinimizingClause {
		learntClause = s.minimizeWithBinaryResolution(learntClause)
	}

	// Find correct backtrack level:
	backTrackLevel := 0
	if len(learntClause) > 1 {
		maxIdx := 1
		// Find the first literal assigned at the next-highest level:
		for i := 2; i < len(learntClause); i++ {
			if s.Level(learntClause[i].Var()) > s.Level(learntClause[maxIdx].Var()) {
				maxIdx = i
			}
		}
		// Swap-in this literal at index 1:
		learntClause[maxIdx], learntClause[1] = learntClause[1], learntClause[maxIdx]
		backTrackLevel = s.Level(learntClause[1].Var())
	}

	szWithoutSelectors := len(learntClause)
	if s.incremental {
		szWithoutSelectors = 0
		for i := 0; i < len(learntClause); i++ {
			if !s.isSelector(learntClause[i].Var()) {
				szWithoutSelectors++
			} else if i > 0 {
				break
			}
		}
	}

	lbd := s.ComputeLBDLits(learntClause, len(learntClause)-len(selectors))

	//UPDATEVARACTIVITY trick: bump the variables propagated by a learnt
	//clause of better LBD once more
	for _, q := range s.lastDecisionLevel {
		if s.ClaAllocator.GetClause(s.Reason(q.Var())).LBD() < lbd {
			s.varBumpActivity(q.Var())
		}
	}
	s.lastDecisionLevel = s.lastDecisionLevel[:0]

	for _, l := range s.analyzeToClear {
		s.Seen[l.Var()] = false //('seen[]' is now cleared)
	}
	for _, l := range selectors {
		s.Seen[l.Var()] = false
	}

	return learntClause, selectors, backTrackLevel, lbd, szWithoutSelectors
}

//litRedundant checks whether p can be removed from the learnt clause by a DFS
//through its reason ancestry. abstractLevels is used to abort early when the
//search reaches a level that cannot be removed later. The seen bits added by
//a failed search are rolled back before returning.
func (s *Solver) litRedundant(p Lit, abstractLevels uint32) bool {
	s.analyzeStack = s.analyzeStack[:0]
	s.analyzeStack = append(s.analyzeStack, p)
	top := len(s.analyzeToClear)
	for len(s.analyzeStack) > 0 {
		last := s.analyzeStack[len(s.analyzeStack)-1]
		if s.Reason(last.Var()) == ClaRefUndef {
			panic(fmt.Errorf("A literal on the redundancy stack has no reason: %v", last))
		}
		c := s.ClaAllocator.GetClause(s.Reason(last.Var()))
		s.analyzeStack = s.analyzeStack[:len(s.analyzeStack)-1]

		if c.Size() == 2 && s.ValueLit(c.At(0)) == LitBoolFalse {
			if s.ValueLit(c.At(1)) != LitBoolTrue {
				panic(fmt.Errorf("The 1th literal of a binary reason is not true: %v", c.At(1)))
			}
			c.Data[0], c.Data[1] = c.Data[1], c.Data[0]
		}

		for i := 1; i < c.Size(); i++ {
			q := c.At(i)
			v := q.Var()
			if s.Seen[v] || s.Level(v) == 0 {
				continue
			}
			if s.Reason(v) != ClaRefUndef && (s.abstractLevel(v)&abstractLevels) != 0 {
				s.Seen[v] = true
				s.analyzeStack = append(s.analyzeStack, q)
				s.analyzeToClear = append(s.analyzeToClear, q)
			} else {
				//Roll back the seen bits this search added
				for j := top; j < len(s.analyzeToClear); j++ {
					s.Seen[s.analyzeToClear[j].Var()] = false
				}
				s.analyzeToClear = s.analyzeToClear[:top]
				return false
			}
		}
	}
	return true
}

//minimizeWithBinaryResolution drops every literal of the learnt clause that
//is implied by a binary clause of its negated asserting literal. Only small
//clauses of small LBD are worth the scan.
func (s *Solver) minimizeWithBinaryResolution(learntClause []Lit) []Lit {
	lbd := s.ComputeLBDLits(learntClause, -1)
	p := learntClause[0].Flip()

	if lbd > s.opts.LbLBDMinimizingClause {
		return learntClause
	}
	s.lbdFlag++
	for i := 1; i < len(learntClause); i++ {
		s.permDiff[learntClause[i].Var()] = s.lbdFlag
	}

	wbin := *s.WatchesBin.Lookup(p)
	nb := 0
	for k := 0; k < len(wbin); k++ {
		imp := wbin[k].blocker
		if s.permDiff[imp.Var()] == s.lbdFlag && s.ValueLit(imp) == LitBoolTrue {
			nb++
			s.permDiff[imp.Var()] = s.lbdFlag - 1
		}
	}
	if nb == 0 {
		return learntClause
	}
	s.Statistics.MinimizedClauseCount++
	l := len(learntClause) - 1
	for i := 1; i < len(learntClause)-nb; i++ {
		if s.permDiff[learntClause[i].Var()] != s.lbdFlag {
			learntClause[l], learntClause[i] = learntClause[i], learntClause[l]
			l--
			i--
		}
	}
	return learntClause[:len(learntClause)-nb]
}

//analyzeFinal expresses the final conflict in terms of the assumptions.
//It calculates the (possibly empty) set of assumptions that led to the
//assignment of p and stores the result in s.Conflict.
func (s *Solver) analyzeFinal(p Lit) {
	s.Conflict = s.Conflict[:0]
	s.Conflict = append(s.Conflict, p)

	if s.decisionLevel() == 0 {
		return
	}
	s.Seen[p.Var()] = true

	for i := len(s.Trail) - 1; i >= s.TrailLim[0]; i-- {
		x := s.Trail[i].Var()
		if !s.Seen[x] {
			continue
		}
		if s.Reason(x) == ClaRefUndef {
			if s.Level(x) <= 0 {
				panic(fmt.Errorf("A decision at level 0 is on the trail: %v", s.Trail[i]))
			}
			s.Conflict = append(s.Conflict, s.Trail[i].Flip())
		} else {
			c := s.ClaAllocator.GetClause(s.Reason(x))
			//Binary clauses may have been swapped, look at both positions
			startJ := 1
			if c.Size() == 2 {
				startJ = 0
			}
			for j := startJ; j < c.Size(); j++ {
				if s.Level(c.At(j).Var()) > 0 {
					s.Seen[c.At(j).Var()] = true
				}
			}
		}
		s.Seen[x] = false
	}
	s.Seen[p.Var()] = false
}
