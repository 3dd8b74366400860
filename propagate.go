package main

import (
	"fmt"
)

//Propagate propagates all enqueued facts. If a conflict arises, the
//conflicting clause is returned, otherwise ClaRefUndef. The propagation queue
//is empty afterwards, even if there was a conflict.
func (s *Solver) Propagate() ClauseReference {
	confl := ClaRefUndef
	numProps := uint64(0)
	s.Watches.CleanAll(s.ClaAllocator)
	s.WatchesBin.CleanAll(s.ClaAllocator)
	s.UnaryWatches.CleanAll(s.ClaAllocator)

	for s.Qhead < len(s.Trail) {
		p := s.Trail[s.Qhead] //'p' is enqueued fact to propagate.
		s.Qhead++
		numProps++

		//First, propagate binary clauses
		wbin := *s.WatchesBin.Lookup(p)
		for k := 0; k < len(wbin); k++ {
			imp := wbin[k].blocker
			if s.ValueLit(imp) == LitBoolFalse {
				s.Statistics.PropagationCount += numProps
				s.simpDBProps -= int64(numProps)
				s.Qhead = len(s.Trail)
				return wbin[k].claRef
			}
			if s.ValueLit(imp) == LitBoolUndef {
				s.UncheckedEnqueue(imp, wbin[k].claRef)
			}
		}

		//Now propagate other 2-watched clauses
		ws := s.Watches.Lookup(p)
		lastIdx := 0
		copiedIdx := 0
		for lastIdx < len(*ws) {
			watcher := (*ws)[lastIdx]
			blocker := watcher.blocker

			// Try to avoid inspecting the clause.
			if s.ValueLit(blocker) == LitBoolTrue {
				(*ws)[copiedIdx] = (*ws)[lastIdx]
				lastIdx++
				copiedIdx++
				continue
			}

			// Make sure the false literal is data[1]
			cr := watcher.claRef
			clause := s.ClaAllocator.GetClause(cr)
			if clause.OneWatched() {
				panic(fmt.Errorf("A one-watched clause is in the two-watched lists: %d", cr))
			}
			falseLit := p.Flip()
			if clause.At(0) == falseLit {
				clause.Data[0], clause.Data[1] = clause.Data[1], falseLit
			}
			if clause.At(1) != falseLit {
				panic(fmt.Errorf("The 1th literal is not falseLit: %v %v", clause.At(1), falseLit))
			}
			lastIdx++

			// If 0th watch is true, then clause is already satisfied
			firstLit := clause.At(0)
			w := NewWatcher(cr, firstLit)
			if firstLit != blocker && s.ValueLit(firstLit) == LitBoolTrue {
				(*ws)[copiedIdx] = w
				copiedIdx++
				continue
			}

			// Look for new watch:
			if s.incremental {
				//In incremental mode a true or non-selector literal is
				//preferred while the assumption prefix is being explored
				chosenPos := -1
				for k := 2; k < clause.Size(); k++ {
					if s.ValueLit(clause.At(k)) != LitBoolFalse {
						if s.decisionLevel() > len(s.Assumptions) {
							chosenPos = k
							break
						}
						chosenPos = k
						if s.ValueLit(clause.At(k)) == LitBoolTrue || !s.isSelector(clause.At(k).Var()) {
							break
						}
					}
				}
				if chosenPos != -1 {
					clause.Data[1], clause.Data[chosenPos] = clause.Data[chosenPos], falseLit
					s.Watches.Append(clause.At(1).Flip(), w)
					continue
				}
			} else {
				foundWatch := false
				for k := 2; k < clause.Size(); k++ {
					if s.ValueLit(clause.At(k)) != LitBoolFalse {
						clause.Data[1], clause.Data[k] = clause.Data[k], falseLit
						s.Watches.Append(clause.At(1).Flip(), w)
						foundWatch = true
						break
					}
				}
				if foundWatch {
					continue
				}
			}

			// Did not find watch -- clause is unit under assignment:
			(*ws)[copiedIdx] = w
			copiedIdx++
			if s.ValueLit(firstLit) == LitBoolFalse {
				confl = cr
				s.Qhead = len(s.Trail)
				//Copy the remaining watches:
				for lastIdx < len(*ws) {
					(*ws)[copiedIdx] = (*ws)[lastIdx]
					lastIdx++
					copiedIdx++
				}
			} else {
				s.UncheckedEnqueue(firstLit, cr)
			}
		}
		*ws = (*ws)[:copiedIdx]

		if s.useUnaryWatched && confl == ClaRefUndef {
			confl = s.propagateUnaryWatches(p)
		}
	}

	s.Statistics.PropagationCount += numProps
	s.simpDBProps -= int64(numProps)
	return confl
}

//propagateUnaryWatches propagates the one-watched purgatory clauses of p and
//returns a conflict, otherwise ClaRefUndef. A conflicting purgatory clause is
//promoted to the two-watched scheme so that it propagates correctly after the
//coming backtrack.
func (s *Solver) propagateUnaryWatches(p Lit) ClauseReference {
	confl := ClaRefUndef
	promote := ClaRefUndef
	falseLit := p.Flip()

	ws := s.UnaryWatches.Lookup(p)
	lastIdx := 0
	copiedIdx := 0
	for lastIdx < len(*ws) {
		watcher := (*ws)[lastIdx]
		blocker := watcher.blocker
		if s.ValueLit(blocker) == LitBoolTrue {
			(*ws)[copiedIdx] = (*ws)[lastIdx]
			lastIdx++
			copiedIdx++
			continue
		}

		cr := watcher.claRef
		clause := s.ClaAllocator.GetClause(cr)
		if !clause.OneWatched() {
			panic(fmt.Errorf("A two-watched clause is in the purgatory: %d", cr))
		}
		if clause.At(0) != falseLit {
			//this is a unary watch, there is no other choice once propagated
			panic(fmt.Errorf("The 0th literal is not falseLit: %v %v", clause.At(0), falseLit))
		}
		lastIdx++

		w := NewWatcher(cr, clause.At(0))
		found := false
		for k := 1; k < clause.Size(); k++ {
			if s.ValueLit(clause.At(k)) != LitBoolFalse {
				clause.Data[0], clause.Data[k] = clause.Data[k], falseLit
				s.UnaryWatches.Append(clause.At(0).Flip(), w)
				found = true
				break
			}
		}
		if found {
			continue
		}

		// Did not find watch -- clause is falsified under the assignment:
		(*ws)[copiedIdx] = w
		copiedIdx++
		confl = cr
		s.Qhead = len(s.Trail)
		//Copy the remaining watches:
		for lastIdx < len(*ws) {
			(*ws)[copiedIdx] = (*ws)[lastIdx]
			lastIdx++
			copiedIdx++
		}
		if s.promoteOneWatched {
			promote = cr
		}
	}
	*ws = (*ws)[:copiedIdx]

	if promote != ClaRefUndef {
		s.promoteClause(promote)
	}
	return confl
}

//promoteClause moves a conflicting purgatory clause into the two-watched
//scheme. The two deepest-level literals become the watched pair so the clause
//propagates correctly after backtracking.
func (s *Solver) promoteClause(cr ClauseReference) {
	clause := s.ClaAllocator.GetClause(cr)
	s.Statistics.PromotedCount++
	maxLevel := -1
	index := -1
	for k := 1; k < clause.Size(); k++ {
		if s.ValueLit(clause.At(k)) != LitBoolFalse {
			panic(fmt.Errorf("A literal of a conflicting clause is not false: %v", clause.At(k)))
		}
		if s.Level(clause.At(k).Var()) > maxLevel {
			index = k
			maxLevel = s.Level(clause.At(k).Var())
		}
	}
	s.detachClausePurgatory(cr, true)
	if index == -1 {
		panic(fmt.Errorf("No watch candidate in the promoted clause: %d", cr))
	}
	clause.Data[1], clause.Data[index] = clause.Data[index], clause.Data[1]
	clause.SetOneWatched(false)
	s.attachClause(cr)
}
