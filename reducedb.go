package main

import (
	"sort"

	"github.com/sirupsen/logrus"
)

//reduceDBLess orders learnt clauses worst first: binary clauses sort last,
//then larger LBD first, then smaller activity first
func reduceDBLess(x, y *Clause) bool {
	if x.Size() > 2 && y.Size() == 2 {
		return true
	}
	if y.Size() > 2 && x.Size() == 2 {
		return false
	}
	if x.Size() == 2 && y.Size() == 2 {
		return false
	}
	if x.LBD() > y.LBD() {
		return true
	}
	if x.LBD() < y.LBD() {
		return false
	}
	return x.Activity() < y.Activity()
}

//reduceDB removes half of the learnt clauses, minus the clauses locked by the
//current assignment. Binary clauses and clauses of LBD <= 2 are never removed.
func (s *Solver) reduceDB() {
	s.Statistics.ReduceDBCount++

	sort.Slice(s.LearntClauses, func(i, j int) bool {
		return reduceDBLess(s.ClaAllocator.GetClause(s.LearntClauses[i]), s.ClaAllocator.GetClause(s.LearntClauses[j]))
	})

	//Lots of "good" clauses are hard to compare, keep more of them
	if s.ClaAllocator.GetClause(s.LearntClauses[len(s.LearntClauses)/RatioRemoveClauses]).LBD() <= 3 {
		s.nbClausesBeforeReduce += uint64(s.opts.SpecialIncReduceDB)
	}
	if s.ClaAllocator.GetClause(s.LearntClauses[len(s.LearntClauses)-1]).LBD() <= 5 {
		s.nbClausesBeforeReduce += uint64(s.opts.SpecialIncReduceDB)
	}

	limit := len(s.LearntClauses) / 2
	removed := uint64(0)
	copiedIdx := 0
	for i := 0; i < len(s.LearntClauses); i++ {
		claRef := s.LearntClauses[i]
		c := s.ClaAllocator.GetClause(claRef)
		if c.LBD() > 2 && c.Size() > 2 && c.CanBeDeleted() && !s.locked(c) && i < limit {
			s.removeClause(claRef, false)
			removed++
		} else {
			if !c.CanBeDeleted() {
				//c was spared, another clause may go in its place
				limit++
			}
			c.SetCanBeDeleted(true)
			s.LearntClauses[copiedIdx] = claRef
			copiedIdx++
		}
	}
	s.LearntClauses = s.LearntClauses[:copiedIdx]
	s.Statistics.RemovedClauseCount += removed

	logrus.WithFields(logrus.Fields{
		"removed":   removed,
		"remaining": len(s.LearntClauses),
		"next":      s.nbClausesBeforeReduce,
	}).Debug("reduced the learnt clause database")

	s.checkGarbage()
}
