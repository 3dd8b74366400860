package main

import (
	"github.com/sirupsen/logrus"
)

//checkGarbage triggers a collection once the wasted storage exceeds the
//configured fraction of the arena
func (s *Solver) checkGarbage() {
	if float64(s.ClaAllocator.Wasted()) > float64(s.ClaAllocator.Size())*s.opts.GarbageFrac {
		s.garbageCollect()
	}
}

//garbageCollect relocates every live clause into a fresh allocator and swaps
//it in. Must only run at decision level 0 or right after a deletion pass.
func (s *Solver) garbageCollect() {
	to := NewClauseAllocator()
	s.relocAll(to)
	logrus.WithFields(logrus.Fields{
		"before": s.ClaAllocator.Size(),
		"after":  to.Size(),
	}).Debug("garbage collection")
	s.ClaAllocator = to
}

func (s *Solver) relocAll(to *ClauseAllocator) {
	//The lists must not hold references to deleted clauses while relocating
	s.Watches.CleanAll(s.ClaAllocator)
	s.WatchesBin.CleanAll(s.ClaAllocator)
	s.UnaryWatches.CleanAll(s.ClaAllocator)

	// All watchers:
	for v := 0; v < s.NumVars(); v++ {
		for sign := 0; sign < 2; sign++ {
			p := *NewLit(Var(v), sign == 1)
			for _, watcher := range *s.Watches.Lookup(p) {
				watcher.claRef = s.ClaAllocator.Reloc(watcher.claRef, to)
			}
			for _, watcher := range *s.WatchesBin.Lookup(p) {
				watcher.claRef = s.ClaAllocator.Reloc(watcher.claRef, to)
			}
			for _, watcher := range *s.UnaryWatches.Lookup(p) {
				watcher.claRef = s.ClaAllocator.Reloc(watcher.claRef, to)
			}
		}
	}

	// All reasons:
	for _, l := range s.Trail {
		v := l.Var()
		r := s.Reason(v)
		if r == ClaRefUndef {
			continue
		}
		c := s.ClaAllocator.GetClause(r)
		if c.Reloced() || s.locked(c) {
			s.VarData[v].Reason = s.ClaAllocator.Reloc(r, to)
		}
	}

	// All learnt:
	for i := range s.LearntClauses {
		s.LearntClauses[i] = s.ClaAllocator.Reloc(s.LearntClauses[i], to)
	}
	// All original:
	for i := range s.Clauses {
		s.Clauses[i] = s.ClaAllocator.Reloc(s.Clauses[i], to)
	}
	// The purgatory:
	for i := range s.UnaryWatchedClauses {
		s.UnaryWatchedClauses[i] = s.ClaAllocator.Reloc(s.UnaryWatchedClauses[i], to)
	}
}
