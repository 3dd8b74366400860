package main

//ComputeLBDLits computes the literal block distance over lits, the number of
//distinct decision levels among them. The permDiff array is stamped with a
//monotonically increasing flag so nothing has to be cleared between calls.
//In incremental mode selector variables are skipped and at most `end`
//non-selector literals are counted; pass end = -1 for all of them.
func (s *Solver) ComputeLBDLits(lits []Lit, end int) int {
	nbLevels := 0
	s.lbdFlag++
	if s.incremental {
		if end == -1 {
			end = len(lits)
		}
		nbDone := 0
		for i := 0; i < len(lits); i++ {
			if nbDone >= end {
				break
			}
			if s.isSelector(lits[i].Var()) {
				continue
			}
			nbDone++
			l := s.Level(lits[i].Var())
			if s.permDiff[l] != s.lbdFlag {
				s.permDiff[l] = s.lbdFlag
				nbLevels++
			}
		}
		return nbLevels
	}
	for i := 0; i < len(lits); i++ {
		l := s.Level(lits[i].Var())
		if s.permDiff[l] != s.lbdFlag {
			s.permDiff[l] = s.lbdFlag
			nbLevels++
		}
	}
	return nbLevels
}

//ComputeLBDClause computes the literal block distance for a clause
func (s *Solver) ComputeLBDClause(c *Clause) int {
	nbLevels := 0
	s.lbdFlag++
	if s.incremental {
		nbDone := 0
		for i := 0; i < c.Size(); i++ {
			if nbDone >= c.SizeWithoutSelectors() {
				break
			}
			if s.isSelector(c.At(i).Var()) {
				continue
			}
			nbDone++
			l := s.Level(c.At(i).Var())
			if s.permDiff[l] != s.lbdFlag {
				s.permDiff[l] = s.lbdFlag
				nbLevels++
			}
		}
		return nbLevels
	}
	for i := 0; i < c.Size(); i++ {
		l := s.Level(c.At(i).Var())
		if s.permDiff[l] != s.lbdFlag {
			s.permDiff[l] = s.lbdFlag
			nbLevels++
		}
	}
	return nbLevels
}

//LBD returns a value of the Literal block distance for a clause
func (c *Clause) LBD() int {
	return c.header.Lbd
}

//SetLBD sets the literal block distance for a clause
func (c *Clause) SetLBD(lbd int) {
	c.header.Lbd = lbd
}
