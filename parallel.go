package main

//Hook points for multi-worker clause exchange. The core is single threaded
//and keeps them empty; a parallel front-end overrides the behavior by
//embedding the solver.

func (s *Solver) panicModeIsEnabled() bool {
	return false
}

func (s *Solver) parallelImportUnaryClauses() {
}

//parallelImportClauses returns true when an imported clause makes the
//instance unsatisfiable
func (s *Solver) parallelImportClauses() bool {
	return false
}

func (s *Solver) parallelExportUnaryClause(p Lit) {
}

func (s *Solver) parallelExportClauseDuringSearch(c *Clause) {
}

//parallelJobIsFinished reports whether another job has finished so that the
//search can quit
func (s *Solver) parallelJobIsFinished() bool {
	return false
}

func (s *Solver) parallelImportClauseDuringConflictAnalysis(c *Clause, confl ClauseReference) {
}
