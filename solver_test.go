package main

import (
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//addClauseInts installs a clause given in DIMACS notation, creating the
//variables on the fly
func addClauseInts(s *Solver, clause []int) bool {
	lits := make([]Lit, 0, len(clause))
	for _, x := range clause {
		if x == 0 {
			panic("a DIMACS literal can not be 0")
		}
		v := x
		neg := false
		if v < 0 {
			neg = true
			v = -v
		}
		v--
		for v >= s.NumVars() {
			s.NewVar()
		}
		lits = append(lits, *NewLit(Var(v), neg))
	}
	return s.AddClause(lits)
}

func modelSatisfies(model []LitBool, clauses [][]int) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, x := range clause {
			v := x
			if v < 0 {
				v = -v
			}
			value := model[v-1]
			if (x > 0 && value == LitBoolTrue) || (x < 0 && value == LitBoolFalse) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func TestSolveEmptyFormula(t *testing.T) {
	s := NewSolver(DefaultOptions())
	assert.Equal(t, LitBoolTrue, s.Solve())
	assert.Len(t, s.Model, 0)
}

func TestSolveSingleUnit(t *testing.T) {
	s := NewSolver(DefaultOptions())
	require.True(t, addClauseInts(s, []int{1}))
	require.Equal(t, LitBoolTrue, s.Solve())
	assert.Equal(t, []LitBool{LitBoolTrue}, s.Model)
}

func TestSolveUnsatPair(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1})
	addClauseInts(s, []int{-1})
	assert.Equal(t, LitBoolFalse, s.Solve())
	assert.False(t, s.OK)
}

func TestSolveChainUnsatByPropagation(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2})
	addClauseInts(s, []int{-1, 2})
	addClauseInts(s, []int{-2})
	assert.Equal(t, LitBoolFalse, s.Solve())
}

//pigeonHole returns the clauses of PHP(pigeons, holes): every pigeon sits in
//some hole, no two pigeons share one
func pigeonHole(pigeons, holes int) [][]int {
	varOf := func(pigeon, hole int) int {
		return pigeon*holes + hole + 1
	}
	var clauses [][]int
	for i := 0; i < pigeons; i++ {
		clause := make([]int, 0, holes)
		for j := 0; j < holes; j++ {
			clause = append(clause, varOf(i, j))
		}
		clauses = append(clauses, clause)
	}
	for j := 0; j < holes; j++ {
		for i := 0; i < pigeons; i++ {
			for k := i + 1; k < pigeons; k++ {
				clauses = append(clauses, []int{-varOf(i, j), -varOf(k, j)})
			}
		}
	}
	return clauses
}

func TestSolvePigeonHole(t *testing.T) {
	s := NewSolver(DefaultOptions())
	clauses := pigeonHole(3, 2)
	require.Len(t, clauses, 9)
	for _, clause := range clauses {
		addClauseInts(s, clause)
	}
	require.Equal(t, 6, s.NumVars())

	assert.Equal(t, LitBoolFalse, s.Solve())
	assert.Greater(t, s.Statistics.ConflictCount, uint64(0))
}

func randomThreeSAT(rng *rand.Rand, nVars, nClauses int) [][]int {
	clauses := make([][]int, 0, nClauses)
	for len(clauses) < nClauses {
		clause := make([]int, 0, 3)
		for len(clause) < 3 {
			v := rng.Intn(nVars) + 1
			duplicate := false
			for _, x := range clause {
				if x == v || x == -v {
					duplicate = true
					break
				}
			}
			if duplicate {
				continue
			}
			if rng.Intn(2) == 0 {
				v = -v
			}
			clause = append(clause, v)
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func TestSolveRandomThreeSAT(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clauses := randomThreeSAT(rng, 20, 80)

	s := NewSolver(DefaultOptions())
	for _, clause := range clauses {
		if !addClauseInts(s, clause) {
			break
		}
	}
	s.SetConfBudget(100000)
	status := s.Solve()
	require.NotEqual(t, LitBoolUndef, status, "the budget must be enough for 20 variables")
	if status == LitBoolTrue {
		assert.True(t, modelSatisfies(s.Model, clauses))
	}
}

func TestSolveModelAgainstOriginalClauses(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	//clearly under the satisfiability threshold
	clauses := randomThreeSAT(rng, 30, 60)

	s := NewSolver(DefaultOptions())
	for _, clause := range clauses {
		if !addClauseInts(s, clause) {
			break
		}
	}
	status := s.Solve()
	if status == LitBoolTrue {
		require.Len(t, s.Model, 30)
		assert.True(t, modelSatisfies(s.Model, clauses))
	}
}

func TestSolveConflictBudgetExhausted(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2})
	s.SetConfBudget(0)
	assert.Equal(t, LitBoolUndef, s.Solve())

	s.BudgetOff()
	assert.Equal(t, LitBoolTrue, s.Solve())
}

func TestSolveInterrupt(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2})
	s.Interrupt()
	assert.Equal(t, LitBoolUndef, s.Solve())
	//the assignment is rewound
	assert.Equal(t, 0, s.decisionLevel())

	s.ClearInterrupt()
	assert.Equal(t, LitBoolTrue, s.Solve())
}

func TestSolveWithAssumptions(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2})

	notX0 := *NewLit(0, true)
	notX1 := *NewLit(1, true)
	require.Equal(t, LitBoolFalse, s.SolveWithAssumptions([]Lit{notX0, notX1}))
	assert.NotEmpty(t, s.Conflict)
	//the instance itself stays satisfiable
	assert.True(t, s.OK)

	require.Equal(t, LitBoolTrue, s.SolveWithAssumptions([]Lit{notX0}))
	assert.Equal(t, LitBoolFalse, s.Model[0])
	assert.Equal(t, LitBoolTrue, s.Model[1])
}

func TestIncrementalSelectors(t *testing.T) {
	s := NewSolver(DefaultOptions())
	s.SetIncrementalMode()
	s.InitNbInitialVars(1)
	x0 := s.NewVar()
	sel := s.NewVar()
	require.False(t, s.isSelector(x0))
	require.True(t, s.isSelector(sel))

	//x0 and !x0 both guarded by the selector
	require.True(t, s.AddClause([]Lit{*NewLit(x0, false), *NewLit(sel, false)}))
	require.True(t, s.AddClause([]Lit{*NewLit(x0, true), *NewLit(sel, false)}))

	//enabling the guarded clauses is unsatisfiable
	require.Equal(t, LitBoolFalse, s.SolveWithAssumptions([]Lit{*NewLit(sel, true)}))
	require.NotEmpty(t, s.Conflict)
	found := false
	for _, l := range s.Conflict {
		if l.Var() == sel {
			found = true
		}
	}
	assert.True(t, found, "the final conflict must mention the selector")
	assert.True(t, s.OK)

	//disabling them is satisfiable
	assert.Equal(t, LitBoolTrue, s.SolveWithAssumptions([]Lit{*NewLit(sel, false)}))
}

func TestCertificateOnUnsat(t *testing.T) {
	path := writeTestFile(t, "proof.out", "")
	cw, err := NewCertificateWriter(path)
	require.NoError(t, err)

	s := NewSolver(DefaultOptions())
	s.SetCertificate(cw)
	addClauseInts(s, []int{1})
	addClauseInts(s, []int{-1})
	require.Equal(t, LitBoolFalse, s.Solve())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	//the trace ends with the empty clause
	assert.Equal(t, "0", lines[len(lines)-1])
	assert.Contains(t, string(content), "d ")
}

func TestPropagateBinaryFastPath(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2})

	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(0, true), ClaRefUndef) //decide !x1
	require.Equal(t, ClaRefUndef, s.Propagate())
	assert.Equal(t, LitBoolTrue, s.ValueVar(1))
	//the propagated literal points back at the binary clause
	assert.NotEqual(t, ClaRefUndef, s.Reason(1))
	s.CancelUntil(0)
}

func TestPropagateLongClauseUnit(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2, 3})

	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(0, true), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())
	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(1, true), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())
	//x3 is forced
	assert.Equal(t, LitBoolTrue, s.ValueVar(2))

	//qhead is at the end of the trail, the propagation is complete
	assert.Equal(t, len(s.Trail), s.Qhead)
	s.CancelUntil(0)
	assert.Equal(t, 0, len(s.Trail))
}

func TestBacktrackRestoresTrail(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2, 3})
	addClauseInts(s, []int{-1, 4})

	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(0, false), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())
	level1 := len(s.Trail)
	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(1, false), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())

	s.CancelUntil(1)
	assert.Equal(t, level1, len(s.Trail))
	assert.Equal(t, 1, s.decisionLevel())
	assert.Equal(t, LitBoolUndef, s.ValueVar(1))

	s.CancelUntil(0)
	assert.Equal(t, 0, len(s.Trail))
	//phase saving remembers the last seen sign
	assert.False(t, s.Polarity[0])
}

func TestGarbageCollectKeepsReferencesValid(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2, 3})
	addClauseInts(s, []int{-1, -2, 3})
	addClauseInts(s, []int{1, -3, 4})

	s.garbageCollect()

	for _, cr := range s.Clauses {
		c := s.ClaAllocator.GetClause(cr)
		assert.Equal(t, 3, c.Size())
		assert.Equal(t, ExistMark, c.Mark())
	}
	//the solver still works on the relocated arena
	assert.Equal(t, LitBoolTrue, s.Solve())
}

func TestReduceDBKeepsLockedClauses(t *testing.T) {
	s := NewSolver(DefaultOptions())
	clauses := pigeonHole(5, 4)
	for _, clause := range clauses {
		addClauseInts(s, clause)
	}
	require.Equal(t, LitBoolFalse, s.Solve())

	//every clause surviving reduceDB passes is still attached and resolvable
	for _, cr := range s.LearntClauses {
		c := s.ClaAllocator.GetClause(cr)
		assert.NotEqual(t, DeletedMark, c.Mark())
	}
}

func TestPurgatoryPromotion(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 3; i++ {
		s.NewVar()
	}
	s.useUnaryWatched = true

	lits := []Lit{*NewLit(0, false), *NewLit(1, false), *NewLit(2, false)}
	cr, err := s.ClaAllocator.NewAllocate(lits, true)
	require.NoError(t, err)
	c := s.ClaAllocator.GetClause(cr)
	c.SetOneWatched(true)
	s.UnaryWatchedClauses = append(s.UnaryWatchedClauses, cr)
	s.attachClausePurgatory(cr)

	//falsify the clause literal by literal, the single watch wanders
	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(0, true), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())
	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(1, true), ClaRefUndef)
	require.Equal(t, ClaRefUndef, s.Propagate())

	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(2, true), ClaRefUndef)
	confl := s.Propagate()
	assert.Equal(t, cr, confl)

	//the conflicting clause graduated out of the purgatory
	assert.False(t, c.OneWatched())
	assert.Equal(t, uint64(1), s.Statistics.PromotedCount)
	//the watched pair holds the two deepest assigned literals
	assert.Equal(t, 3, s.Level(c.At(0).Var()))
	assert.Equal(t, 2, s.Level(c.At(1).Var()))
	s.CancelUntil(0)
}

func TestRemoveClauseIsLazy(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2, 3})
	cr := s.Clauses[0]
	c := s.ClaAllocator.GetClause(cr)
	watchKey := c.At(0).Flip()

	s.removeClause(cr, false)
	s.Clauses = s.Clauses[:0]
	//the watcher entry survives the removal until the next clean sweep
	assert.Len(t, *s.Watches.Lookup(watchKey), 1)

	require.Equal(t, ClaRefUndef, s.Propagate())
	assert.Len(t, *s.Watches.Lookup(watchKey), 0)
}

func TestLockedClauseDetection(t *testing.T) {
	s := NewSolver(DefaultOptions())
	addClauseInts(s, []int{1, 2, 3})
	cr := s.Clauses[0]
	c := s.ClaAllocator.GetClause(cr)
	assert.False(t, s.locked(c))

	s.newDecisionLevel()
	s.UncheckedEnqueue(*NewLit(0, false), cr)
	assert.True(t, s.locked(c))
	s.CancelUntil(0)
}
