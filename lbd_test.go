package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLBD(t *testing.T) {
	//LBD 2
	s := NewSolver(DefaultOptions())
	for i := 0; i < 3; i++ {
		s.NewVar()
	}
	s.VarData[0] = *NewVarData(ClaRefUndef, 1)
	s.VarData[1] = *NewVarData(ClaRefUndef, 1)
	s.VarData[2] = *NewVarData(ClaRefUndef, 2)

	lits := []Lit{*NewLit(0, false), *NewLit(1, true), *NewLit(2, true)} // (!x1 v x2 v x3)
	assert.Equal(t, 2, s.ComputeLBDLits(lits, -1))

	//the stamping must not leak between calls
	assert.Equal(t, 2, s.ComputeLBDLits(lits, -1))
	assert.Equal(t, 1, s.ComputeLBDLits(lits[:2], -1))
}

func TestComputeLBDUnit(t *testing.T) {
	s := NewSolver(DefaultOptions())
	s.NewVar()
	s.VarData[0] = *NewVarData(ClaRefUndef, 3)
	//a unit clause has LBD 1
	assert.Equal(t, 1, s.ComputeLBDLits([]Lit{*NewLit(0, false)}, -1))
}

func TestComputeLBDClause(t *testing.T) {
	s := NewSolver(DefaultOptions())
	for i := 0; i < 4; i++ {
		s.NewVar()
	}
	for i, level := range []int{1, 2, 3, 3} {
		s.VarData[i] = *NewVarData(ClaRefUndef, level)
	}
	lits := []Lit{*NewLit(0, false), *NewLit(1, false), *NewLit(2, true), *NewLit(3, true)}
	cr, err := s.ClaAllocator.NewAllocate(lits, true)
	assert.NoError(t, err)
	c := s.ClaAllocator.GetClause(cr)
	assert.Equal(t, 3, s.ComputeLBDClause(c))
	//LBD never exceeds the size
	assert.LessOrEqual(t, s.ComputeLBDClause(c), c.Size())
}
