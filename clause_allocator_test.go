package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateAndFree(t *testing.T) {
	ca := NewClauseAllocator()
	lits := []Lit{*NewLit(0, false), *NewLit(1, true), *NewLit(2, false)}

	cr, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)
	c := ca.GetClause(cr)
	assert.Equal(t, 3, c.Size())
	assert.False(t, c.Learnt())
	assert.Equal(t, ExistMark, c.Mark())
	assert.Equal(t, clauseHeaderUnits+3, ca.Size())
	assert.Equal(t, 0, ca.Wasted())

	ca.FreeClause(cr)
	assert.Equal(t, DeletedMark, ca.GetClause(cr).Mark())
	assert.Equal(t, clauseHeaderUnits+3, ca.Wasted())
}

func TestAllocateEmptyClause(t *testing.T) {
	ca := NewClauseAllocator()
	_, err := ca.NewAllocate(nil, false)
	assert.Error(t, err)
}

func TestReloc(t *testing.T) {
	from := NewClauseAllocator()
	to := NewClauseAllocator()

	lits := []Lit{*NewLit(0, false), *NewLit(1, true), *NewLit(2, false)}
	cr, err := from.NewAllocate(lits, true)
	require.NoError(t, err)
	from.GetClause(cr).SetLBD(2)

	newRef := from.Reloc(cr, to)
	moved := to.GetClause(newRef)
	assert.Equal(t, 3, moved.Size())
	assert.True(t, moved.Learnt())
	assert.Equal(t, 2, moved.LBD())
	assert.Equal(t, lits, moved.Data[:moved.Size()])

	//a second relocation of the same reference forwards without copying
	again := from.Reloc(cr, to)
	assert.Equal(t, newRef, again)
	assert.Equal(t, clauseHeaderUnits+3, to.Size())
}

func BenchmarkNewAllocate(b *testing.B) {
	ca := NewClauseAllocator()
	seed := int64(114514)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < b.N; i++ {
		size := 100
		clauses := make([]Lit, size)
		for j := 0; j < size; j++ {
			v := Var(j + 1)
			sign := rng.Int()%2 == 0
			clauses[j] = *NewLit(v, sign)
		}
		learnt := rng.Int()%2 == 0
		ca.NewAllocate(clauses, learnt)
	}
}
