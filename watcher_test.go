package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchesCleanAll(t *testing.T) {
	ca := NewClauseAllocator()
	w := NewWatches()
	w.Init(2)

	lits := []Lit{*NewLit(0, false), *NewLit(1, false), *NewLit(2, false)}
	keep, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)
	gone, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)

	p := *NewLit(0, true)
	w.Append(p, NewWatcher(keep, lits[1]))
	w.Append(p, NewWatcher(gone, lits[1]))
	assert.Len(t, *w.Lookup(p), 2)

	ca.FreeClause(gone)
	w.Smudge(p)
	w.CleanAll(ca)

	ws := *w.Lookup(p)
	require.Len(t, ws, 1)
	assert.Equal(t, keep, ws[0].claRef)
}

func TestWatchesCleanAllSkipsCleanLists(t *testing.T) {
	ca := NewClauseAllocator()
	w := NewWatches()
	w.Init(1)

	lits := []Lit{*NewLit(0, false), *NewLit(1, false)}
	cr, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)
	p := *NewLit(0, true)
	w.Append(p, NewWatcher(cr, lits[1]))

	//without a smudge nothing is visited
	ca.FreeClause(cr)
	w.CleanAll(ca)
	assert.Len(t, *w.Lookup(p), 1)

	w.Smudge(p)
	w.CleanAll(ca)
	assert.Len(t, *w.Lookup(p), 0)
}

func TestWatchesRemove(t *testing.T) {
	ca := NewClauseAllocator()
	w := NewWatches()
	w.Init(2)

	lits := []Lit{*NewLit(0, false), *NewLit(1, false), *NewLit(2, false)}
	first, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)
	second, err := ca.NewAllocate(lits, false)
	require.NoError(t, err)

	p := *NewLit(1, false)
	w.Append(p, NewWatcher(first, lits[0]))
	w.Append(p, NewWatcher(second, lits[0]))

	w.Remove(p, NewWatcher(first, lits[0]))
	ws := *w.Lookup(p)
	require.Len(t, ws, 1)
	assert.Equal(t, second, ws[0].claRef)
}
