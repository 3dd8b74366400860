package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimacs(t *testing.T) {
	input := `c a comment
p cnf 3 2
1 -2 3 0
-1  2 0
`
	s := NewSolver(DefaultOptions())
	err := parseDimacs(bufio.NewScanner(strings.NewReader(input)), s)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumVars())
	assert.Equal(t, uint64(2), s.NumClauses())
}

func TestParseDimacsUnterminatedClause(t *testing.T) {
	input := `p cnf 2 1
1 2
`
	s := NewSolver(DefaultOptions())
	err := parseDimacs(bufio.NewScanner(strings.NewReader(input)), s)
	assert.Error(t, err)
}

func TestParseDimacsWrongClauseCount(t *testing.T) {
	input := `p cnf 2 2
1 2 0
`
	s := NewSolver(DefaultOptions())
	err := parseDimacs(bufio.NewScanner(strings.NewReader(input)), s)
	assert.Error(t, err)
}

func TestReadClauseCreatesVars(t *testing.T) {
	s := NewSolver(DefaultOptions())
	lits, err := readClause("4 -7 0", s)
	require.NoError(t, err)
	require.Len(t, lits, 2)
	assert.Equal(t, 7, s.NumVars())
	assert.Equal(t, Var(3), lits[0].Var())
	assert.False(t, lits[0].Sign())
	assert.Equal(t, Var(6), lits[1].Var())
	assert.True(t, lits[1].Sign())
}
