package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitEncoding(t *testing.T) {
	p := NewLit(3, false)
	assert.Equal(t, 6, p.X)
	assert.Equal(t, Var(3), p.Var())
	assert.False(t, p.Sign())
	assert.Equal(t, 4, p.External())

	n := NewLit(3, true)
	assert.Equal(t, 7, n.X)
	assert.True(t, n.Sign())
	assert.Equal(t, -4, n.External())

	assert.True(t, p.NotEqual(*n))
	flipped := p.Flip()
	assert.True(t, flipped.Equal(*n))
	back := flipped.Flip()
	assert.True(t, back.Equal(*p))
}

func TestValueLit(t *testing.T) {
	s := NewSolver(DefaultOptions())
	v := s.NewVar()
	p := NewLit(v, false)

	assert.Equal(t, LitBoolUndef, s.ValueLit(*p))

	s.UncheckedEnqueue(*p, ClaRefUndef)
	assert.Equal(t, LitBoolTrue, s.ValueLit(*p))
	n := p.Flip()
	assert.Equal(t, LitBoolFalse, s.ValueLit(n))
	assert.Equal(t, LitBoolTrue, s.ValueVar(v))
}
