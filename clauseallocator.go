package main

import (
	"fmt"
	"math"
)

type ClauseReference uint32

const ClaRefUndef ClauseReference = math.MaxUint32

//One header unit per clause, accounted together with the literal payload
const clauseHeaderUnits = 1

//ClauseAllocator is a allocator for the clause
//NOTE we need to improve the performance of alloc/free in the future
type ClauseAllocator struct {
	Qhead   ClauseReference             //the head of the ClauseAllocator
	Clauses map[ClauseReference]*Clause // the performace of the map is really bad. we should replace it with the array?
	size    int                         //units handed out so far
	wasted  int                         //units held by freed clauses, reclaimed at relocation
}

func NewClauseAllocator() *ClauseAllocator {
	return &ClauseAllocator{Qhead: 0, Clauses: make(map[ClauseReference]*Clause)}
}

func (c *ClauseAllocator) NewAllocate(lits []Lit, learnt bool) (ClauseReference, error) {
	if len(lits) == 0 {
		return ClaRefUndef, fmt.Errorf("An empty clause can not be allocated")
	}
	cref := c.Qhead
	c.Clauses[cref] = NewClause(lits, learnt)
	c.size += clauseHeaderUnits + len(lits)
	c.Qhead++
	return cref, nil
}

func (c *ClauseAllocator) GetClause(claRef ClauseReference) (clause *Clause) {
	if clause, ok := c.Clauses[claRef]; ok {
		return clause
	}
	panic(fmt.Errorf("The clause is not allocated: %d", claRef))
}

//FreeClause marks the clause deleted and accounts its units as wasted.
//The clause stays readable so that stale watchers can still inspect its mark
//until the next clean sweep; the storage is reclaimed at relocation.
func (c *ClauseAllocator) FreeClause(claRef ClauseReference) {
	clause, ok := c.Clauses[claRef]
	if !ok {
		panic(fmt.Errorf("The clause is not allocated: %d", claRef))
	}
	clause.SetMark(DeletedMark)
	c.wasted += clauseHeaderUnits + clause.Size()
}

//Reloc moves a clause into the allocator `to` and leaves a forwarding
//reference in the old slot. A second Reloc of the same reference returns the
//forwarded reference without copying again.
func (c *ClauseAllocator) Reloc(claRef ClauseReference, to *ClauseAllocator) ClauseReference {
	clause := c.GetClause(claRef)
	if clause.Reloced() {
		return clause.Forward
	}
	newRef := to.Qhead
	moved := NewClause(clause.Data[:clause.Size()], clause.Learnt())
	moved.header = clause.header
	moved.Act = clause.Act
	to.Clauses[newRef] = moved
	to.size += clauseHeaderUnits + moved.Size()
	to.Qhead++
	clause.Relocate(newRef)
	return newRef
}

func (c *ClauseAllocator) Size() int {
	return c.size
}

func (c *ClauseAllocator) Wasted() int {
	return c.wasted
}
