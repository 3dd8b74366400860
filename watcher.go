package main

import "fmt"

//Watcher is the struct to detect conflicts
type Watcher struct {
	claRef  ClauseReference //claRef is a reference for a clause
	blocker Lit             //blocker is a checker variable whether a clause is conflicted or not
}

//NewWatcher returns a pointer of Watcher
func NewWatcher(cla ClauseReference, p Lit) *Watcher {
	return &Watcher{
		claRef:  cla,
		blocker: p,
	}
}

//Equal returns a boolean indicating a clause reference is equal
func (w *Watcher) Equal(wr Watcher) bool {
	return w.claRef == wr.claRef
}

//Watches is a struct for watchers
//Deletion is lazy: a list is smudged when one of its clauses is removed and
//the stale entries survive until the next CleanAll sweep.
type Watches struct {
	watches [][]*Watcher
	dirty   []bool
	dirties []Lit
}

//NewWatches returns a pointer of Watches
func NewWatches() *Watches {
	return &Watches{}
}

//Init append a new empty watcher if the size of watches is greater than a variable
func (w *Watches) Init(v Var) {
	size := 2*int(v) + 1
	for len(w.watches) <= size {
		w.watches = append(w.watches, []*Watcher{})
		w.dirty = append(w.dirty, false)
	}
}

//Lookup returns a pointer of literal's watches
func (w *Watches) Lookup(x Lit) *[]*Watcher {
	idx := LitToInt(x)
	return &(w.watches[idx])
}

//Append appends a new watcher to watches
func (w *Watches) Append(x Lit, watcher *Watcher) {
	idx := LitToInt(x)
	w.watches[idx] = append(w.watches[idx], watcher)
}

//Smudge marks the literal's list dirty so that CleanAll visits it
func (w *Watches) Smudge(x Lit) {
	idx := LitToInt(x)
	if !w.dirty[idx] {
		w.dirty[idx] = true
		w.dirties = append(w.dirties, x)
	}
}

//CleanAll removes every watcher whose clause has been marked deleted from the
//smudged lists
func (w *Watches) CleanAll(ca *ClauseAllocator) {
	for _, x := range w.dirties {
		idx := LitToInt(x)
		if !w.dirty[idx] {
			continue
		}
		ws := w.watches[idx]
		copiedIdx := 0
		for _, watcher := range ws {
			if ca.GetClause(watcher.claRef).Mark() != DeletedMark {
				ws[copiedIdx] = watcher
				copiedIdx++
			}
		}
		w.watches[idx] = ws[:copiedIdx]
		w.dirty[idx] = false
	}
	w.dirties = w.dirties[:0]
}

//Remove removes a watcher which has literal x from watches
func (w *Watches) Remove(x Lit, watcher *Watcher) {
	startCopyIdx := -1
	//Find the index of watcher
	ws := w.Lookup(x)
	for i := 0; i < len(*ws); i++ {
		if (*ws)[i].Equal(*watcher) {
			startCopyIdx = i
			break
		}
	}
	if startCopyIdx == -1 {
		panic(fmt.Errorf("Watcher is not found: %d", watcher.claRef))
	}

	//Copy the rest of watcher exclude the value of startCopyIdx
	for copiedIdx := startCopyIdx; copiedIdx < len(*ws)-1; copiedIdx++ {
		(*ws)[copiedIdx] = (*ws)[copiedIdx+1]
	}
	//pop
	*ws = (*ws)[:len(*ws)-1]
}
