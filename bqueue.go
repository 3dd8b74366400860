package main

//BoundedQueue is a fixed-capacity ring buffer with a running sum, used for
//the moving averages steering restarts
type BoundedQueue struct {
	elems    []int
	first    int
	last     int
	sumQueue int64
	maxSize  int
	size     int
}

//NewBoundedQueue returns a queue holding up to maxSize elements
func NewBoundedQueue(maxSize int) *BoundedQueue {
	return &BoundedQueue{
		elems:   make([]int, maxSize),
		maxSize: maxSize,
	}
}

func (b *BoundedQueue) Push(x int) {
	if b.size == b.maxSize {
		//the queue is full, pop the oldest element
		b.sumQueue -= int64(b.elems[b.last])
		b.last++
		if b.last == b.maxSize {
			b.last = 0
		}
	} else {
		b.size++
	}
	b.sumQueue += int64(x)
	b.elems[b.first] = x
	b.first++
	if b.first == b.maxSize {
		b.first = 0
	}
}

//Avg returns the running average of the queued elements
func (b *BoundedQueue) Avg() float64 {
	if b.size == 0 {
		return 0
	}
	return float64(b.sumQueue) / float64(b.size)
}

//IsValid reports whether the queue has been filled since the last FastClear
func (b *BoundedQueue) IsValid() bool {
	return b.size == b.maxSize
}

//FastClear empties the queue without releasing its storage
func (b *BoundedQueue) FastClear() {
	b.first = 0
	b.last = 0
	b.size = 0
	b.sumQueue = 0
}

func (b *BoundedQueue) Size() int {
	return b.size
}

func (b *BoundedQueue) MaxSize() int {
	return b.maxSize
}
