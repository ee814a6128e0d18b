package commutable

import "container/heap"

// candEntry is one outstanding candidate in the merge heap.
type candEntry struct {
	level  int32
	node   int
	origin int // index into candQueue.streams
}

// candHeap is a min-heap of candidate entries ordered by
// (level, node, origin).
type candHeap []candEntry

func (h candHeap) Len() int { return len(h) }

func (h candHeap) Less(i, j int) bool {
	if h[i].level != h[j].level {
		return h[i].level < h[j].level
	}
	if h[i].node != h[j].node {
		return h[i].node < h[j].node
	}
	return h[i].origin < h[j].origin
}

func (h candHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candHeap) Push(x any) { *h = append(*h, x.(candEntry)) }

func (h *candHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// streamInfo tracks one per-origin candidate iterator.
type streamInfo struct {
	next  int   // next index to request from CompleteCand
	owner int   // the solution element that opened this stream
	level int32 // the owner's level; candidates enter at level+1
}

// candQueue merges the per-origin candidate streams of the current
// solution into a single (level, node)-ordered feed. It keeps exactly
// one outstanding item per stream in the heap; popping an item advances
// its origin stream by one. Admission checks (presence, CanAdd) are the
// completion loop's business, not the queue's.
type candQueue struct {
	sys     *System
	ground  []int
	heap    candHeap
	streams []streamInfo
}

func newCandQueue(sys *System, ground []int) *candQueue {
	return &candQueue{sys: sys, ground: ground}
}

// add registers a new stream rooted at owner and seeds the heap with its
// first element, if any.
func (q *candQueue) add(owner int, level int32) {
	q.streams = append(q.streams, streamInfo{owner: owner, level: level})
	q.advance(len(q.streams) - 1)
}

// advance pulls the next element from stream origin into the heap.
func (q *candQueue) advance(origin int) {
	st := &q.streams[origin]
	node, ok := q.sys.completeCand(q.ground, st.owner, origin, st.next)
	if !ok {
		return
	}
	st.next++
	heap.Push(&q.heap, candEntry{level: st.level + 1, node: node, origin: origin})
}

// pop removes the minimum (level, node) candidate and advances its
// origin stream. It reports ok = false when every stream is exhausted.
// Candidates lost to later checks must not block their stream, so the
// stream is advanced unconditionally here.
func (q *candQueue) pop() (node int, level int32, ok bool) {
	if q.heap.Len() == 0 {
		return 0, 0, false
	}
	e := heap.Pop(&q.heap).(candEntry)
	q.advance(e.origin)
	return e.node, e.level, true
}
