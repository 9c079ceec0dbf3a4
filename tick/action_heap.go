package tick

import "container/heap"

type scheduledAction struct {
	at  float64
	seq int
	do  func()
}

type actionHeapInner struct {
	q []scheduledAction
}

func (h *actionHeapInner) Len() int {
	return len(h.q)
}

func (h *actionHeapInner) Less(i, j int) bool {
	if h.q[i].at == h.q[j].at {
		return h.q[i].seq < h.q[j].seq
	}
	return h.q[i].at < h.q[j].at
}

func (h *actionHeapInner) Swap(i, j int) {
	h.q[i], h.q[j] = h.q[j], h.q[i]
}

func (h *actionHeapInner) Push(x any) {
	h.q = append(h.q, x.(scheduledAction))
}

func (h *actionHeapInner) Pop() (v any) {
	last := len(h.q) - 1
	v, h.q = h.q[last], h.q[:last]
	return v
}

type actionHeap struct {
	inner actionHeapInner
	seq   int
}

func (h *actionHeap) schedule(at float64, do func()) {
	h.seq++
	heap.Push(&h.inner, scheduledAction{at: at, seq: h.seq, do: do})
}

// due pops the next action scheduled at or before count.
func (h *actionHeap) due(count float64) (func(), bool) {
	if len(h.inner.q) == 0 || h.inner.q[0].at > count {
		return nil, false
	}
	a := heap.Pop(&h.inner).(scheduledAction)
	return a.do, true
}

func (h *actionHeap) len() int {
	return len(h.inner.q)
}

func (h *actionHeap) clear() {
	h.inner.q = nil
	h.seq = 0
}
