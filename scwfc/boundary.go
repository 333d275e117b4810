package scwfc

import "container/heap"

// SolvingOrder selects the Boundary's popping discipline.
type SolvingOrder int

const (
	// DiscoveryOrder pops nodes FIFO, in the order they were pushed.
	DiscoveryOrder SolvingOrder = iota
	// EntropyOrder pops the node with the lowest current entropy first,
	// ties broken by insertion order.
	EntropyOrder
)

// boundary is the polymorphic push/pop-top abstraction spec.md §9 names:
// a single call site shared by the FIFO and min-entropy-heap variants.
type boundary interface {
	push(id int64)
	popTop() (int64, bool)
	empty() bool
}

// fifoBoundary is a plain queue, used for DiscoveryOrder.
type fifoBoundary struct {
	items []int64
}

func (b *fifoBoundary) push(id int64) { b.items = append(b.items, id) }

func (b *fifoBoundary) popTop() (int64, bool) {
	if len(b.items) == 0 {
		return 0, false
	}
	id := b.items[0]
	b.items = b.items[1:]
	return id, true
}

func (b *fifoBoundary) empty() bool { return len(b.items) == 0 }

// entropyItem is one entry in the entropy-ordered heap.
type entropyItem struct {
	id      int64
	entropy float64
	seq     int // insertion order, used to break entropy ties
}

// entropyHeap implements container/heap.Interface as a min-heap on
// entropy, ties broken by seq. diagnostics' own shortest_path.go distHeap
// mirrors this same shape for Dijkstra's open set.
type entropyHeap []*entropyItem

func (h entropyHeap) Len() int { return len(h) }
func (h entropyHeap) Less(i, j int) bool {
	if h[i].entropy != h[j].entropy {
		return h[i].entropy < h[j].entropy
	}
	return h[i].seq < h[j].seq
}
func (h entropyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entropyHeap) Push(x any) { *h = append(*h, x.(*entropyItem)) }

func (h *entropyHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// entropyBoundary is the min-heap variant, used for EntropyOrder. entropyOf
// is called at push time to snapshot the node's current entropy; the heap
// does not track subsequent entropy changes (matching spec.md §4.5.4's
// "ordered by node_entropy" wording — each push captures a fresh reading).
type entropyBoundary struct {
	h        entropyHeap
	seq      int
	entropyOf func(id int64) float64
}

func newEntropyBoundary(entropyOf func(id int64) float64) *entropyBoundary {
	return &entropyBoundary{entropyOf: entropyOf}
}

func (b *entropyBoundary) push(id int64) {
	item := &entropyItem{id: id, entropy: b.entropyOf(id), seq: b.seq}
	b.seq++
	heap.Push(&b.h, item)
}

func (b *entropyBoundary) popTop() (int64, bool) {
	if len(b.h) == 0 {
		return 0, false
	}
	item := heap.Pop(&b.h).(*entropyItem)
	return item.id, true
}

func (b *entropyBoundary) empty() bool { return len(b.h) == 0 }
