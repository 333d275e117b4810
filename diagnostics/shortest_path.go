package diagnostics

import (
	"container/heap"
	"errors"
)

// ErrVertexNotFound indicates a or b isn't reachable within snap — either
// it was never discovered, or no path of finalized edges connects it.
var ErrVertexNotFound = errors.New("diagnostics: vertex not found or unreachable in snapshot")

// ShortestPath runs Dijkstra's algorithm between two finalized placements a
// and b in snap, returning the path as a sequence of ids (inclusive of both
// endpoints) and its total cost. The open set is a container/heap min-heap
// keyed on distance, the same shape scwfc/boundary.go's entropyHeap uses
// for entropy-ordered solving.
func ShortestPath(snap *Snapshot, a, b int64) ([]int64, float64, error) {
	adj := snap.adjacency()

	dist := map[int64]float64{a: 0}
	prev := map[int64]int64{}
	visited := map[int64]bool{}

	open := &distHeap{{id: a, dist: 0}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*distItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == b {
			break
		}
		for _, e := range adj[cur.id] {
			nd := cur.dist + e.Weight
			if d, ok := dist[e.To]; !ok || nd < d {
				dist[e.To] = nd
				prev[e.To] = cur.id
				heap.Push(open, &distItem{id: e.To, dist: nd})
			}
		}
	}

	cost, ok := dist[b]
	if !ok {
		return nil, 0, ErrVertexNotFound
	}

	var path []int64
	for cur := b; ; cur = prev[cur] {
		path = append([]int64{cur}, path...)
		if cur == a {
			break
		}
	}
	return path, cost, nil
}

// distItem is one entry in distHeap: a candidate id at a tentative distance.
type distItem struct {
	id   int64
	dist float64
}

// distHeap is a container/heap min-heap on dist, mirroring the shape of
// scwfc/boundary.go's entropyHeap.
type distHeap []*distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(*distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}
