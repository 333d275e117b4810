package graph

// DenseGraph is the preallocated N x N variant of Graph, used where the
// node count is bounded and small (spec.md §4.1). It satisfies the same
// read surface as Graph via Adjacent/AdjacentNodes/NodeIDs, so callers
// that only need those operations can treat either as interchangeable.
type DenseGraph[N Node] struct {
	directed bool
	ids      []int64
	index    map[int64]int
	weights  []float64 // row-major n*n
}

// NewDense preallocates a DenseGraph with room for exactly the given ids.
// Complexity: O(n^2) for the backing store.
func NewDense[N Node](ids []int64, directed bool) *DenseGraph[N] {
	n := len(ids)
	idx := make(map[int64]int, n)
	cp := make([]int64, n)
	for i, id := range ids {
		idx[id] = i
		cp[i] = id
	}
	return &DenseGraph[N]{
		directed: directed,
		ids:      cp,
		index:    idx,
		weights:  make([]float64, n*n),
	}
}

// Directed reports whether edges are one-directional.
func (d *DenseGraph[N]) Directed() bool { return d.directed }

// NodeCount returns the number of preallocated node slots.
func (d *DenseGraph[N]) NodeCount() int { return len(d.ids) }

// NodeIDs returns the ids this DenseGraph was constructed with.
func (d *DenseGraph[N]) NodeIDs() []int64 {
	out := make([]int64, len(d.ids))
	copy(out, d.ids)
	return out
}

// SetEdge records a weighted edge a->b (w > 0 means present). For
// undirected graphs the mirror entry is written too.
func (d *DenseGraph[N]) SetEdge(a, b int64, w float64) error {
	i, ok := d.index[a]
	if !ok {
		return ErrNodeNotFound
	}
	j, ok := d.index[b]
	if !ok {
		return ErrNodeNotFound
	}
	if w <= 0 {
		return ErrBadWeight
	}
	n := len(d.ids)
	d.weights[i*n+j] = w
	if !d.directed {
		d.weights[j*n+i] = w
	}
	return nil
}

// Adjacent returns the edge weight between a and b, or 0 if absent or
// either id is unknown.
func (d *DenseGraph[N]) Adjacent(a, b int64) float64 {
	i, ok := d.index[a]
	if !ok {
		return 0
	}
	j, ok := d.index[b]
	if !ok {
		return 0
	}
	return d.weights[i*len(d.ids)+j]
}

// AdjacentNodes returns a's neighbors in ascending preallocated-slot order.
func (d *DenseGraph[N]) AdjacentNodes(a int64) []int64 {
	i, ok := d.index[a]
	if !ok {
		return nil
	}
	n := len(d.ids)
	var out []int64
	for j := 0; j < n; j++ {
		if d.weights[i*n+j] > 0 {
			out = append(out, d.ids[j])
		}
	}
	return out
}

// At returns the raw weight at row/col indices i, j (0-based, by slot
// order, not node id) — used by maxflow to build its residual matrix.
func (d *DenseGraph[N]) At(i, j int) float64 {
	n := len(d.ids)
	return d.weights[i*n+j]
}

// IndexOf returns the preallocated slot for id, or -1 if unknown.
func (d *DenseGraph[N]) IndexOf(id int64) int {
	i, ok := d.index[id]
	if !ok {
		return -1
	}
	return i
}
