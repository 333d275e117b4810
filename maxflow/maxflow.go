// Package maxflow computes max-flow over a graph.DenseGraph[N], grounded
// directly on the teacher library's flow.FordFulkerson residual-capacity
// DFS augmentation but reworked against a preallocated row-major capacity
// matrix instead of a string-keyed nested map, since graph.DenseGraph
// already holds its weights that way.
//
// Named maxflow rather than flow to avoid colliding with the teacher's own
// flow package name; that package is not part of this module, and
// diagnostics.MaxFlowDemo calls this one.
package maxflow

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hborlik/scwfc/graph"
)

// Sentinel errors mirroring flow.ErrSourceNotFound/ErrSinkNotFound.
var (
	ErrSourceNotFound = errors.New("maxflow: source node not found")
	ErrSinkNotFound   = errors.New("maxflow: sink node not found")
)

// EdgeError is returned when an edge has negative capacity.
type EdgeError struct {
	From, To int64
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("maxflow: negative capacity on edge %d->%d: %g", e.From, e.To, e.Cap)
}

// Options configures MaxFlow. Epsilon treats capacities <= Epsilon as zero
// (default 1e-9).
type Options struct {
	Epsilon float64
}

func (o *Options) epsilon() float64 {
	if o != nil && o.Epsilon > 0 {
		return o.Epsilon
	}
	return 1e-9
}

// MaxFlow computes the maximum flow from source to sink over dg's capacity
// matrix using Ford-Fulkerson augmentation (DFS-found augmenting paths,
// repeated until none remain). It returns the total flow value and the
// final residual capacity matrix (same shape as dg, indexed the same way).
//
// Complexity: O(E * F) where F is proportional to maxFlow / Epsilon, same
// bound as the teacher's FordFulkerson.
func MaxFlow[N graph.Node](ctx context.Context, dg *graph.DenseGraph[N], source, sink int64, opts *Options) (maxFlow float64, residual [][]float64, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	eps := opts.epsilon()

	si := dg.IndexOf(source)
	if si < 0 {
		return 0, nil, ErrSourceNotFound
	}
	ti := dg.IndexOf(sink)
	if ti < 0 {
		return 0, nil, ErrSinkNotFound
	}

	n := dg.NodeCount()
	resid := make([][]float64, n)
	for i := range resid {
		resid[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			c := dg.At(i, j)
			if c < -eps {
				ids := dg.NodeIDs()
				return 0, nil, EdgeError{From: ids[i], To: ids[j], Cap: c}
			}
			resid[i][j] = c
		}
	}

	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, resid, err
		}
		visited := make([]bool, n)
		path, flow := dfsFindPath(resid, si, ti, visited, math.Inf(1), eps)
		if len(path) == 0 {
			break
		}
		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			resid[u][v] -= flow
			resid[v][u] += flow
		}
		maxFlow += flow
	}
	return maxFlow, resid, nil
}

// dfsFindPath locates any u->sink path with residual capacity > eps,
// returning the path (node indices) and its bottleneck flow.
func dfsFindPath(resid [][]float64, u, sink int, visited []bool, available, eps float64) ([]int, float64) {
	if u == sink {
		return []int{sink}, available
	}
	visited[u] = true
	for v, capUV := range resid[u] {
		if visited[v] || capUV <= eps {
			continue
		}
		b := available
		if capUV < b {
			b = capUV
		}
		path, flow := dfsFindPath(resid, v, sink, visited, b, eps)
		if len(path) > 0 {
			return append([]int{u}, path...), flow
		}
	}
	return nil, 0
}
