// Package diagnostics provides read-only reports over a finalized solve.
// Every function here is purely observational — none feeds back into
// package scwfc — making a solver's output inspectable and testable
// (spec.md §4.8). The graph-shaped reports (connectivity, shortest path,
// streaming order, adjacency view) are hand-rolled directly against the
// solver's own int64 placement ids rather than routed through a generic
// string-keyed graph library, since nothing else in the module needs one.
package diagnostics

import (
	"github.com/hborlik/scwfc/matrix"
	"github.com/hborlik/scwfc/scwfc"
	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is a weighted undirected connection between two finalized placements.
type Edge struct {
	From, To int64
	Weight   float64
}

// Snapshot is a disposable, read-only copy of every finalized placement in
// a solve and the edges between finalized neighbors, rebuilt fresh by
// BuildSnapshot on every call. The solver's own graph stays on
// graph.Graph[*wfc.DomainNode] throughout (spec.md §5's ownership rule);
// this is purely a read-only view for the reports below.
type Snapshot struct {
	IDs   []int64
	Edges []Edge // canonical: From < To, each undirected pair appears once
}

// BuildSnapshot walks solver's discovered set and captures every finalized
// placement's id, plus an edge to every other finalized placement it is
// adjacent to in the solver's graph, weighted by Euclidean distance between
// the two placements' positions per host.
func BuildSnapshot(solver *scwfc.Solver, host scwfc.Placement) *Snapshot {
	snap := &Snapshot{}

	finalized := make(map[int64]bool)
	for _, id := range solver.Discovered() {
		if solver.IsFinalized(id) {
			finalized[id] = true
			snap.IDs = append(snap.IDs, id)
		}
	}

	for id := range finalized {
		for _, n := range solver.Graph().AdjacentNodes(id) {
			if n <= id || !finalized[n] {
				continue // visit each undirected pair once, canonical id < n
			}
			w := r3.Norm(r3.Sub(host.Position(id), host.Position(n)))
			snap.Edges = append(snap.Edges, Edge{From: id, To: n, Weight: w})
		}
	}
	return snap
}

// adjacency returns snap's edges as a per-vertex adjacency list, with both
// directions of every undirected edge present.
func (s *Snapshot) adjacency() map[int64][]Edge {
	adj := make(map[int64][]Edge, len(s.IDs))
	for _, e := range s.Edges {
		adj[e.From] = append(adj[e.From], e)
		adj[e.To] = append(adj[e.To], Edge{From: e.To, To: e.From, Weight: e.Weight})
	}
	return adj
}

// toMatrixEdges adapts snap's Edge slice to matrix.Edge, the shape
// matrix.NewAdjacencyMatrix expects.
func toMatrixEdges(edges []Edge) []matrix.Edge {
	out := make([]matrix.Edge, len(edges))
	for i, e := range edges {
		out[i] = matrix.Edge{From: e.From, To: e.To, Weight: e.Weight}
	}
	return out
}
