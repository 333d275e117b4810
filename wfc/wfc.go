// Package wfc implements the generic constraint-propagation engine: the
// atoms of the constraint problem (Val, Pattern), a DomainNode view over a
// graph.Graph, and the Solver that drives observe/propagate over it.
//
// The engine is deliberately decoupled from the scwfc orchestrator: it
// knows only about a graph of DomainNodes and a pattern table, never about
// scene placements, repulsion, or boundaries.
package wfc

import (
	"errors"
	mrand "math/rand/v2"

	"github.com/hborlik/scwfc/graph"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Val is the unit element of a node's domain: a class paired with the
// pattern that would produce it.
type Val struct {
	ClassID   int64
	PatternID int64
}

// Pattern is a constraint rule: class ClassID may occur if every class in
// RequiredClasses is present among the current neighborhood's domains.
// Weight is relative selection weight; 0 is permitted and never chosen.
type Pattern struct {
	ClassID         int64
	RequiredClasses []int64
	Weight          float64
}

// ValidityMode selects how Pattern requirements are checked against a
// possibly-still-collapsing neighborhood.
type ValidityMode int

const (
	// Correct requires existential coverage of every required class
	// across the full, possibly multi-valued, neighbor domains.
	Correct ValidityMode = iota
	// Approximate tolerates partially-collapsed domains but only
	// consults neighbors whose domain size is within a configured
	// cutoff, trading completeness for speed.
	Approximate
)

// DefaultApproximateDomainCutoff is used when Solver.ApproximateDomainCutoff
// is left at its zero value. The source never pins this constant; spec.md §9
// leaves it a configuration knob.
const DefaultApproximateDomainCutoff = 4

// ErrEmptyDomain names the error of collapsing an empty domain — a
// programmer error per spec.md §7, never performed by the engine itself.
// No Solver method returns it: on an empty domain WeightedPickDomain
// reports ok == false and Observe leaves the node unchanged.
var ErrEmptyDomain = errors.New("wfc: cannot collapse an empty domain")

// DomainNode is the WFC engine's view of a graph node: a stable id and its
// current (possibly shrinking) set of candidate Vals.
type DomainNode struct {
	ID     int64
	Domain []Val
}

// NodeID satisfies graph.Node.
func (n *DomainNode) NodeID() int64 { return n.ID }

// HasClass reports whether any Val in the domain carries the given class.
func (n *DomainNode) HasClass(classID int64) bool {
	for _, v := range n.Domain {
		if v.ClassID == classID {
			return true
		}
	}
	return false
}

// Solved reports whether the domain has collapsed to exactly one Val.
func (n *DomainNode) Solved() bool { return len(n.Domain) == 1 }

// Solver drives observe/propagate over a graph.Graph[*DomainNode].
//
// All randomness used by Solver (weighted collapse, neighbor shuffling)
// flows through RNG, matching spec.md §9's single-RNG-for-determinism rule.
type Solver struct {
	Graph    *graph.Graph[*DomainNode]
	Nodes    map[int64]*DomainNode
	Patterns map[int64]Pattern
	RNG      *mrand.Rand

	ValidityMode               ValidityMode
	PropagateToSolvedNeighbors bool
	ApproximateDomainCutoff    int

	// PropagateCallback, if set, is invoked on a node after Observe
	// collapses it, and once per node visited during Propagate (including
	// the origin). It never recurses back into the engine.
	PropagateCallback func(n *DomainNode)
	// EntropyCallback, if set, overrides NodeEntropy's default weight-sum
	// computation.
	EntropyCallback func(n *DomainNode) float64
}

// New constructs a Solver over g, seeded by seed.
func New(g *graph.Graph[*DomainNode], patterns map[int64]Pattern, seed uint64) *Solver {
	return &Solver{
		Graph:                   g,
		Nodes:                   make(map[int64]*DomainNode),
		Patterns:                patterns,
		RNG:                     mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ApproximateDomainCutoff: DefaultApproximateDomainCutoff,
	}
}

// AddNode registers n with the solver's node table and graph.
func (s *Solver) AddNode(n *DomainNode) {
	s.Nodes[n.ID] = n
	s.Graph.AddNode(n.ID)
}

// RemoveNode deletes n from both the node table and the graph.
func (s *Solver) RemoveNode(id int64) {
	delete(s.Nodes, id)
	s.Graph.RemoveNode(id)
}

// neighbors returns the DomainNode neighbors of id, in the graph's
// insertion order.
func (s *Solver) neighbors(id int64) []*DomainNode {
	ids := s.Graph.AdjacentNodes(id)
	out := make([]*DomainNode, 0, len(ids))
	for _, nid := range ids {
		if n, ok := s.Nodes[nid]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Step performs Observe(node) then Propagate(node).
func (s *Solver) Step(id int64) {
	s.Observe(id)
	s.Propagate(id)
}

// Observe collapses node's domain to a single weighted-random pick, unless
// the domain is already size <= 1. Invokes PropagateCallback on the node
// afterward.
func (s *Solver) Observe(id int64) {
	n, ok := s.Nodes[id]
	if !ok || len(n.Domain) <= 1 {
		return
	}
	v, ok := s.WeightedPickDomain(id)
	if !ok {
		return
	}
	n.Domain = []Val{v}
	if s.PropagateCallback != nil {
		s.PropagateCallback(n)
	}
}

// Propagate runs a BFS-like worklist starting at origin: the origin's
// domain is always (re)checked and its neighbors always visited; every
// other visited node's domain is refiltered, and that node is enqueued
// (so its own neighbors get visited) only if the refiltering actually
// shrank the domain. Neighbor visit order is shuffled per node using the
// solver's RNG, per spec.md §4.4's anti-bias rule.
func (s *Solver) Propagate(origin int64) {
	n, ok := s.Nodes[origin]
	if !ok {
		return
	}

	visited := map[int64]bool{origin: true}
	queue := []int64{origin}
	s.updateDomainForced(n)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curNode := s.Nodes[cur]
		if curNode == nil {
			continue
		}

		neigh := s.neighbors(cur)
		s.shuffle(neigh)
		for _, m := range neigh {
			if visited[m.ID] {
				continue
			}
			if !s.PropagateToSolvedNeighbors && m.Solved() {
				continue
			}
			visited[m.ID] = true
			shrank := s.UpdateDomain(m.ID)
			if s.PropagateCallback != nil {
				s.PropagateCallback(m)
			}
			if shrank {
				queue = append(queue, m.ID)
			}
		}
	}
}

func (s *Solver) shuffle(ns []*DomainNode) {
	for i := len(ns) - 1; i > 0; i-- {
		j := s.RNG.IntN(i + 1)
		ns[i], ns[j] = ns[j], ns[i]
	}
}

// updateDomainForced always runs the refilter (used for the propagation
// origin, which is checked unconditionally per spec.md §4.4).
func (s *Solver) updateDomainForced(n *DomainNode) {
	s.UpdateDomain(n.ID)
	if s.PropagateCallback != nil {
		s.PropagateCallback(n)
	}
}

// UpdateDomain keeps only Vals that remain Valid under the node's current
// neighborhood, writing the filtered domain back. Returns whether the
// domain shrank.
func (s *Solver) UpdateDomain(id int64) bool {
	n, ok := s.Nodes[id]
	if !ok {
		return false
	}
	before := len(n.Domain)
	kept := n.Domain[:0:0]
	for _, v := range n.Domain {
		if s.Valid(v, id) {
			kept = append(kept, v)
		}
	}
	n.Domain = kept
	return len(n.Domain) < before
}

// Valid applies the active ValidityMode's Pattern rule for v at node id.
func (s *Solver) Valid(v Val, id int64) bool {
	p, ok := s.Patterns[v.PatternID]
	if !ok {
		return false
	}
	neigh := s.neighbors(id)
	switch s.ValidityMode {
	case Approximate:
		return s.validApproximate(p, neigh)
	default:
		return s.validCorrect(p, neigh)
	}
}

func (s *Solver) validCorrect(p Pattern, neigh []*DomainNode) bool {
	for _, r := range p.RequiredClasses {
		satisfied := false
		for _, m := range neigh {
			if m.HasClass(r) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func (s *Solver) validApproximate(p Pattern, neigh []*DomainNode) bool {
	cutoff := s.ApproximateDomainCutoff
	if cutoff <= 0 {
		cutoff = DefaultApproximateDomainCutoff
	}
	for _, r := range p.RequiredClasses {
		satisfied := false
		for _, m := range neigh {
			if len(m.Domain) > cutoff {
				continue
			}
			if m.HasClass(r) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// NodeEntropy sums the pattern weights of every Val in the node's domain;
// 0 when already singleton. EntropyCallback, if set, overrides this.
func (s *Solver) NodeEntropy(id int64) float64 {
	n, ok := s.Nodes[id]
	if !ok {
		return 0
	}
	if s.EntropyCallback != nil {
		return s.EntropyCallback(n)
	}
	if len(n.Domain) <= 1 {
		return 0
	}
	var total float64
	for _, v := range n.Domain {
		total += s.Patterns[v.PatternID].Weight
	}
	return total
}

// WeightedPickDomain draws one Val from node id's domain with probability
// proportional to its pattern's weight. When every weight is 0 it falls
// back to a uniform pick over the domain.
func (s *Solver) WeightedPickDomain(id int64) (Val, bool) {
	n, ok := s.Nodes[id]
	if !ok || len(n.Domain) == 0 {
		return Val{}, false
	}

	weights := make([]float64, len(n.Domain))
	var sum float64
	for i, v := range n.Domain {
		weights[i] = s.Patterns[v.PatternID].Weight
		sum += weights[i]
	}
	if sum <= 0 {
		for i := range weights {
			weights[i] = 1
		}
	}

	w := sampleuv.NewWeighted(weights, s.RNG)
	idx, ok := w.Take()
	if !ok {
		return Val{}, false
	}
	return n.Domain[idx], true
}
