package scwfc

import "github.com/hborlik/scwfc/wfc"

// DomainMode selects how sc_propagate_from decides a spawned child's
// candidate class set.
type DomainMode int

const (
	// Full always seeds the child with the full class-id universe.
	Full DomainMode = iota
	// Dependent seeds the child with the parent pattern's required
	// classes when the parent's Val is currently valid and a Bernoulli
	// trial fires; otherwise falls back to Full's universe.
	Dependent
)

// NeighborhoodRefresh controls whether neighborhood_radius_factor changes
// mid-solve retroactively rewire existing edges. Never is the only mode
// implemented: edges are fixed at creation time (spec.md §4.5 names this
// enum but the active formulation never recomputes edges after the fact).
type NeighborhoodRefresh int

const (
	Never NeighborhoodRefresh = iota
	Always
)

// ValidityMode re-exports wfc.ValidityMode so callers configure a single
// Config without importing the wfc package directly.
type ValidityMode = wfc.ValidityMode

const (
	Correct     = wfc.Correct
	Approximate = wfc.Approximate
)

// Config holds every SCWFCSolver configuration enum from spec.md §4.5.
type Config struct {
	DomainMode          DomainMode
	ValidityMode        ValidityMode
	SolvingOrder        SolvingOrder
	NeighborhoodRefresh NeighborhoodRefresh
	NeighborRadiusFactor float64
	AllowRevisitNode     bool
	PlaceOnTerrain       bool

	// ApproximateDomainCutoff configures wfc.Solver's Approximate-mode
	// cutoff (spec.md §9 open question); 0 uses wfc.DefaultApproximateDomainCutoff.
	ApproximateDomainCutoff int

	// BranchingTrials bounds the per-Val placement trial loop in
	// sc_propagate_from (spec.md §4.5.3's "small fixed number, e.g. 20").
	BranchingTrials int

	// PropagateToSolvedNeighbors mirrors wfc.Solver's same-named field.
	PropagateToSolvedNeighbors bool
}

// DefaultNeighborRadiusFactor is used when Config.NeighborRadiusFactor is
// left at its zero value.
const DefaultNeighborRadiusFactor = 1.5

// DefaultBranchingTrials is spec.md §4.5.3's example bound.
const DefaultBranchingTrials = 20

func (c Config) neighborRadiusFactor() float64 {
	if c.NeighborRadiusFactor > 0 {
		return c.NeighborRadiusFactor
	}
	return DefaultNeighborRadiusFactor
}

func (c Config) branchingTrials() int {
	if c.BranchingTrials > 0 {
		return c.BranchingTrials
	}
	return DefaultBranchingTrials
}
