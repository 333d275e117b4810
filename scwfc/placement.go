package scwfc

import "gonum.org/v1/gonum/spatial/r3"

// Sphere is a repulsion query volume: a world-space center and radius.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// Subscription is a scoped event subscription: calling Unsubscribe removes
// the listener. The solver calls Unsubscribe for each of its
// subscriptions from Solver.Close; it has no other unsubscribe path, so a
// Solver that is never closed stays subscribed.
type Subscription struct {
	Unsubscribe func()
}

// Placement is the minimal scene-placement contract the solver expects
// from its host, exactly spec.md §4.6's table. The host may back it with
// any scene/graphics stack; the solver only ever calls these operations.
type Placement interface {
	// CreatePlacement returns a handle with a unique node_id, position
	// (0,0,0), and radii 0.
	CreatePlacement(name string) int64
	// Destroy marks the handle destroyed. Idempotent; safe while queued.
	Destroy(h int64)

	SetPosition(h int64, pos r3.Vec)
	SetRotation(h int64, rot r3.Vec) // Euler angles, radians
	SetScale(h int64, scale r3.Vec)
	SetRadius(h int64, radius float64)
	SetNeighborhoodRadius(h int64, radius float64)
	SetFinalized(h int64)
	SetModel(h int64, asset string)
	ClearModel(h int64)

	// SphereRepulsion returns a displacement vector summarizing overlap
	// between s and every existing placement.
	SphereRepulsion(s Sphere) r3.Vec
	// IntersectsAnySolvedNeighbor tests h's current volume against every
	// already-finalized placement.
	IntersectsAnySolvedNeighbor(h int64) bool
	// TerrainHeight returns world-space y at (x, z); 0 if the host has no
	// terrain.
	TerrainHeight(x, z float64) float64

	// Position returns h's current world position.
	Position(h int64) r3.Vec

	// OnChildAdded/OnChildRemoved let the solver install a listener that
	// mutates only its own discovered set, per spec.md §9's event-
	// delivery rule. The returned Subscription.Unsubscribe must be called
	// by the solver on every teardown path.
	OnChildAdded(func(h int64)) Subscription
	OnChildRemoved(func(h int64)) Subscription
}

// BuildabilityMask is an optional extension a Placement host may also
// implement: when present and PlaceOnTerrain is set, a candidate whose
// footprint falls on a non-buildable cell is destroyed as soon as it is
// spawned, before node_check_and_update runs and before it ever reaches
// the graph or boundary (the
// terrain-gating addition documented in SPEC_FULL.md §4.5).
type BuildabilityMask interface {
	Buildable(x, z float64) bool
}
