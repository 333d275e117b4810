package scene

import (
	"sync"

	"github.com/hborlik/scwfc/scwfc"
	"gonum.org/v1/gonum/spatial/r3"
)

// record is one live placement's mutable state.
type record struct {
	name               string
	pos                r3.Vec
	rot                r3.Vec
	scale              r3.Vec
	radius             float64
	neighborhoodRadius float64
	finalized          bool
	destroyed          bool
	model              string
}

// Scene is a minimal in-memory reference host implementing
// scwfc.Placement: a map of live records, a bucketGrid for
// amortized-O(1) spatial queries, and an optional Terrain gate. It has no
// renderer, no asset loading, no scene-tree hierarchy — exactly the
// surface scwfc.Placement requires, nothing more.
type Scene struct {
	mu      sync.RWMutex
	records map[int64]*record
	nextID  int64

	grid    *bucketGrid
	terrain *Terrain // nil: flat, fully buildable

	addedCbs   []func(int64)
	removedCbs []func(int64)
}

// New constructs an empty Scene. terrain may be nil for a flat,
// unconditionally-buildable surface. bucketCellSize sizes the spatial
// grid's buckets; pick roughly the expected placement spacing.
func New(terrain *Terrain, bucketCellSize float64) *Scene {
	return &Scene{
		records: make(map[int64]*record),
		grid:    newBucketGrid(bucketCellSize),
		terrain: terrain,
	}
}

var _ scwfc.Placement = (*Scene)(nil)
var _ scwfc.BuildabilityMask = (*Scene)(nil)

func (s *Scene) CreatePlacement(name string) int64 {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.records[id] = &record{name: name}
	s.grid.insert(id, 0, 0)
	cbs := append([]func(int64){}, s.addedCbs...)
	s.mu.Unlock()

	for _, cb := range cbs {
		if cb != nil {
			cb(id)
		}
	}
	return id
}

func (s *Scene) Destroy(h int64) {
	s.mu.Lock()
	r, ok := s.records[h]
	if !ok || r.destroyed {
		s.mu.Unlock()
		return
	}
	r.destroyed = true
	s.grid.remove(h, r.pos.X, r.pos.Z)
	cbs := append([]func(int64){}, s.removedCbs...)
	s.mu.Unlock()

	for _, cb := range cbs {
		if cb != nil {
			cb(h)
		}
	}
}

func (s *Scene) SetPosition(h int64, pos r3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[h]
	if !ok {
		return
	}
	s.grid.move(h, r.pos.X, r.pos.Z, pos.X, pos.Z)
	r.pos = pos
}

func (s *Scene) SetRotation(h int64, rot r3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.rot = rot
	}
}

func (s *Scene) SetScale(h int64, scale r3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.scale = scale
	}
}

func (s *Scene) SetRadius(h int64, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.radius = radius
	}
}

func (s *Scene) SetNeighborhoodRadius(h int64, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.neighborhoodRadius = radius
	}
}

func (s *Scene) SetFinalized(h int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.finalized = true
	}
}

func (s *Scene) SetModel(h int64, asset string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.model = asset
	}
}

func (s *Scene) ClearModel(h int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[h]; ok {
		r.model = ""
	}
}

// SphereRepulsion sums, over live (non-destroyed) placements whose
// radius-sphere overlaps s, a push-away displacement weighted by overlap
// depth. Only grid buckets within s.Radius of s.Center are searched, so a
// placement centered farther out is skipped even when its own radius
// reaches s.
func (s *Scene) SphereRepulsion(q scwfc.Sphere) r3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var disp r3.Vec
	for _, id := range s.grid.query(q.Center.X, q.Center.Z, q.Radius) {
		r, ok := s.records[id]
		if !ok || r.destroyed {
			continue
		}
		delta := r3.Sub(q.Center, r.pos)
		dist := r3.Norm(delta)
		overlap := q.Radius + r.radius - dist
		if overlap <= 0 {
			continue
		}
		if dist < 1e-9 {
			// coincident centers: push along an arbitrary fixed axis
			// rather than dividing by zero.
			disp = r3.Add(disp, r3.Vec{X: overlap})
			continue
		}
		disp = r3.Add(disp, r3.Scale(overlap/dist, delta))
	}
	return disp
}

// IntersectsAnySolvedNeighbor reports whether h's sphere overlaps an
// already-finalized placement (other than itself). Only grid buckets
// within h's own radius are searched, so a finalized placement centered
// farther out is not reported even when its radius reaches h.
func (s *Scene) IntersectsAnySolvedNeighbor(h int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	self, ok := s.records[h]
	if !ok {
		return false
	}
	for _, id := range s.grid.query(self.pos.X, self.pos.Z, self.radius) {
		if id == h {
			continue
		}
		other, ok := s.records[id]
		if !ok || other.destroyed || !other.finalized {
			continue
		}
		dist := r3.Norm(r3.Sub(self.pos, other.pos))
		if dist < self.radius+other.radius {
			return true
		}
	}
	return false
}

func (s *Scene) TerrainHeight(x, z float64) float64 {
	if s.terrain == nil {
		return 0
	}
	return s.terrain.Height(x, z)
}

// Buildable satisfies scwfc.BuildabilityMask; true everywhere when the
// Scene has no terrain configured.
func (s *Scene) Buildable(x, z float64) bool {
	if s.terrain == nil {
		return true
	}
	return s.terrain.Buildable(x, z)
}

func (s *Scene) Position(h int64) r3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[h]; ok {
		return r.pos
	}
	return r3.Vec{}
}

func (s *Scene) OnChildAdded(cb func(int64)) scwfc.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addedCbs = append(s.addedCbs, cb)
	idx := len(s.addedCbs) - 1
	return scwfc.Subscription{Unsubscribe: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.addedCbs[idx] = nil
	}}
}

func (s *Scene) OnChildRemoved(cb func(int64)) scwfc.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removedCbs = append(s.removedCbs, cb)
	idx := len(s.removedCbs) - 1
	return scwfc.Subscription{Unsubscribe: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.removedCbs[idx] = nil
	}}
}

// Finalized reports h's finalized state, for tests and diagnostics.
func (s *Scene) Finalized(h int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[h]; ok {
		return r.finalized
	}
	return false
}

// Destroyed reports h's destroyed state, for tests and diagnostics.
func (s *Scene) Destroyed(h int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[h]; ok {
		return r.destroyed
	}
	return true
}

// Model returns h's currently assigned asset path, for tests and
// diagnostics.
func (s *Scene) Model(h int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[h]; ok {
		return r.model
	}
	return ""
}

// IDs returns every known placement id, including destroyed ones.
func (s *Scene) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.records))
	for id := range s.records {
		out = append(out, id)
	}
	return out
}
