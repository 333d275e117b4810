package scwfc_test

import (
	"sync"
	"testing"

	"github.com/hborlik/scwfc/objectdb"
	"github.com/hborlik/scwfc/scwfc"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// fakeHost is a minimal in-memory scwfc.Placement used only by these
// tests — the reference host implementation lives in package scene.
type fakeHost struct {
	mu      sync.Mutex
	nextID  int64
	pos     map[int64]r3.Vec
	radius  map[int64]float64
	finalized map[int64]bool
	destroyed map[int64]bool

	removedCbs []func(int64)
	addedCbs   []func(int64)
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		pos:       make(map[int64]r3.Vec),
		radius:    make(map[int64]float64),
		finalized: make(map[int64]bool),
		destroyed: make(map[int64]bool),
	}
}

func (f *fakeHost) CreatePlacement(name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.pos[id] = r3.Vec{}
	return id
}

func (f *fakeHost) Destroy(h int64) {
	f.mu.Lock()
	if f.destroyed[h] {
		f.mu.Unlock()
		return
	}
	f.destroyed[h] = true
	cbs := append([]func(int64){}, f.removedCbs...)
	f.mu.Unlock()
	for _, cb := range cbs {
		if cb != nil {
			cb(h)
		}
	}
}

func (f *fakeHost) SetPosition(h int64, pos r3.Vec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos[h] = pos
}
func (f *fakeHost) SetRotation(h int64, rot r3.Vec) {}
func (f *fakeHost) SetScale(h int64, scale r3.Vec)  {}
func (f *fakeHost) SetRadius(h int64, radius float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.radius[h] = radius
}
func (f *fakeHost) SetNeighborhoodRadius(h int64, radius float64) {}
func (f *fakeHost) SetFinalized(h int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalized[h] = true
}
func (f *fakeHost) SetModel(h int64, asset string) {}
func (f *fakeHost) ClearModel(h int64)             {}
func (f *fakeHost) SphereRepulsion(s scwfc.Sphere) r3.Vec {
	return r3.Vec{}
}
func (f *fakeHost) IntersectsAnySolvedNeighbor(h int64) bool { return false }
func (f *fakeHost) TerrainHeight(x, z float64) float64       { return 0 }
func (f *fakeHost) Position(h int64) r3.Vec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos[h]
}
func (f *fakeHost) OnChildAdded(cb func(int64)) scwfc.Subscription {
	f.mu.Lock()
	f.addedCbs = append(f.addedCbs, cb)
	idx := len(f.addedCbs) - 1
	f.mu.Unlock()
	return scwfc.Subscription{Unsubscribe: func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.addedCbs[idx] = nil
	}}
}
func (f *fakeHost) OnChildRemoved(cb func(int64)) scwfc.Subscription {
	f.mu.Lock()
	f.removedCbs = append(f.removedCbs, cb)
	idx := len(f.removedCbs) - 1
	f.mu.Unlock()
	return scwfc.Subscription{Unsubscribe: func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.removedCbs[idx] = nil
	}}
}

var _ scwfc.Placement = (*fakeHost)(nil)

// TestEmptySeedDestroyed mirrors spec scenario 2: a node created with an
// empty class set is destroyed on the first node_check_and_update.
func TestEmptySeedDestroyed(t *testing.T) {
	db := objectdb.New() // no classes: the seeded domain is empty
	host := newFakeHost()
	s := scwfc.New(scwfc.Config{}, db, host, 1, nil)
	defer s.Close()

	s.SCPropagate(1, 1, 0)
	ids := s.Discovered()
	require.Len(t, ids, 1)
	nodeID := ids[0]

	s.WFCSolve(1)
	require.True(t, s.IsDestroyed(nodeID))
	require.Empty(t, s.Discovered())
}

// TestTwoPatternChainFinalizes runs sc_propagate/wfc_solve over a minimal
// two-class database and checks every node still in the discovered set is
// finalized. The object variants carry no propagation OBBs, so each
// SCPropagate iteration spawns a fresh, unconnected seed node rather than
// growing a connected chain.
func TestTwoPatternChainFinalizes(t *testing.T) {
	db := objectdb.New()
	classA := db.CreateClass("A")
	classB := db.CreateClass("B")
	db.AddObjectData(classA, objectdb.ObjectData{Name: "a1", AssetPath: "a.obj", Extent: 1})
	db.AddObjectData(classB, objectdb.ObjectData{Name: "b1", AssetPath: "b.obj", Extent: 1})
	db.CreatePattern(objectdb.Pattern{ClassID: classA, RequiredClasses: []objectdb.ClassID{classB, classB}, Weight: 1})
	db.CreatePattern(objectdb.Pattern{ClassID: classB, RequiredClasses: []objectdb.ClassID{classA}, Weight: 1})

	host := newFakeHost()
	cfg := scwfc.Config{ValidityMode: scwfc.Correct, SolvingOrder: scwfc.DiscoveryOrder}
	s := scwfc.New(cfg, db, host, 7, nil)
	defer s.Close()

	s.SCPropagate(5, 20, 0)
	s.WFCSolve(50)
	s.ReevaluateValidity()

	for _, id := range s.Discovered() {
		require.True(t, s.IsFinalized(id) || s.IsDestroyed(id))
	}
}
