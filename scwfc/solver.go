// Package scwfc implements the SC+WFC hybrid orchestrator: spatial
// constraint growth (sc_propagate) drives incremental scene expansion,
// and wfc_solve drains the resulting boundary through the wfc engine.
package scwfc

import (
	"math"
	mrand "math/rand/v2"

	"github.com/hborlik/scwfc/graph"
	"github.com/hborlik/scwfc/logx"
	"github.com/hborlik/scwfc/objectdb"
	"github.com/hborlik/scwfc/wfc"
	"gonum.org/v1/gonum/spatial/r3"
)

// unsolvedPlaceholderAsset is the placeholder model committed to a node
// still holding more than one domain value, per spec.md §4.5.5.
const unsolvedPlaceholderAsset = "__unsolved__"

// Solver is the hybrid orchestrator: it owns the boundary, the discovered
// set, the RNG, and the wfc.Solver engine, and drives sc_propagate /
// wfc_solve against a host Placement implementation.
type Solver struct {
	cfg   Config
	db    *objectdb.Database
	host  Placement
	log   logx.Logger
	rng   *mrand.Rand

	patterns map[int64]wfc.Pattern
	engine   *wfc.Solver

	boundary  boundary
	expanding *fifoBoundary

	discovered map[int64]bool
	finalized  map[int64]bool
	destroyed  map[int64]bool

	unsubs []func()
}

// New constructs a Solver. The caller must call Close when done, to
// unsubscribe from the host's event sources (spec.md §9's scoped-
// subscription rule).
func New(cfg Config, db *objectdb.Database, host Placement, seed uint64, log logx.Logger) *Solver {
	if log == nil {
		log = logx.Null()
	}

	g := graph.New[*wfc.DomainNode]()
	engine := wfc.New(g, db.MakePatternMap(), seed)
	engine.ValidityMode = cfg.ValidityMode
	engine.ApproximateDomainCutoff = cfg.ApproximateDomainCutoff
	engine.PropagateToSolvedNeighbors = cfg.PropagateToSolvedNeighbors

	s := &Solver{
		cfg:        cfg,
		db:         db,
		host:       host,
		log:        log,
		rng:        engine.RNG,
		patterns:   engine.Patterns,
		engine:     engine,
		expanding:  &fifoBoundary{},
		discovered: make(map[int64]bool),
		finalized:  make(map[int64]bool),
		destroyed:  make(map[int64]bool),
	}
	engine.PropagateCallback = s.nodeCheckAndUpdate

	if cfg.SolvingOrder == EntropyOrder {
		s.boundary = newEntropyBoundary(func(id int64) float64 { return s.engine.NodeEntropy(id) })
	} else {
		s.boundary = &fifoBoundary{}
	}

	sub := host.OnChildRemoved(func(h int64) {
		delete(s.discovered, h)
		s.destroyed[h] = true
	})
	s.unsubs = append(s.unsubs, sub.Unsubscribe)
	sub2 := host.OnChildAdded(func(h int64) {
		s.log.Debug("host reported child added: %d", h)
	})
	s.unsubs = append(s.unsubs, sub2.Unsubscribe)

	return s
}

// Close unsubscribes from every host event source. Safe to call multiple
// times.
func (s *Solver) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// domainFromClassIDs expands a set of class ids into the set of Vals whose
// pattern belongs to that class, per spec.md §4.5.1. An empty input
// yields an empty domain.
func (s *Solver) domainFromClassIDs(classIDs []int64) []wfc.Val {
	var out []wfc.Val
	for _, c := range classIDs {
		for _, pid := range s.db.PatternsForClass(objectdb.ClassID(c)) {
			out = append(out, wfc.Val{ClassID: c, PatternID: int64(pid)})
		}
	}
	return out
}

// spawnUnsolvedNode creates a placement at the origin with the seeded
// full-universe domain and pushes it onto both boundaries.
func (s *Solver) spawnUnsolvedNode() int64 {
	h := s.host.CreatePlacement("unsolved")
	n := &wfc.DomainNode{ID: h, Domain: s.domainFromClassIDs(s.db.AllClassIDs())}
	s.engine.AddNode(n)
	s.host.SetModel(h, unsolvedPlaceholderAsset)

	s.discovered[h] = true
	s.boundary.push(h)
	s.expanding.push(h)
	return h
}

// SCPropagate expands the scene by up to n placements, per spec.md
// §4.5.2. branching overrides Config.BranchingTrials for this call when
// > 0.
func (s *Solver) SCPropagate(n int, branching int, repulsion float64) {
	if branching <= 0 {
		branching = s.cfg.branchingTrials()
	}
	for i := 0; i < n; i++ {
		if s.expanding.empty() {
			s.spawnUnsolvedNode()
		}
		id, ok := s.expanding.popTop()
		if !ok {
			break
		}
		if s.destroyed[id] {
			continue
		}
		for _, child := range s.scPropagateFrom(id, branching, repulsion) {
			s.expanding.push(child)
		}
	}
}

// scPropagateFrom is sc_propagate_from, spec.md §4.5.3: branches per-Val
// (the resolved Open Question, never per-iteration).
func (s *Solver) scPropagateFrom(parentID int64, branching int, repulsion float64) []int64 {
	parent, ok := s.engine.Nodes[parentID]
	if !ok {
		return nil
	}
	parentPos := s.host.Position(parentID)
	entropy := s.engine.NodeEntropy(parentID)

	var survivors []int64
	for _, v := range append([]wfc.Val(nil), parent.Domain...) {
		pat, ok := s.patterns[v.PatternID]
		if !ok {
			continue
		}
		success := 0.0
		if entropy > 0 {
			success = pat.Weight / entropy
		}

		candidateClasses := s.db.AllClassIDs()
		if s.cfg.DomainMode == Dependent && s.engine.Valid(v, parentID) && s.rng.Float64() < success {
			candidateClasses = append([]int64(nil), pat.RequiredClasses...)
		}

		for _, obj := range s.db.ObjectDataFor(objectdb.ClassID(v.ClassID)) {
			if len(obj.PropagationOBBs) == 0 {
				continue
			}
			nObbs := len(obj.PropagationOBBs)
			for trial := 0; trial < branching; trial++ {
				obb := obj.PropagationOBBs[s.rng.IntN(nObbs)]
				rejectProb := 1 - success/float64(nObbs)
				if s.rng.Float64() < rejectProb {
					continue
				}
				// NOTE: candidate position composes the parent's world
				// position with the OBB's sampled local point; full
				// parent-rotation composition is not modeled since the
				// Placement host contract (spec.md §4.6) exposes only a
				// position query, not a full world transform.
				local := obb.SamplePoint(s.rng)
				pos := r3.Add(parentPos, local)
				if childID, ok := s.spawnChild(candidateClasses, pos, repulsion); ok {
					survivors = append(survivors, childID)
				}
			}
		}
	}
	return survivors
}

// nodeRadiusEstimate computes node_entropy(n) + |weighted_average_diagonal(n.domain)|/2,
// spec.md §4.5.3. ObjectData.Extent stands in for the asset's loaded
// scaled-bounding-box diagonal (asset/model loading is an out-of-scope
// collaborator per spec.md §1).
func (s *Solver) nodeRadiusEstimate(n *wfc.DomainNode) float64 {
	entropy := s.engine.NodeEntropy(n.ID)

	var wSum, dSum float64
	for _, v := range n.Domain {
		pat, ok := s.patterns[v.PatternID]
		if !ok {
			continue
		}
		variants := s.db.ObjectDataFor(objectdb.ClassID(v.ClassID))
		if len(variants) == 0 {
			continue
		}
		var avgExtent float64
		for _, o := range variants {
			avgExtent += o.Extent
		}
		avgExtent /= float64(len(variants))
		wSum += pat.Weight
		dSum += pat.Weight * avgExtent
	}
	var avgDiag float64
	if wSum > 0 {
		avgDiag = dSum / wSum
	}
	return entropy + avgDiag/2
}

// spawnChild creates and checks one candidate child placement, per the
// remainder of spec.md §4.5.3. It returns the new node's id and true only
// if the node survived node_check_and_update.
func (s *Solver) spawnChild(candidateClasses []int64, pos r3.Vec, repulsion float64) (int64, bool) {
	h := s.host.CreatePlacement("candidate")
	n := &wfc.DomainNode{ID: h, Domain: s.domainFromClassIDs(candidateClasses)}
	s.engine.AddNode(n)

	radius := s.nodeRadiusEstimate(n)
	if repulsion != 0 {
		disp := s.host.SphereRepulsion(Sphere{Center: pos, Radius: radius})
		pos = r3.Add(pos, r3.Scale(repulsion, disp))
	}

	if s.cfg.PlaceOnTerrain {
		if mask, ok := s.host.(BuildabilityMask); ok && !mask.Buildable(pos.X, pos.Z) {
			// Terrain gating addition (SPEC_FULL.md §4.5): a footprint on
			// a non-buildable cell is destroyed before ever reaching the
			// graph or boundary.
			s.engine.RemoveNode(h)
			s.host.Destroy(h)
			s.log.Debug("child %d destroyed: non-buildable terrain", h)
			return 0, false
		}
		pos.Y = s.host.TerrainHeight(pos.X, pos.Z)
	} else {
		pos.Y = 0
	}

	s.host.SetPosition(h, pos)
	s.host.SetRadius(h, radius)

	s.nodeCheckAndUpdate(n)
	if s.destroyed[h] {
		return 0, false
	}

	for id := range s.discovered {
		if id == h || s.destroyed[id] {
			continue
		}
		dist := r3.Norm(r3.Sub(pos, s.host.Position(id)))
		if dist <= s.cfg.neighborRadiusFactor()*radius {
			_ = s.engine.Graph.AddEdge(h, id, dist)
		}
	}

	s.discovered[h] = true
	s.boundary.push(h)
	return h, true
}

// nodeCheckAndUpdate is node_check_and_update, spec.md §4.5.5. It is also
// wired as the wfc engine's PropagateCallback, so every domain change
// observed during Propagate re-runs this same post-condition driver.
func (s *Solver) nodeCheckAndUpdate(n *wfc.DomainNode) {
	id := n.ID
	if s.finalized[id] || s.destroyed[id] {
		return
	}
	switch len(n.Domain) {
	case 0:
		s.destroyNode(id)
	case 1:
		s.finalizeNode(n)
	default:
		s.host.SetModel(id, unsolvedPlaceholderAsset)
	}
}

func (s *Solver) finalizeNode(n *wfc.DomainNode) {
	id := n.ID
	v := n.Domain[0]
	if _, ok := s.patterns[v.PatternID]; !ok {
		s.log.Error("finalize %d: pattern %d missing, fail-fast destroy", id, v.PatternID)
		s.destroyNode(id)
		return
	}

	variants := s.db.ObjectDataFor(objectdb.ClassID(v.ClassID))
	if len(variants) == 0 {
		s.log.Warn("finalize %d: class %d has no usable ObjectData, destroying", id, v.ClassID)
		s.destroyNode(id)
		return
	}
	obj := variants[s.rng.IntN(len(variants))]

	switch obj.AxisSettings.Y {
	case objectdb.Free:
		s.host.SetRotation(id, r3.Vec{Y: s.rng.Float64() * 2 * math.Pi})
	case objectdb.Stepped:
		steps := [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
		s.host.SetRotation(id, r3.Vec{Y: steps[s.rng.IntN(4)]})
	case objectdb.Lock:
		// leave current orientation as-is
	}

	scale := obj.Extent
	if scale <= 0 {
		scale = 1
	}
	s.host.SetScale(id, r3.Vec{X: scale, Y: scale, Z: scale})
	radius := scale / 2
	s.host.SetRadius(id, radius)
	s.host.SetNeighborhoodRadius(id, s.cfg.neighborRadiusFactor()*radius)
	s.host.SetModel(id, obj.AssetPath)
	s.host.SetFinalized(id)
	s.finalized[id] = true

	if s.host.IntersectsAnySolvedNeighbor(id) {
		s.log.Debug("finalize %d: collides with solved neighbor, destroying", id)
		s.destroyNode(id)
	}
}

func (s *Solver) destroyNode(id int64) {
	if s.destroyed[id] {
		return
	}
	s.destroyed[id] = true
	s.host.Destroy(id)
	s.engine.RemoveNode(id)
	delete(s.discovered, id)
}

// WFCSolve is wfc_solve(steps), spec.md §4.5.4.
func (s *Solver) WFCSolve(steps int) {
	for i := 0; i < steps; i++ {
		id, ok := s.boundary.popTop()
		if !ok {
			break
		}
		if s.destroyed[id] {
			continue
		}
		if _, ok := s.engine.Nodes[id]; !ok {
			continue
		}
		if !s.finalized[id] {
			s.engine.Step(id)
		}

		for _, m := range s.engine.Graph.AdjacentNodes(id) {
			if !s.discovered[m] || (s.cfg.AllowRevisitNode && !s.destroyed[m]) {
				s.discovered[m] = true
				s.boundary.push(m)
			}
		}

		if n, ok := s.engine.Nodes[id]; ok {
			s.nodeCheckAndUpdate(n)
		}
	}
}

// ReevaluateValidity is reevaluate_validity(), spec.md §4.5.6: the
// explicit repair sweep after lax Approximate propagation.
func (s *Solver) ReevaluateValidity() {
	for id := range s.discovered {
		if s.destroyed[id] || s.finalized[id] {
			continue
		}
		n, ok := s.engine.Nodes[id]
		if !ok || len(n.Domain) == 0 {
			continue
		}
		if !s.engine.Valid(n.Domain[0], id) {
			s.destroyNode(id)
		}
	}
}

// Graph exposes the solver's underlying DomainNode graph for read-only
// inspection (diagnostics.BuildSnapshot walks this).
func (s *Solver) Graph() *graph.Graph[*wfc.DomainNode] { return s.engine.Graph }

// Discovered returns every node id currently in the discovered set.
func (s *Solver) Discovered() []int64 {
	out := make([]int64, 0, len(s.discovered))
	for id := range s.discovered {
		out = append(out, id)
	}
	return out
}

// IsFinalized reports whether id has been finalized.
func (s *Solver) IsFinalized(id int64) bool { return s.finalized[id] }

// IsDestroyed reports whether id has been destroyed.
func (s *Solver) IsDestroyed(id int64) bool { return s.destroyed[id] }

// NodeEntropy exposes the underlying engine's entropy computation for id.
func (s *Solver) NodeEntropy(id int64) float64 { return s.engine.NodeEntropy(id) }
