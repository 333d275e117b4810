// Package scene implements a minimal in-memory scwfc.Placement host: a
// spatial bucket grid adapted from the teacher's gridgraph.GridGraph
// (reinterpreted from "land/water" cell values into a buildable/blocked
// terrain mask) over an optional heightmap surface.
package scene

import "errors"

// Sentinel errors for terrain construction, named after gridgraph's own
// ErrEmptyGrid/ErrNonRectangular.
var (
	ErrEmptyGrid      = errors.New("scene: terrain grid must have at least one row and one column")
	ErrNonRectangular = errors.New("scene: all terrain grid rows must have the same length")
)

// Terrain is an immutable buildable-mask + heightmap surface in world
// space. Cell (ix, iz) covers [originX+ix*cellSize, originX+(ix+1)*cellSize)
// x [originZ+iz*cellSize, originZ+(iz+1)*cellSize).
type Terrain struct {
	width, depth int
	cellSize     float64
	originX      float64
	originZ      float64
	buildable    [][]bool    // [iz][ix]
	height       [][]float64 // [iz][ix]; nil means flat at y=0
}

// NewTerrain builds a Terrain from a non-empty, rectangular buildable mask
// (indexed [iz][ix]) and an optional heightmap of the same shape (nil for
// a flat y=0 surface). Mirrors gridgraph.NewGridGraph's validation and
// deep-copies both inputs so later caller mutation can't affect the
// terrain.
func NewTerrain(buildable [][]bool, height [][]float64, cellSize, originX, originZ float64) (*Terrain, error) {
	if len(buildable) == 0 || len(buildable[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	depth, width := len(buildable), len(buildable[0])
	for _, row := range buildable {
		if len(row) != width {
			return nil, ErrNonRectangular
		}
	}
	if height != nil {
		if len(height) != depth {
			return nil, ErrNonRectangular
		}
		for _, row := range height {
			if len(row) != width {
				return nil, ErrNonRectangular
			}
		}
	}

	b := make([][]bool, depth)
	for z := range buildable {
		b[z] = append([]bool(nil), buildable[z]...)
	}
	var h [][]float64
	if height != nil {
		h = make([][]float64, depth)
		for z := range height {
			h[z] = append([]float64(nil), height[z]...)
		}
	}

	return &Terrain{
		width: width, depth: depth,
		cellSize: cellSize, originX: originX, originZ: originZ,
		buildable: b, height: h,
	}, nil
}

// cellOf converts a world-space (x, z) to a grid cell index; out-of-bounds
// points clamp to the nearest edge cell so TerrainHeight/Buildable remain
// total functions over all of world space.
func (t *Terrain) cellOf(x, z float64) (ix, iz int) {
	ix = int((x - t.originX) / t.cellSize)
	iz = int((z - t.originZ) / t.cellSize)
	if ix < 0 {
		ix = 0
	} else if ix >= t.width {
		ix = t.width - 1
	}
	if iz < 0 {
		iz = 0
	} else if iz >= t.depth {
		iz = t.depth - 1
	}
	return ix, iz
}

// Buildable reports whether (x, z) falls on a buildable cell. Satisfies
// scwfc.BuildabilityMask.
func (t *Terrain) Buildable(x, z float64) bool {
	ix, iz := t.cellOf(x, z)
	return t.buildable[iz][ix]
}

// Height returns the terrain's y at (x, z); nearest-cell sample (no
// interpolation, matching the grid's per-cell resolution). Returns 0 if no
// heightmap was given.
func (t *Terrain) Height(x, z float64) float64 {
	if t.height == nil {
		return 0
	}
	ix, iz := t.cellOf(x, z)
	return t.height[iz][ix]
}
