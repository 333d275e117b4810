package scene

// bucketGrid buckets placements by XZ cell so SphereRepulsion and
// IntersectsAnySolvedNeighbor only scan nearby candidates instead of every
// live placement, the same locality trick gridgraph.GridGraph applies to
// land/water cells (there: 4/8-connected neighbor cells; here: a query
// radius worth of buckets around the point of interest).
type bucketGrid struct {
	cellSize float64
	cells    map[[2]int]map[int64]bool
}

func newBucketGrid(cellSize float64) *bucketGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &bucketGrid{cellSize: cellSize, cells: make(map[[2]int]map[int64]bool)}
}

func (g *bucketGrid) key(x, z float64) [2]int {
	return [2]int{int(floorDiv(x, g.cellSize)), int(floorDiv(z, g.cellSize))}
}

func floorDiv(v, cellSize float64) float64 {
	q := v / cellSize
	if q < 0 {
		return q - 1
	}
	return q
}

func (g *bucketGrid) insert(id int64, x, z float64) {
	k := g.key(x, z)
	bucket, ok := g.cells[k]
	if !ok {
		bucket = make(map[int64]bool)
		g.cells[k] = bucket
	}
	bucket[id] = true
}

func (g *bucketGrid) remove(id int64, x, z float64) {
	k := g.key(x, z)
	bucket, ok := g.cells[k]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(g.cells, k)
	}
}

func (g *bucketGrid) move(id int64, oldX, oldZ, newX, newZ float64) {
	if g.key(oldX, oldZ) == g.key(newX, newZ) {
		return
	}
	g.remove(id, oldX, oldZ)
	g.insert(id, newX, newZ)
}

// query returns every id in buckets overlapping the square of half-width
// radius centered at (x, z). Callers refine with an exact distance check.
func (g *bucketGrid) query(x, z, radius float64) []int64 {
	minX, minZ := g.key(x-radius, z-radius)[0], g.key(x-radius, z-radius)[1]
	maxX, maxZ := g.key(x+radius, z+radius)[0], g.key(x+radius, z+radius)[1]

	var out []int64
	for ix := minX; ix <= maxX; ix++ {
		for iz := minZ; iz <= maxZ; iz++ {
			if bucket, ok := g.cells[[2]int{ix, iz}]; ok {
				for id := range bucket {
					out = append(out, id)
				}
			}
		}
	}
	return out
}
