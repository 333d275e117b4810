package objectdb_test

import (
	mrand "math/rand/v2"
	"testing"

	"github.com/hborlik/scwfc/objectdb"
	"github.com/hborlik/scwfc/wfc"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMakePatternMapFlattensAllPatterns(t *testing.T) {
	db := objectdb.New()
	rock := db.CreateClass("Rock")
	grass := db.CreateClass("Grass")
	p1 := db.CreatePattern(objectdb.Pattern{ClassID: rock, RequiredClasses: []objectdb.ClassID{grass}, Weight: 3})
	p2 := db.CreatePattern(objectdb.Pattern{ClassID: grass, Weight: 1})

	m := db.MakePatternMap()
	require.Len(t, m, 2)

	got1, ok := m[int64(p1)]
	require.True(t, ok)
	require.Equal(t, wfc.Pattern{ClassID: int64(rock), RequiredClasses: []int64{int64(grass)}, Weight: 3}, got1)

	got2, ok := m[int64(p2)]
	require.True(t, ok)
	require.Equal(t, wfc.Pattern{ClassID: int64(grass), RequiredClasses: []int64{}, Weight: 1}, got2)
}

// TestSamplePointStaysWithinExtentBudget draws many samples from an OBB
// centered at the origin and checks they stay within a generous multiple
// of the configured half-extents — a loose bound since the underlying
// draw is Gaussian, not uniform, but catches a broken transform or a
// sign/axis-swap bug outright.
func TestSamplePointStaysWithinExtentBudget(t *testing.T) {
	obb := objectdb.OBB{
		Transform:   identityTransform(),
		HalfExtents: r3.Vec{X: 2, Y: 1, Z: 3},
	}
	rng := mrand.New(mrand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		p := obb.SamplePoint(rng)
		require.InDelta(t, 0, p.X, 2*6)
		require.InDelta(t, 0, p.Y, 1*6)
		require.InDelta(t, 0, p.Z, 3*6)
	}
}

func TestSamplePointTranslatesByTransform(t *testing.T) {
	tr := identityTransform()
	tr[12], tr[13], tr[14] = 10, 20, 30
	obb := objectdb.OBB{Transform: tr, HalfExtents: r3.Vec{X: 0.01, Y: 0.01, Z: 0.01}}
	rng := mrand.New(mrand.NewPCG(3, 4))

	p := obb.SamplePoint(rng)
	require.InDelta(t, 10, p.X, 1)
	require.InDelta(t, 20, p.Y, 1)
	require.InDelta(t, 30, p.Z, 1)
	require.Equal(t, r3.Vec{X: 10, Y: 20, Z: 30}, obb.Center())
}

func identityTransform() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
