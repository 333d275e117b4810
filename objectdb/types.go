// Package objectdb stores the object database that feeds the solver:
// classes, patterns, per-class object variants, and their propagation
// OBBs, plus the derived class->pattern index spec.md §4.3 requires.
package objectdb

import (
	mrand "math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
	xrand "golang.org/x/exp/rand"
)

// ClassID identifies a named equivalence class of objects. Ids are the
// semantic key; names are advisory.
type ClassID int64

// PatternID uniquely identifies a Pattern, independent of ClassID.
type PatternID int64

// AxisPolicy controls how a finalized object is oriented about one axis.
type AxisPolicy int

const (
	Free AxisPolicy = iota
	Lock
	Stepped
)

// AxisSettings holds the per-axis orientation policy, ordered X, Y, Z to
// match the JSON format's "v" triple.
type AxisSettings struct {
	X, Y, Z AxisPolicy
}

// Pattern is a constraint rule over classes: ClassID may occur here if
// every class in RequiredClasses is present among neighbor domains.
type Pattern struct {
	ClassID         ClassID
	RequiredClasses []ClassID
	Weight          float64
}

// OBB is an oriented bounding box used both to seed neighbor positions and
// to visualize propagation volumes. Transform is a column-major 4x4
// matrix (rotation + translation); HalfExtents is in the OBB's local
// frame. Storing the raw transform, rather than decomposing it into
// center/rotation fields, keeps the JSON round-trip (spec.md §6) bit-exact.
type OBB struct {
	Transform   [16]float64
	HalfExtents r3.Vec
}

// Center returns the OBB's world-space center (the transform's
// translation column).
func (o OBB) Center() r3.Vec {
	return r3.Vec{X: o.Transform[12], Y: o.Transform[13], Z: o.Transform[14]}
}

// transformPoint applies the OBB's column-major transform to a local-space
// point, returning the corresponding world-space point.
func (o OBB) transformPoint(local r3.Vec) r3.Vec {
	t := o.Transform
	return r3.Vec{
		X: t[0]*local.X + t[4]*local.Y + t[8]*local.Z + t[12],
		Y: t[1]*local.X + t[5]*local.Y + t[9]*local.Z + t[13],
		Z: t[2]*local.X + t[6]*local.Y + t[10]*local.Z + t[14],
	}
}

// xrandAdapter bridges a math/rand/v2 source (the solver's single RNG) to
// the golang.org/x/exp/rand.Source interface that distuv.Normal expects.
// Seed is a no-op: the underlying RNG is seeded once at solver
// construction and never reseeded mid-solve.
type xrandAdapter struct{ r *mrand.Rand }

func (a xrandAdapter) Int63() int64   { return int64(a.r.Uint64() >> 1) }
func (a xrandAdapter) Seed(int64)     {}

var _ xrand.Source = xrandAdapter{}

// SamplePoint draws a point inside the OBB from three independent
// Gaussians with sigma = half_extent/3 per axis (so ~99.7% of the mass
// lies within the OBB, per spec.md §4.5.3's "truncated-normal-by-
// convention" rule) and transforms it into world space.
func (o OBB) SamplePoint(rng *mrand.Rand) r3.Vec {
	src := xrandAdapter{r: rng}
	lx := distuv.Normal{Mu: 0, Sigma: o.HalfExtents.X / 3, Src: src}.Rand()
	ly := distuv.Normal{Mu: 0, Sigma: o.HalfExtents.Y / 3, Src: src}.Rand()
	lz := distuv.Normal{Mu: 0, Sigma: o.HalfExtents.Z / 3, Src: src}.Rand()
	return o.transformPoint(r3.Vec{X: lx, Y: ly, Z: lz})
}

// ObjectData is one concrete object variant under a class.
type ObjectData struct {
	Name            string
	AssetPath       string
	Properties      map[string]float64
	PropagationOBBs []OBB
	Extent          float64
	AxisSettings    AxisSettings
}
