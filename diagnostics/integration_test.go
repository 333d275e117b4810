package diagnostics_test

import (
	"testing"

	"github.com/hborlik/scwfc/diagnostics"
	"github.com/hborlik/scwfc/objectdb"
	"github.com/hborlik/scwfc/scene"
	"github.com/hborlik/scwfc/scwfc"
	"github.com/stretchr/testify/require"
)

// TestSnapshotOverFinalizedSolve drives a tiny solve over a real scene.Scene
// host and checks every finalized placement surfaces as a snapshot vertex.
func TestSnapshotOverFinalizedSolve(t *testing.T) {
	db := objectdb.New()
	rock := db.CreateClass("Rock")
	db.AddObjectData(rock, objectdb.ObjectData{Name: "rock1", AssetPath: "rock.obj", Extent: 1})
	db.CreatePattern(objectdb.Pattern{ClassID: rock, Weight: 1})

	host := scene.New(nil, 5)
	s := scwfc.New(scwfc.Config{}, db, host, 42, nil)
	defer s.Close()

	s.SCPropagate(3, 10, 0)
	s.WFCSolve(20)

	snap := diagnostics.BuildSnapshot(s, host)
	present := make(map[int64]bool, len(snap.IDs))
	for _, id := range snap.IDs {
		present[id] = true
	}

	for _, id := range s.Discovered() {
		if !s.IsFinalized(id) {
			continue
		}
		require.True(t, present[id], "finalized id %d missing from snapshot", id)
	}
}
