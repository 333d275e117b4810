package objectdb_test

import (
	"bytes"
	"testing"

	"github.com/hborlik/scwfc/objectdb"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip mirrors spec scenario 6: a database with one class, one
// pattern, and one ObjectData round-trips through JSON with every field
// equal.
func TestRoundTrip(t *testing.T) {
	db := objectdb.New()
	tree := db.CreateClass("Tree")

	patID := db.CreatePattern(objectdb.Pattern{
		ClassID:         tree,
		RequiredClasses: []objectdb.ClassID{tree},
		Weight:          2.5,
	})

	db.AddObjectData(tree, objectdb.ObjectData{
		Name:      "tree-variant-1",
		AssetPath: "a.obj",
		Extent:    1,
		AxisSettings: objectdb.AxisSettings{
			X: objectdb.Free, Y: objectdb.Stepped, Z: objectdb.Lock,
		},
	})

	var buf bytes.Buffer
	require.NoError(t, db.Save(&buf))

	loaded, err := objectdb.Load(&buf)
	require.NoError(t, err)

	require.Equal(t, "Tree", loaded.ClassName(tree))
	p, ok := loaded.Pattern(patID)
	require.True(t, ok)
	require.Equal(t, tree, p.ClassID)
	require.Equal(t, []objectdb.ClassID{tree}, p.RequiredClasses)
	require.Equal(t, 2.5, p.Weight)

	variants := loaded.ObjectDataFor(tree)
	require.Len(t, variants, 1)
	require.Equal(t, "tree-variant-1", variants[0].Name)
	require.Equal(t, "a.obj", variants[0].AssetPath)
	require.Equal(t, 1.0, variants[0].Extent)
	require.Equal(t, objectdb.Free, variants[0].AxisSettings.X)
	require.Equal(t, objectdb.Stepped, variants[0].AxisSettings.Y)
	require.Equal(t, objectdb.Lock, variants[0].AxisSettings.Z)
}

func TestLoadMalformedPreservesNothingNew(t *testing.T) {
	_, err := objectdb.Load(bytes.NewBufferString("{not json"))
	require.ErrorIs(t, err, objectdb.ErrDatabaseCorrupt)
}

func TestLoadDroppsPatternMissingType(t *testing.T) {
	doc := `{"object_classes":{},"object_data":{},"patterns":{"1":{"required_types":[],"weight":1}}}`
	db, err := objectdb.Load(bytes.NewBufferString(doc))
	require.NoError(t, err)
	_, ok := db.Pattern(1)
	require.False(t, ok)
}

func TestRebuildIndexDropsDanglingClass(t *testing.T) {
	db := objectdb.New()
	tree := db.CreateClass("Tree")
	patID := db.CreatePattern(objectdb.Pattern{ClassID: tree, Weight: 1})
	db.DeleteClass(tree)

	require.Empty(t, db.PatternsForClass(tree))
	_, ok := db.Pattern(patID)
	require.True(t, ok) // the pattern itself survives; only the index entry is dropped
	require.Equal(t, objectdb.UnknownClassName, db.ClassName(tree))
}
