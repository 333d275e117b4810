package objectdb

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// jsonAxisSettings mirrors the on-disk "v": [0|1|2, 0|1|2, 0|1|2] triple.
type jsonAxisSettings struct {
	V [3]int `json:"v"`
}

type jsonOBB struct {
	Transform   [16]float64 `json:"transform"`
	HalfExtents [3]float64  `json:"half_extents"`
}

type jsonObjectData struct {
	Name                string             `json:"name"`
	AssetPath           string             `json:"asset_path"`
	Properties          map[string]float64 `json:"properties,omitempty"`
	PropagationPatterns []jsonOBB          `json:"propagation_patterns,omitempty"`
	Extent              float64            `json:"extent"`
	AxisSettings        jsonAxisSettings   `json:"axis_settings"`
}

type jsonPattern struct {
	PatternType   *ClassID  `json:"pattern_type"`
	RequiredTypes []ClassID `json:"required_types,omitempty"`
	Weight        float64   `json:"weight"`
}

type jsonDatabase struct {
	ObjectClasses map[string]ClassID          `json:"object_classes"`
	ObjectData    map[string][]jsonObjectData `json:"object_data"`
	Patterns      map[PatternID]jsonPattern   `json:"patterns"`
}

// Save serializes db to w in the exact layout spec.md §6 describes.
func (db *Database) Save(w io.Writer) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	doc := jsonDatabase{
		ObjectClasses: make(map[string]ClassID, len(db.classIDs)),
		ObjectData:    make(map[string][]jsonObjectData, len(db.objectData)),
		Patterns:      make(map[PatternID]jsonPattern, len(db.patterns)),
	}
	for name, id := range db.classIDs {
		doc.ObjectClasses[name] = id
	}
	for classID, variants := range db.objectData {
		name, ok := db.classNames[classID]
		if !ok {
			continue // dangling object data under a deleted class; not saved
		}
		out := make([]jsonObjectData, len(variants))
		for i, v := range variants {
			out[i] = toJSONObjectData(v)
		}
		doc.ObjectData[name] = out
	}
	for id, p := range db.patterns {
		pt := p.ClassID
		doc.Patterns[id] = jsonPattern{
			PatternType:   &pt,
			RequiredTypes: p.RequiredClasses,
			Weight:        p.Weight,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toJSONObjectData(v ObjectData) jsonObjectData {
	obbs := make([]jsonOBB, len(v.PropagationOBBs))
	for i, o := range v.PropagationOBBs {
		obbs[i] = jsonOBB{
			Transform:   o.Transform,
			HalfExtents: [3]float64{o.HalfExtents.X, o.HalfExtents.Y, o.HalfExtents.Z},
		}
	}
	return jsonObjectData{
		Name:                v.Name,
		AssetPath:           v.AssetPath,
		Properties:          v.Properties,
		PropagationPatterns: obbs,
		Extent:              v.Extent,
		AxisSettings: jsonAxisSettings{V: [3]int{
			int(v.AxisSettings.X), int(v.AxisSettings.Y), int(v.AxisSettings.Z),
		}},
	}
}

func fromJSONObjectData(v jsonObjectData) ObjectData {
	obbs := make([]OBB, len(v.PropagationPatterns))
	for i, o := range v.PropagationPatterns {
		obbs[i] = OBB{
			Transform:   o.Transform,
			HalfExtents: r3.Vec{X: o.HalfExtents[0], Y: o.HalfExtents[1], Z: o.HalfExtents[2]},
		}
	}
	return ObjectData{
		Name:            v.Name,
		AssetPath:       v.AssetPath,
		Properties:      v.Properties,
		PropagationOBBs: obbs,
		Extent:          v.Extent,
		AxisSettings: AxisSettings{
			X: AxisPolicy(v.AxisSettings.V[0]),
			Y: AxisPolicy(v.AxisSettings.V[1]),
			Z: AxisPolicy(v.AxisSettings.V[2]),
		},
	}
}

// Load parses a database from r. On malformed JSON it returns a non-nil
// error and a nil *Database — the caller's previously-held instance, if
// any, is never touched, satisfying spec.md §7's database-corrupt
// semantics. Duplicate pattern ids are not detected: "patterns" decodes
// into a map, so a repeated id silently keeps the last entry read.
func Load(r io.Reader) (*Database, error) {
	var doc jsonDatabase
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseCorrupt, err)
	}

	db := New()
	for name, id := range doc.ObjectClasses {
		db.classNames[id] = name
		db.classIDs[name] = id
		if id >= db.nextClassID {
			db.nextClassID = id + 1
		}
	}

	for name, variants := range doc.ObjectData {
		id, ok := db.classIDs[name]
		if !ok {
			continue // class referenced by object_data but absent from object_classes
		}
		out := make([]ObjectData, len(variants))
		for i, v := range variants {
			out[i] = fromJSONObjectData(v)
		}
		db.objectData[id] = out
	}

	for id, p := range doc.Patterns {
		if _, dup := db.patterns[id]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern id %d", ErrDatabaseCorrupt, id)
		}
		if p.PatternType == nil {
			continue // pattern_type missing: dropped per spec.md §6
		}
		if id >= db.nextPatternID {
			db.nextPatternID = id + 1
		}
		db.patterns[id] = Pattern{
			ClassID:         *p.PatternType,
			RequiredClasses: p.RequiredTypes,
			Weight:          p.Weight,
		}
	}
	db.rebuildIndexLocked()

	return db, nil
}
