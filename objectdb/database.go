package objectdb

import (
	"sync"

	"github.com/hborlik/scwfc/wfc"
)

// Database stores the four tables of spec.md §3 plus the derived
// class->pattern multimap. DeleteClass, DeletePattern and SetPatternClass
// rebuild the derived index from the pattern table; CreatePattern appends
// the new id under its class without checking that the class exists.
type Database struct {
	mu sync.RWMutex

	classNames map[ClassID]string
	classIDs   map[string]ClassID

	objectData map[ClassID][]ObjectData

	patterns map[PatternID]Pattern

	classToPatterns map[ClassID][]PatternID

	nextClassID   ClassID
	nextPatternID PatternID
}

// New constructs an empty Database.
func New() *Database {
	return &Database{
		classNames:      make(map[ClassID]string),
		classIDs:        make(map[string]ClassID),
		objectData:      make(map[ClassID][]ObjectData),
		patterns:        make(map[PatternID]Pattern),
		classToPatterns: make(map[ClassID][]PatternID),
	}
}

// CreateClass allocates a fresh ClassID for name and returns it.
func (db *Database) CreateClass(name string) ClassID {
	db.mu.Lock()
	defer db.mu.Unlock()
	id := db.nextClassID
	db.nextClassID++
	db.classNames[id] = name
	db.classIDs[name] = id
	return id
}

// DeleteClass removes a class and its object data. Patterns referencing
// it become dangling (I1) rather than erroring.
func (db *Database) DeleteClass(id ClassID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if name, ok := db.classNames[id]; ok {
		delete(db.classIDs, name)
	}
	delete(db.classNames, id)
	delete(db.objectData, id)
	db.rebuildIndexLocked()
}

// RenameClass updates a class's advisory name; ids never change.
func (db *Database) RenameClass(id ClassID, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	old, ok := db.classNames[id]
	if !ok {
		return ErrClassNotFound
	}
	delete(db.classIDs, old)
	db.classNames[id] = name
	db.classIDs[name] = id
	return nil
}

// ClassName returns id's advisory name, or UnknownClassName if id is
// dangling or absent.
func (db *Database) ClassName(id ClassID) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if name, ok := db.classNames[id]; ok {
		return name
	}
	return UnknownClassName
}

// CreatePattern allocates a fresh PatternID for p and indexes it.
func (db *Database) CreatePattern(p Pattern) PatternID {
	db.mu.Lock()
	defer db.mu.Unlock()
	id := db.nextPatternID
	db.nextPatternID++
	db.patterns[id] = p
	db.classToPatterns[p.ClassID] = append(db.classToPatterns[p.ClassID], id)
	return id
}

// DeletePattern removes a pattern and its index entry.
func (db *Database) DeletePattern(id PatternID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.patterns, id)
	db.rebuildIndexLocked()
}

// AddRequirement appends r to pattern id's required classes.
func (db *Database) AddRequirement(id PatternID, r ClassID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.patterns[id]
	if !ok {
		return ErrPatternNotFound
	}
	p.RequiredClasses = append(p.RequiredClasses, r)
	db.patterns[id] = p
	return nil
}

// RemoveRequirement removes the first occurrence of r from pattern id's
// required classes, if present.
func (db *Database) RemoveRequirement(id PatternID, r ClassID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.patterns[id]
	if !ok {
		return ErrPatternNotFound
	}
	for i, rc := range p.RequiredClasses {
		if rc == r {
			p.RequiredClasses = append(p.RequiredClasses[:i], p.RequiredClasses[i+1:]...)
			break
		}
	}
	db.patterns[id] = p
	return nil
}

// SetPatternClass atomically moves pattern id to a new class: removes it
// from the old class's index entry, mutates, and re-inserts under the new
// class, per spec.md §4.3.
func (db *Database) SetPatternClass(id PatternID, newClass ClassID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.patterns[id]
	if !ok {
		return ErrPatternNotFound
	}
	p.ClassID = newClass
	db.patterns[id] = p
	db.rebuildIndexLocked()
	return nil
}

// Pattern returns pattern id and whether it exists.
func (db *Database) Pattern(id PatternID) (Pattern, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	p, ok := db.patterns[id]
	return p, ok
}

// PatternsForClass returns the pattern ids whose class_id is c.
func (db *Database) PatternsForClass(c ClassID) []PatternID {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]PatternID, len(db.classToPatterns[c]))
	copy(out, db.classToPatterns[c])
	return out
}

// ClassIDs returns every class id currently in the database.
func (db *Database) ClassIDs() []ClassID {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]ClassID, 0, len(db.classNames))
	for id := range db.classNames {
		out = append(out, id)
	}
	return out
}

// AddObjectData appends a variant under class c.
func (db *Database) AddObjectData(c ClassID, o ObjectData) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.objectData[c] = append(db.objectData[c], o)
}

// RemoveObjectData deletes the variant at index idx under class c.
func (db *Database) RemoveObjectData(c ClassID, idx int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	list := db.objectData[c]
	if idx < 0 || idx >= len(list) {
		return ErrObjectDataIndex
	}
	db.objectData[c] = append(list[:idx], list[idx+1:]...)
	return nil
}

// EditObjectData replaces the variant at index idx under class c.
func (db *Database) EditObjectData(c ClassID, idx int, o ObjectData) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	list := db.objectData[c]
	if idx < 0 || idx >= len(list) {
		return ErrObjectDataIndex
	}
	list[idx] = o
	return nil
}

// ObjectDataFor returns a copy of class c's object variants.
func (db *Database) ObjectDataFor(c ClassID) []ObjectData {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]ObjectData, len(db.objectData[c]))
	copy(out, db.objectData[c])
	return out
}

// rebuildIndexLocked recomputes classToPatterns from the pattern table,
// dropping patterns whose class_id is dangling from the index (but not
// from the pattern table itself — I1's "unreachable, filtered from the
// derived index" rule) per spec.md §3/§4.3.
func (db *Database) rebuildIndexLocked() {
	idx := make(map[ClassID][]PatternID)
	for id, p := range db.patterns {
		if _, ok := db.classNames[p.ClassID]; !ok {
			continue
		}
		idx[p.ClassID] = append(idx[p.ClassID], id)
	}
	db.classToPatterns = idx
}

// MakePatternMap returns a flat pattern_id -> wfc.Pattern map suitable for
// handing to a fresh wfc.Solver, per spec.md §4.3.
func (db *Database) MakePatternMap() map[int64]wfc.Pattern {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make(map[int64]wfc.Pattern, len(db.patterns))
	for id, p := range db.patterns {
		req := make([]int64, len(p.RequiredClasses))
		for i, r := range p.RequiredClasses {
			req[i] = int64(r)
		}
		out[int64(id)] = wfc.Pattern{
			ClassID:         int64(p.ClassID),
			RequiredClasses: req,
			Weight:          p.Weight,
		}
	}
	return out
}

// AllClassIDs returns every class id present in the database, used to seed
// a solver's full-universe starting domain (spec.md §4.5.1).
func (db *Database) AllClassIDs() []int64 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]int64, 0, len(db.classNames))
	for id := range db.classNames {
		out = append(out, int64(id))
	}
	return out
}
