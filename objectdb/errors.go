package objectdb

import "errors"

// Sentinel errors for Database mutation/query operations.
var (
	ErrClassNotFound     = errors.New("objectdb: class not found")
	ErrPatternNotFound   = errors.New("objectdb: pattern not found")
	ErrDuplicatePattern  = errors.New("objectdb: duplicate pattern id")
	ErrObjectDataIndex   = errors.New("objectdb: object data index out of range")
	ErrDatabaseCorrupt   = errors.New("objectdb: database corrupt")
)

// UnknownClassName is rendered for a ClassId referenced by a Pattern but
// absent from the class table (spec.md §3 invariant I1: dangling
// references are tolerated and rendered, never followed).
const UnknownClassName = "Unknown"
