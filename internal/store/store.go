package store

import (
	"gorm.io/gorm"
)

// CoordTolerance is the per-axis coordinate threshold (in degrees, roughly
// 11 meters north-south) below which two points are treated as the same
// physical location. The match is an independent-axis box, not a geodesic
// radius.
const CoordTolerance = 0.0001

// Store is the data-access layer for locations, restrooms and access
// codes. It is passed explicitly to the handlers that need it; there is
// no package-level database handle.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by the given GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
