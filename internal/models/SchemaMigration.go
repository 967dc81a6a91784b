package models

import (
	"time"
)

// SchemaMigration records a versioned startup migration that has already
// been applied, so each one runs at most once.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey" json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}
