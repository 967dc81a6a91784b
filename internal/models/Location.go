package models

import (
	"gorm.io/gorm"
)

// Location represents a physical point on the map that can host one or
// more restrooms (e.g. a building with separate men's and women's rooms).
// Locations are never created directly by clients; they come into being
// as a side effect of restroom submission.
type Location struct {
	gorm.Model

	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`

	// Associations
	Restrooms []Restroom `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restrooms,omitempty"`
}
