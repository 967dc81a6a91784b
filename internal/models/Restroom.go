package models

import (
	"gorm.io/gorm"
)

// Valid restroom types. Type is a closed enumeration; anything else is
// rejected before it reaches the database.
const (
	TypeMale    = "male"
	TypeFemale  = "female"
	TypeNeutral = "neutral"
)

// Restroom is a single facility at a Location. Type and LocationID are
// immutable after creation; only the name may be edited.
type Restroom struct {
	gorm.Model

	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" gorm:"check:type IN ('male','female','neutral')"`
	LocationID uint   `json:"location_id" gorm:"index"`

	// Associations
	Location    Location     `gorm:"foreignKey:LocationID" json:"location"`
	AccessCodes []AccessCode `gorm:"foreignKey:RestroomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"access_codes,omitempty"`
}

// ValidType reports whether t is one of the closed restroom type values.
func ValidType(t string) bool {
	return t == TypeMale || t == TypeFemale || t == TypeNeutral
}
