package store

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"open_toilet/internal/models"
)

// RestroomInput is a restroom submission. LocationName is optional; when
// a new Location has to be created and no LocationName was given, the
// restroom name is used for the location too.
type RestroomInput struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Type         string  `json:"type"`
	LocationName string  `json:"locationName"`
}

// CreateRestroom resolves the submitted coordinates to a Location —
// reusing an existing one within CoordTolerance on both axes, else
// creating one — then inserts the restroom under it and returns the
// fully hydrated record.
//
// The required-field check is deliberately a zero-value check, matching
// the behaviour the map client has always seen: a latitude or longitude
// of exactly 0 is treated as missing.
func (s *Store) CreateRestroom(in RestroomInput) (*models.Restroom, error) {
	if in.Name == "" || in.Latitude == 0 || in.Longitude == 0 || in.Type == "" {
		return nil, ErrMissingFields
	}
	if !models.ValidType(in.Type) {
		return nil, ErrInvalidRestroomType
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	location, err := resolveLocation(tx, in)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	restroom := models.Restroom{
		Name:       in.Name,
		Type:       in.Type,
		LocationID: location.ID,
	}
	if err := tx.Create(&restroom).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"restroom_id": restroom.ID,
		"location_id": location.ID,
	}).Info("restroom created")

	return s.GetRestroom(restroom.ID)
}

// resolveLocation finds the existing Location whose latitude and
// longitude both differ from the submission by less than CoordTolerance,
// or creates a new one. Multiple locations can satisfy the box match;
// the lowest id wins so the result is deterministic for a given store
// state. A reused location keeps its stored name and address untouched.
func resolveLocation(tx *gorm.DB, in RestroomInput) (*models.Location, error) {
	var location models.Location
	err := tx.
		Where("ABS(latitude - ?) < ? AND ABS(longitude - ?) < ?",
			in.Latitude, CoordTolerance, in.Longitude, CoordTolerance).
		Order("id").
		First(&location).Error
	if err == nil {
		return &location, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := in.LocationName
	if name == "" {
		name = in.Name
	}
	location = models.Location{
		Name:      name,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if err := tx.Create(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}
