package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"open_toilet/internal/models"
)

// GetRestroom returns one restroom hydrated with its location and access
// codes. A restroom with no codes gets an empty slice, never nil.
func (s *Store) GetRestroom(id uint) (*models.Restroom, error) {
	var restroom models.Restroom
	err := s.db.Joins("Location").Preload("AccessCodes").First(&restroom, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestroomNotFound
	}
	if err != nil {
		return nil, err
	}
	if restroom.AccessCodes == nil {
		restroom.AccessCodes = []models.AccessCode{}
	}
	return &restroom, nil
}

// ListRestrooms returns every restroom hydrated with its location and
// access codes, newest location first and newest restroom within it.
func (s *Store) ListRestrooms() ([]models.Restroom, error) {
	var restrooms []models.Restroom
	err := s.db.
		Joins("Location").
		Preload("AccessCodes").
		Order(`"Location".created_at DESC`).
		Order("restrooms.created_at DESC").
		Find(&restrooms).Error
	if err != nil {
		return nil, err
	}
	for i := range restrooms {
		if restrooms[i].AccessCodes == nil {
			restrooms[i].AccessCodes = []models.AccessCode{}
		}
	}
	return restrooms, nil
}

// RenameRestroom updates a restroom's name. The name is trimmed;
// empty or whitespace-only names are rejected. Type and location are
// immutable, so nothing else changes.
func (s *Store) RenameRestroom(id uint, name string) (*models.Restroom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	result := s.db.Model(&models.Restroom{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRestroomNotFound
	}
	return s.GetRestroom(id)
}
