package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"open_toilet/internal/models"
)

// AddAccessCode records a new door code for a restroom with zeroed vote
// counters. The same code string cannot be recorded twice for one
// restroom; a second attempt fails with ErrDuplicateCode.
func (s *Store) AddAccessCode(restroomID uint, code string) (*models.AccessCode, error) {
	if code == "" {
		return nil, ErrCodeRequired
	}

	accessCode := models.AccessCode{
		RestroomID: restroomID,
		Code:       code,
	}
	if err := s.db.Create(&accessCode).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return &accessCode, nil
}

// VoteOnAccessCode increments exactly one of the two counters by 1.
// voteType must be "like" or "dislike".
func (s *Store) VoteOnAccessCode(codeID uint, voteType string) error {
	if voteType != "like" && voteType != "dislike" {
		return ErrInvalidVoteType
	}

	column := "likes"
	if voteType == "dislike" {
		column = "dislikes"
	}

	result := s.db.Model(&models.AccessCode{}).
		Where("id = ?", codeID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccessCodeNotFound
	}
	return nil
}

// isDuplicateKey covers both GORM's translated error and the raw SQLite
// message used by the test store.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
