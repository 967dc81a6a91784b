package models

import (
	"gorm.io/gorm"
)

// AccessCode is a shared door/entry code for a restroom with
// community-sourced reliability votes. The same code string cannot be
// recorded twice for one restroom.
type AccessCode struct {
	gorm.Model

	RestroomID uint   `json:"restroom_id" gorm:"uniqueIndex:idx_restroom_code"`
	Code       string `json:"code" binding:"required" gorm:"uniqueIndex:idx_restroom_code"`
	Likes      int    `json:"likes" gorm:"default:0"`
	Dislikes   int    `json:"dislikes" gorm:"default:0"`
}
