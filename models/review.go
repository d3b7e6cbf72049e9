package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is a user's rating of a track, one per (user, track) pair.
type Review struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_track"`
	User      *User     `json:"user,omitempty"`
	TrackID   uint      `json:"track_id" gorm:"not null;uniqueIndex:idx_reviews_user_track"`
	Track     *Track    `json:"track,omitempty"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
