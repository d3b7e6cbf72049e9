package models

import "time"

// Favorite marks a track as liked by a user, one per (user, track) pair.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_track"`
	User      *User     `json:"user,omitempty"`
	TrackID   uint      `json:"track_id" gorm:"not null;uniqueIndex:idx_favorites_user_track"`
	Track     *Track    `json:"track,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
