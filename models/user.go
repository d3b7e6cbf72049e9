package models

import "time"

// User owns playlists, scrobbles, reviews and favorites. The catalog only
// needs identity, not authentication.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:254"`
	CreatedAt time.Time `json:"created_at"`

	Playlists []Playlist `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Scrobbles []Scrobble `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reviews   []Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Favorites []Favorite `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
