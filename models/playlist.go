package models

import (
	"fmt"
	"time"
)

type Playlist struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty"`
	IsPublic  bool      `json:"is_public" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tracks []Track `json:"tracks,omitempty" gorm:"many2many:playlist_tracks;constraint:OnDelete:CASCADE"`
}

// TrackCount counts loaded tracks; callers preload Tracks first.
func (p *Playlist) TrackCount() int {
	return len(p.Tracks)
}

// TotalDuration sums the loaded tracks, rendered as "XmYs".
func (p *Playlist) TotalDuration() string {
	total := 0
	for _, t := range p.Tracks {
		total += t.DurationSeconds
	}
	return fmt.Sprintf("%dm%ds", total/60, total%60)
}
