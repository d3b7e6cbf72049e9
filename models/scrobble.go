package models

import "time"

// Scrobble is one logged playback of a track by a user.
type Scrobble struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        *User     `json:"user,omitempty"`
	TrackID     uint      `json:"track_id" gorm:"not null;index"`
	Track       *Track    `json:"track,omitempty"`
	ScrobbledAt time.Time `json:"scrobbled_at" gorm:"index"`
}

// ListenedToday reports whether the scrobble happened on the current day.
func (s *Scrobble) ListenedToday() bool {
	now := time.Now()
	y1, m1, d1 := s.ScrobbledAt.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
