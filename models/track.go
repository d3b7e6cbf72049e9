package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Track statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var (
	ErrDurationRequired = errors.New("duration must be positive")
	ErrInvalidStatus    = errors.New("invalid track status")
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Track struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	Title           string    `json:"title" gorm:"size:300;not null"`
	ReleaseID       uint      `json:"release_id" gorm:"not null;index"`
	Release         *Release  `json:"release,omitempty"`
	DurationSeconds int       `json:"duration_seconds" gorm:"not null"`
	Position        string    `json:"position,omitempty" gorm:"size:10"`
	Status          string    `json:"status" gorm:"size:20;default:draft;index"`
	AudioFile       string    `json:"audio_file,omitempty" gorm:"size:500"`
	LyricsFile      string    `json:"lyrics_file,omitempty" gorm:"size:500"`
	PlayCount       int       `json:"play_count" gorm:"default:0"`
	Featured        bool      `json:"featured" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`

	Genres    []Genre    `json:"genres,omitempty" gorm:"many2many:track_genres;constraint:OnDelete:CASCADE"`
	Playlists []Playlist `json:"-" gorm:"many2many:playlist_tracks;constraint:OnDelete:CASCADE"`
	Scrobbles []Scrobble `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reviews   []Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Favorites []Favorite `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate validates new rows only. Update hooks would also fire on
// batch updates with an empty statement model and reject them.
func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.Title == "" {
		return ErrTitleRequired
	}
	if t.DurationSeconds <= 0 {
		return ErrDurationRequired
	}
	if t.Status == "" {
		t.Status = StatusDraft
	}
	if !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// FormatDuration renders a duration in seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormattedDuration renders the track length as m:ss, e.g. 215 -> "3:35".
func (t *Track) FormattedDuration() string {
	return FormatDuration(t.DurationSeconds)
}

// AddedRecently reports whether the track was created within the last week.
func (t *Track) AddedRecently() bool {
	return time.Since(t.CreatedAt) <= 7*24*time.Hour
}

func (t *Track) HasAudio() bool  { return t.AudioFile != "" }
func (t *Track) HasLyrics() bool { return t.LyricsFile != "" }
