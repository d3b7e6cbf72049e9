package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Release formats.
const (
	FormatDigital  = "Digital"
	FormatCD       = "CD"
	FormatVinyl    = "Vinyl"
	FormatCassette = "Cassette"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrYearRequired  = errors.New("release year is required")
	ErrInvalidFormat = errors.New("invalid release format")
)

func ValidFormat(f string) bool {
	switch f {
	case FormatDigital, FormatCD, FormatVinyl, FormatCassette:
		return true
	}
	return false
}

type Release struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Title         string    `json:"title" gorm:"size:300;not null"`
	ArtistID      uint      `json:"artist_id" gorm:"not null;index"`
	Artist        *Artist   `json:"artist,omitempty"`
	LabelID       *uint     `json:"label_id,omitempty"`
	Label         *Label    `json:"label,omitempty"`
	Format        string    `json:"format" gorm:"size:20;default:Digital"`
	ReleaseYear   int       `json:"release_year" gorm:"not null;index"`
	CoverImage    string    `json:"cover_image,omitempty" gorm:"size:500"`
	SpotifyURL    string    `json:"spotify_url,omitempty" gorm:"size:500"`
	AppleMusicURL string    `json:"apple_music_url,omitempty" gorm:"size:500"`
	BandcampURL   string    `json:"bandcamp_url,omitempty" gorm:"size:500"`
	Featured      bool      `json:"featured" gorm:"default:false"`
	IsPremium     bool      `json:"is_premium" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`

	Tracks []Track `json:"tracks,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (r *Release) BeforeCreate(tx *gorm.DB) error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.ReleaseYear == 0 {
		return ErrYearRequired
	}
	if r.Format == "" {
		r.Format = FormatDigital
	}
	if !ValidFormat(r.Format) {
		return ErrInvalidFormat
	}
	return nil
}

// HasStreamingLinks reports whether any streaming URL is set.
func (r *Release) HasStreamingLinks() bool {
	return r.SpotifyURL != "" || r.AppleMusicURL != "" || r.BandcampURL != ""
}

// IsNew reports whether the release was added within the last 30 days.
func (r *Release) IsNew() bool {
	return time.Since(r.CreatedAt) <= 30*24*time.Hour
}
