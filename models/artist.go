package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNameRequired = errors.New("name is required")

type Artist struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	Name            string    `json:"name" gorm:"size:200;not null;index"`
	Biography       string    `json:"biography,omitempty"`
	Image           string    `json:"image,omitempty" gorm:"size:500"`
	Website         string    `json:"website,omitempty" gorm:"size:500"`
	SpotifyURL      string    `json:"spotify_url,omitempty" gorm:"size:500"`
	YoutubeURL      string    `json:"youtube_url,omitempty" gorm:"size:500"`
	Featured        bool      `json:"featured" gorm:"default:false"`
	PopularityScore int       `json:"popularity_score" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`

	Releases  []Release  `json:"releases,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Documents []Document `json:"documents,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// HasSocialLinks reports whether any of the social-link URLs is set.
func (a *Artist) HasSocialLinks() bool {
	return a.Website != "" || a.SpotifyURL != "" || a.YoutubeURL != ""
}

// SocialLink is one named external link on an artist page.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SocialLinks compiles the non-empty links in display order.
func (a *Artist) SocialLinks() []SocialLink {
	var links []SocialLink
	if a.Website != "" {
		links = append(links, SocialLink{Name: "Website", URL: a.Website})
	}
	if a.SpotifyURL != "" {
		links = append(links, SocialLink{Name: "Spotify", URL: a.SpotifyURL})
	}
	if a.YoutubeURL != "" {
		links = append(links, SocialLink{Name: "YouTube", URL: a.YoutubeURL})
	}
	return links
}
