package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ArtistDetail returns one artist with all releases plus the recent ones.
func (s *Server) ArtistDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Artist")
		return
	}

	var artist models.Artist
	err := s.DB.Preload("Releases").Preload("Documents").First(&artist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Artist")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artist"})
		return
	}

	var recent []models.Release
	s.DB.Where("artist_id = ? AND release_year >= ?", artist.ID, 2020).Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"artist":           artist,
		"recent_releases":  recent,
		"has_social_links": artist.HasSocialLinks(),
	})
}

// ArtistSocialLinks returns the compiled non-empty link list of an artist.
func (s *Server) ArtistSocialLinks(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Artist")
		return
	}

	var artist models.Artist
	if err := s.DB.First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Artist")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artist":       artist.Name,
		"social_links": artist.SocialLinks(),
	})
}

// ArtistsWithoutReleases lists artists that have no release yet.
func (s *Server) ArtistsWithoutReleases(c *gin.Context) {
	var artists []models.Artist
	if err := s.DB.
		Where("NOT EXISTS (SELECT 1 FROM releases WHERE releases.artist_id = artists.id)").
		Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// ArtistsWithLinks lists artists that have every social link filled in.
func (s *Server) ArtistsWithLinks(c *gin.Context) {
	var artists []models.Artist
	if err := s.DB.
		Where("website <> '' AND spotify_url <> '' AND youtube_url <> ''").
		Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// ArtistsByLabel lists all labels and, when one is selected, the artists
// that have a release on it.
func (s *Server) ArtistsByLabel(c *gin.Context) {
	var labels []models.Label
	if err := s.DB.Order("name").Find(&labels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	resp := gin.H{"labels": labels}
	if selected := c.Query("label"); selected != "" {
		var artists []models.Artist
		if err := s.DB.Distinct("artists.*").
			Joins("JOIN releases ON releases.artist_id = artists.id").
			Joins("JOIN labels ON labels.id = releases.label_id").
			Where("labels.name = ?", selected).
			Find(&artists).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artists"})
			return
		}
		resp["selected_label"] = selected
		resp["artists"] = artists
	}

	c.JSON(http.StatusOK, resp)
}

// ArtistsByGenre lists all genres and, when one is selected, the artists
// whose tracks carry it.
func (s *Server) ArtistsByGenre(c *gin.Context) {
	var genres []models.Genre
	if err := s.DB.Order("name").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve genres"})
		return
	}

	resp := gin.H{"genres": genres}
	if selected := c.Query("genre"); selected != "" {
		var artists []models.Artist
		if err := s.DB.Distinct("artists.*").
			Joins("JOIN releases ON releases.artist_id = artists.id").
			Joins("JOIN tracks ON tracks.release_id = releases.id").
			Joins("JOIN track_genres ON track_genres.track_id = tracks.id").
			Joins("JOIN genres ON genres.id = track_genres.genre_id").
			Where("genres.name = ?", selected).
			Find(&artists).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve artists"})
			return
		}
		resp["selected_genre"] = selected
		resp["artists"] = artists
	}

	c.JSON(http.StatusOK, resp)
}

// ArtistSpotifySync fills an artist's Spotify link, image and popularity
// from the Spotify API, then redirects to the artist page.
func (s *Server) ArtistSpotifySync(c *gin.Context) {
	if s.Spotify == nil || !s.Spotify.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Spotify sync is not configured"})
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Artist")
		return
	}

	var artist models.Artist
	if err := s.DB.First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Artist")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artist"})
		return
	}

	info, err := s.Spotify.LookupArtist(c.Request.Context(), artist.Name)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	artist.SpotifyURL = info.URL
	artist.PopularityScore = info.Popularity
	if artist.Image == "" && info.ImageURL != "" {
		artist.Image = info.ImageURL
	}
	if err := s.DB.Save(&artist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artist"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", artist.ID))
}
