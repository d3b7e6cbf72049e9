package handlers

import (
	"net/http"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// trackQuery is the base track query with the joins the list pages need.
func (s *Server) trackQuery() *gorm.DB {
	return s.DB.Model(&models.Track{}).Preload("Release.Artist").Preload("Genres")
}

// TracksByGenre lists tracks tagged with the named genre.
func (s *Server) TracksByGenre(c *gin.Context) {
	name := c.Param("name")

	var tracks []models.Track
	if err := s.trackQuery().
		Joins("JOIN track_genres ON track_genres.track_id = tracks.id").
		Joins("JOIN genres ON genres.id = track_genres.genre_id").
		Where("genres.name = ?", name).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"genre": name, "tracks": trackRows(tracks)})
}

// NonDigitalTracksByGenre lists tracks of a genre whose release is not in
// the digital format.
func (s *Server) NonDigitalTracksByGenre(c *gin.Context) {
	name := c.Param("name")

	var tracks []models.Track
	if err := s.trackQuery().
		Joins("JOIN track_genres ON track_genres.track_id = tracks.id").
		Joins("JOIN genres ON genres.id = track_genres.genre_id").
		Joins("JOIN releases ON releases.id = tracks.release_id").
		Where("genres.name = ?", name).
		Where("releases.format <> ?", models.FormatDigital).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"genre": name, "tracks": trackRows(tracks)})
}

// TracksByDuration lists all tracks, shortest first.
func (s *Server) TracksByDuration(c *gin.Context) {
	var tracks []models.Track
	if err := s.trackQuery().Order("duration_seconds").Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// TracksWithoutGenres lists tracks that have no genre assigned.
func (s *Server) TracksWithoutGenres(c *gin.Context) {
	var tracks []models.Track
	if err := s.trackQuery().
		Where("NOT EXISTS (SELECT 1 FROM track_genres WHERE track_genres.track_id = tracks.id)").
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// TracksWithoutPosition lists tracks with no position label (A1, B2, ...).
func (s *Server) TracksWithoutPosition(c *gin.Context) {
	var tracks []models.Track
	if err := s.trackQuery().
		Where("position IS NULL OR position = ''").
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// LongTracks lists tracks longer than four minutes.
func (s *Server) LongTracks(c *gin.Context) {
	var tracks []models.Track
	if err := s.trackQuery().
		Where("duration_seconds > ?", 240).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// RecentDigitalTracks lists tracks on digital releases of the last two
// years.
func (s *Server) RecentDigitalTracks(c *gin.Context) {
	var tracks []models.Track
	if err := s.trackQuery().
		Joins("JOIN releases ON releases.id = tracks.release_id").
		Where("releases.format = ? AND releases.release_year >= ?", models.FormatDigital, currentYear()-2).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// TracksByArtist lists tracks of the artist named in the query string.
func (s *Server) TracksByArtist(c *gin.Context) {
	name := c.Query("artist")
	if name == "" {
		badRequest(c, "artist parameter is required")
		return
	}

	var tracks []models.Track
	if err := s.trackQuery().
		Joins("JOIN releases ON releases.id = tracks.release_id").
		Joins("JOIN artists ON artists.id = releases.artist_id").
		Where("artists.name = ?", name).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": name, "tracks": trackRows(tracks)})
}
