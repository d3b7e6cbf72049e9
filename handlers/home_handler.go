package handlers

import (
	"net/http"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
)

// Homepage returns the landing-page widgets: newest releases, featured
// artists, most played tracks, genre leaderboard and overall totals.
func (s *Server) Homepage(c *gin.Context) {
	var newReleases []models.Release
	if err := s.DB.Preload("Artist").Order("id DESC").Limit(5).Find(&newReleases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	var featuredArtists []models.Artist
	s.DB.Where("featured = ?", true).Limit(4).Find(&featuredArtists)

	var popularTracks []models.Track
	s.DB.Preload("Release.Artist").
		Where("play_count > 0").
		Order("play_count DESC").
		Limit(5).
		Find(&popularTracks)

	type genreCount struct {
		Name       string `json:"name"`
		TrackCount int    `json:"track_count"`
	}
	var topGenres []genreCount
	s.DB.Model(&models.Genre{}).
		Select("genres.name, COUNT(track_genres.track_id) AS track_count").
		Joins("LEFT JOIN track_genres ON track_genres.genre_id = genres.id").
		Group("genres.id").
		Order("track_count DESC").
		Limit(6).
		Scan(&topGenres)

	var totalArtists, totalReleases, totalTracks int64
	s.DB.Model(&models.Artist{}).Count(&totalArtists)
	s.DB.Model(&models.Release{}).Count(&totalReleases)
	s.DB.Model(&models.Track{}).Count(&totalTracks)

	var avgDuration float64
	s.DB.Model(&models.Track{}).Select("COALESCE(AVG(duration_seconds), 0)").Scan(&avgDuration)

	c.JSON(http.StatusOK, gin.H{
		"new_releases":     newReleases,
		"featured_artists": featuredArtists,
		"popular_tracks":   popularTracks,
		"top_genres":       topGenres,
		"stats": gin.H{
			"total_artists":      totalArtists,
			"total_releases":     totalReleases,
			"total_tracks":       totalTracks,
			"avg_track_duration": avgDuration,
		},
	})
}
