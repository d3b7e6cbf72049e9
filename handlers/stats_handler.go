package handlers

import (
	"net/http"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
)

// ArtistStats lists artists with release and track counts, busiest first.
func (s *Server) ArtistStats(c *gin.Context) {
	type row struct {
		ID           uint    `json:"id"`
		Name         string  `json:"name"`
		ReleaseCount int     `json:"release_count"`
		TrackCount   int     `json:"track_count"`
		AvgTracks    float64 `json:"avg_tracks_per_release"`
	}

	var rows []row
	err := s.DB.Model(&models.Artist{}).
		Select(`artists.id, artists.name,
			COUNT(DISTINCT releases.id) AS release_count,
			COUNT(tracks.id) AS track_count,
			CASE WHEN COUNT(DISTINCT releases.id) = 0 THEN 0
			     ELSE COUNT(tracks.id) * 1.0 / COUNT(DISTINCT releases.id) END AS avg_tracks`).
		Joins("LEFT JOIN releases ON releases.artist_id = artists.id").
		Joins("LEFT JOIN tracks ON tracks.release_id = releases.id").
		Group("artists.id").
		Order("release_count DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute artist stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": rows})
}

// TrackStats returns the catalog-wide duration aggregates and per-status
// counts.
func (s *Server) TrackStats(c *gin.Context) {
	type agg struct {
		TotalTracks   int64   `json:"total_tracks"`
		AvgDuration   float64 `json:"avg_duration"`
		TotalDuration int64   `json:"total_duration"`
		LongestTrack  int     `json:"longest_track"`
		ShortestTrack int     `json:"shortest_track"`
	}

	var stats agg
	err := s.DB.Model(&models.Track{}).
		Select(`COUNT(id) AS total_tracks,
			COALESCE(AVG(duration_seconds), 0) AS avg_duration,
			COALESCE(SUM(duration_seconds), 0) AS total_duration,
			COALESCE(MAX(duration_seconds), 0) AS longest_track,
			COALESCE(MIN(duration_seconds), 0) AS shortest_track`).
		Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute track stats"})
		return
	}

	statusCounts := gin.H{}
	for _, status := range []string{models.StatusDraft, models.StatusPublished, models.StatusArchived} {
		var n int64
		s.DB.Model(&models.Track{}).Where("status = ?", status).Count(&n)
		statusCounts[status] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":              stats,
		"status_counts":      statusCounts,
		"avg_duration_min":   stats.AvgDuration / 60,
		"total_duration_min": float64(stats.TotalDuration) / 60,
	})
}

// GenreStats lists genres by number of tagged tracks, descending.
func (s *Server) GenreStats(c *gin.Context) {
	type row struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		TrackCount int    `json:"track_count"`
	}

	var rows []row
	err := s.DB.Model(&models.Genre{}).
		Select("genres.id, genres.name, COUNT(track_genres.track_id) AS track_count").
		Joins("LEFT JOIN track_genres ON track_genres.genre_id = genres.id").
		Group("genres.id").
		Order("track_count DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute genre stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": rows})
}
