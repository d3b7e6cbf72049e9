package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrackList returns the most recent tracks with their release and genres.
func (s *Server) TrackList(c *gin.Context) {
	var tracks []models.Track
	if err := s.DB.Preload("Release.Artist").Preload("Genres").
		Order("id DESC").Limit(20).Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackRows(tracks)})
}

// TrackDetail returns one track with release, artist and genres.
func (s *Server) TrackDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Track")
		return
	}

	var track models.Track
	err := s.DB.Preload("Release.Artist").Preload("Genres").First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Track")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load track"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"track":          track,
		"duration":       track.FormattedDuration(),
		"has_audio":      track.HasAudio(),
		"has_lyrics":     track.HasLyrics(),
		"added_recently": track.AddedRecently(),
	})
}

// TrackCreate creates a track from form fields and redirects to its detail
// page. Title, release and duration are required.
func (s *Server) TrackCreate(c *gin.Context) {
	title := c.PostForm("title")
	releaseID := c.PostForm("release_id")
	duration := c.PostForm("duration_seconds")

	if title == "" || releaseID == "" || duration == "" {
		badRequest(c, "Title, release and duration are required")
		return
	}

	relID, err := strconv.ParseUint(releaseID, 10, 32)
	if err != nil {
		badRequest(c, "Invalid release id")
		return
	}
	seconds, err := strconv.Atoi(duration)
	if err != nil || seconds <= 0 {
		badRequest(c, "Duration must be a positive number of seconds")
		return
	}

	var release models.Release
	if err := s.DB.First(&release, uint(relID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "Release not found")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load release"})
		return
	}

	track := models.Track{
		Title:           title,
		ReleaseID:       release.ID,
		DurationSeconds: seconds,
		Position:        c.PostForm("position"),
		Status:          models.StatusPublished,
	}
	if err := s.DB.Create(&track).Error; err != nil {
		badRequest(c, err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/tracks/%d", track.ID))
}

// TrackEdit updates title, duration and status, then redirects to the
// detail page.
func (s *Server) TrackEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Track")
		return
	}

	var track models.Track
	if err := s.DB.First(&track, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Track")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load track"})
		return
	}

	title := c.PostForm("title")
	duration := c.PostForm("duration_seconds")
	if title == "" || duration == "" {
		badRequest(c, "Title and duration are required")
		return
	}
	seconds, err := strconv.Atoi(duration)
	if err != nil || seconds <= 0 {
		badRequest(c, "Duration must be a positive number of seconds")
		return
	}

	track.Title = title
	track.DurationSeconds = seconds
	if status := c.PostForm("status"); status != "" {
		if !models.ValidStatus(status) {
			badRequest(c, "Invalid track status")
			return
		}
		track.Status = status
	}

	if err := s.DB.Save(&track).Error; err != nil {
		badRequest(c, err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/tracks/%d", track.ID))
}

// TrackDelete removes a track and redirects to the list page.
func (s *Server) TrackDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Track")
		return
	}

	var track models.Track
	if err := s.DB.First(&track, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Track")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load track"})
		return
	}

	if err := s.DB.Delete(&track).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete track"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/tracks")
}

// BulkPublishTracks publishes every draft track and reports how many rows
// changed. Running it again with no drafts left reports zero.
func (s *Server) BulkPublishTracks(c *gin.Context) {
	res := s.DB.Model(&models.Track{}).
		Where("status = ?", models.StatusDraft).
		Update("status", models.StatusPublished)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// BulkDeleteArchivedTracks deletes archived tracks older than 30 days and
// reports how many rows went away.
func (s *Server) BulkDeleteArchivedTracks(c *gin.Context) {
	cutoff := time.Now().AddDate(0, 0, -30)
	res := s.DB.Where("status = ? AND created_at < ?", models.StatusArchived, cutoff).
		Delete(&models.Track{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}

// trackRows shapes tracks for list responses, including the formatted
// duration and artist name the way the list pages show them.
func trackRows(tracks []models.Track) []gin.H {
	rows := make([]gin.H, 0, len(tracks))
	for _, t := range tracks {
		row := gin.H{
			"id":       t.ID,
			"title":    t.Title,
			"duration": t.FormattedDuration(),
			"status":   t.Status,
			"position": t.Position,
		}
		if t.Release != nil {
			row["release"] = t.Release.Title
			if t.Release.Artist != nil {
				row["artist"] = t.Release.Artist.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}
