package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (s *Server) loadPlaylist(c *gin.Context) (*models.Playlist, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Playlist")
		return nil, false
	}

	var playlist models.Playlist
	err := s.DB.Preload("User").Preload("Tracks").First(&playlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Playlist")
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load playlist"})
		return nil, false
	}
	return &playlist, true
}

// PlaylistList returns playlists with their owners.
func (s *Server) PlaylistList(c *gin.Context) {
	var playlists []models.Playlist
	if err := s.DB.Preload("User").Preload("Tracks").
		Order("created_at DESC").Find(&playlists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve playlists"})
		return
	}

	rows := make([]gin.H, 0, len(playlists))
	for i := range playlists {
		p := &playlists[i]
		rows = append(rows, gin.H{
			"id":             p.ID,
			"title":          p.Title,
			"is_public":      p.IsPublic,
			"track_count":    p.TrackCount(),
			"total_duration": p.TotalDuration(),
			"user":           p.User,
		})
	}
	c.JSON(http.StatusOK, gin.H{"playlists": rows})
}

// PlaylistDetail returns one playlist with its tracks.
func (s *Server) PlaylistDetail(c *gin.Context) {
	playlist, ok := s.loadPlaylist(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlist":       playlist,
		"track_count":    playlist.TrackCount(),
		"total_duration": playlist.TotalDuration(),
	})
}

// PlaylistCreate creates a playlist for an existing user and redirects to
// its detail page so tracks can be added.
func (s *Server) PlaylistCreate(c *gin.Context) {
	title := c.PostForm("title")
	userID := c.PostForm("user_id")
	if title == "" || userID == "" {
		badRequest(c, "Title and user are required")
		return
	}

	uid, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	var user models.User
	if err := s.DB.First(&user, uint(uid)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "User not found")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	playlist := models.Playlist{
		Title:    title,
		UserID:   user.ID,
		IsPublic: c.PostForm("is_public") == "on" || c.PostForm("is_public") == "true",
	}
	if err := s.DB.Create(&playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/playlists/%d", playlist.ID))
}

// PlaylistEdit renames a playlist or toggles its visibility.
func (s *Server) PlaylistEdit(c *gin.Context) {
	playlist, ok := s.loadPlaylist(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	if title == "" {
		badRequest(c, "Title is required")
		return
	}

	playlist.Title = title
	playlist.IsPublic = c.PostForm("is_public") == "on" || c.PostForm("is_public") == "true"
	if err := s.DB.Save(playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update playlist"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/playlists/%d", playlist.ID))
}

// PlaylistDelete removes a playlist and redirects to the list.
func (s *Server) PlaylistDelete(c *gin.Context) {
	playlist, ok := s.loadPlaylist(c)
	if !ok {
		return
	}

	if err := s.DB.Delete(playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete playlist"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/playlists")
}

// PlaylistAddTrack appends an existing track; a nonexistent track id is a
// user-visible message, not a server error.
func (s *Server) PlaylistAddTrack(c *gin.Context) {
	playlist, ok := s.loadPlaylist(c)
	if !ok {
		return
	}

	trackID := c.PostForm("track_id")
	if trackID == "" {
		badRequest(c, "track_id is required")
		return
	}
	tid, err := strconv.ParseUint(trackID, 10, 32)
	if err != nil {
		badRequest(c, "Invalid track id")
		return
	}

	var track models.Track
	if err := s.DB.First(&track, uint(tid)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "Track not found")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load track"})
		return
	}

	if err := s.DB.Model(playlist).Association("Tracks").Append(&track); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add track"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/playlists/%d", playlist.ID))
}

// PlaylistRemoveTrack drops one track from the playlist.
func (s *Server) PlaylistRemoveTrack(c *gin.Context) {
	playlist, ok := s.loadPlaylist(c)
	if !ok {
		return
	}

	tid, ok := idParam(c, "track_id")
	if !ok {
		notFound(c, "Track")
		return
	}

	var track models.Track
	if err := s.DB.First(&track, tid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Track")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load track"})
		return
	}

	if err := s.DB.Model(playlist).Association("Tracks").Delete(&track); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove track"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/playlists/%d", playlist.ID))
}
