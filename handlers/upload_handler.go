package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// saveUpload checks the extension against the allow-list, then stores the
// file under the media root with a uuid-prefixed name. Nothing touches disk
// or the database for a rejected extension.
func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader, subdir string, allowed []string) (string, error) {
	if !models.ExtensionAllowed(file.Filename, allowed) {
		return "", models.ErrExtensionNotAllowed
	}

	dir := filepath.Join(s.MediaDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	rel := filepath.Join(subdir, name)
	if err := c.SaveUploadedFile(file, filepath.Join(s.MediaDir, rel)); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	return rel, nil
}

func (s *Server) uploadTrackFile(c *gin.Context, column, subdir string, allowed []string) {
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

	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	rel, err := s.saveUpload(c, file, subdir, allowed)
	if err != nil {
		if errors.Is(err, models.ErrExtensionNotAllowed) {
			badRequest(c, "File extension not allowed")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := s.DB.Model(&track).Update(column, rel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update track"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/tracks/%d", track.ID))
}

// UploadTrackAudio attaches an audio file (mp3/wav/ogg/m4a) to a track.
func (s *Server) UploadTrackAudio(c *gin.Context) {
	s.uploadTrackFile(c, "audio_file", models.AudioDir, models.AudioExtensions)
}

// UploadTrackLyrics attaches a lyrics file (txt/pdf/doc/docx) to a track.
func (s *Server) UploadTrackLyrics(c *gin.Context) {
	s.uploadTrackFile(c, "lyrics_file", models.LyricsDir, models.LyricsExtensions)
}

// UploadDocument stores an artist document. Extension is checked before
// the row or the file is written.
func (s *Server) UploadDocument(c *gin.Context) {
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

	title := c.PostForm("title")
	if title == "" {
		badRequest(c, "Title is required")
		return
	}
	docType := c.PostForm("document_type")
	if docType == "" {
		docType = models.DocOther
	}
	if !models.ValidDocumentType(docType) {
		badRequest(c, "Invalid document type")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	rel, err := s.saveUpload(c, file, models.DocumentDir, models.DocumentExtensions)
	if err != nil {
		if errors.Is(err, models.ErrExtensionNotAllowed) {
			badRequest(c, "File extension not allowed")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	doc := models.Document{
		Title:       title,
		Type:        docType,
		ArtistID:    artist.ID,
		File:        rel,
		Size:        file.Size,
		Description: c.PostForm("description"),
	}
	if err := s.DB.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", artist.ID))
}
