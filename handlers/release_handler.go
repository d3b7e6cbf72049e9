package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReleaseDetail returns one release with its artist, label and tracks.
func (s *Server) ReleaseDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Release")
		return
	}

	var release models.Release
	err := s.DB.Preload("Artist").Preload("Label").Preload("Tracks").First(&release, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Release")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load release"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"release":             release,
		"has_streaming_links": release.HasStreamingLinks(),
		"is_new":              release.IsNew(),
	})
}

// ReleasesByYear lists releases of one year.
func (s *Server) ReleasesByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "Invalid year")
		return
	}

	var releases []models.Release
	if err := s.DB.Preload("Artist").Where("release_year = ?", year).Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "releases": releases})
}

// PopularReleases lists releases of the last five years.
func (s *Server) PopularReleases(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").
		Where("release_year >= ?", currentYear()-5).
		Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// RecentDigitalReleases lists digital releases of the last two years.
func (s *Server) RecentDigitalReleases(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").
		Where("format = ? AND release_year >= ?", models.FormatDigital, currentYear()-2).
		Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// ReleasesOrderedByYear lists all releases, newest year first.
func (s *Server) ReleasesOrderedByYear(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").Order("release_year DESC").Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// ReleasesWithoutLabel lists releases with no label reference.
func (s *Server) ReleasesWithoutLabel(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").Where("label_id IS NULL").Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// OldNonDigitalReleases lists physical releases older than two years.
func (s *Server) OldNonDigitalReleases(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").
		Not("format = ?", models.FormatDigital).
		Where("release_year < ?", currentYear()-2).
		Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}

// ReleasesOnSpotify lists releases carrying a Spotify link.
func (s *Server) ReleasesOnSpotify(c *gin.Context) {
	var releases []models.Release
	if err := s.DB.Preload("Artist").Where("spotify_url <> ''").Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"releases": releases})
}
