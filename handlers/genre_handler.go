package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GenreList returns all genres ordered by name.
func (s *Server) GenreList(c *gin.Context) {
	var genres []models.Genre
	if err := s.DB.Order("name").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve genres"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// GenreDetail returns one genre with its first ten tracks.
func (s *Server) GenreDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Genre")
		return
	}

	var genre models.Genre
	err := s.DB.Preload("Tracks", func(db *gorm.DB) *gorm.DB {
		return db.Limit(10)
	}).First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Genre")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load genre"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"genre": genre})
}

// GenreCreate creates a genre (name required) and redirects to the list.
func (s *Server) GenreCreate(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		badRequest(c, "Genre name is required")
		return
	}

	genre := models.Genre{
		Name:        name,
		Description: c.PostForm("description"),
	}
	if err := s.DB.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create genre"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/genres")
}

// GenreEdit updates a genre and redirects to its detail page.
func (s *Server) GenreEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Genre")
		return
	}

	var genre models.Genre
	if err := s.DB.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Genre")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load genre"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		badRequest(c, "Genre name is required")
		return
	}

	genre.Name = name
	genre.Description = c.PostForm("description")
	if err := s.DB.Save(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update genre"})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/genres/%d", genre.ID))
}

// GenreDelete removes a genre and redirects to the list.
func (s *Server) GenreDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "Genre")
		return
	}

	var genre models.Genre
	if err := s.DB.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Genre")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load genre"})
		return
	}

	if err := s.DB.Delete(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete genre"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/genres")
}
