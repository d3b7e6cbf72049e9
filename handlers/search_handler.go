package handlers

import (
	"net/http"
	"strings"

	"github.com/avolkov/musiccatalog/models"
	"github.com/gin-gonic/gin"
)

// likePattern builds the lower-cased contains pattern for a query string.
func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}

// SearchTracks finds tracks whose title or release artist's name contains
// the query, case-insensitively. One query over the base table, so the
// union carries no duplicates.
func (s *Server) SearchTracks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": "", "tracks": []gin.H{}})
		return
	}

	var tracks []models.Track
	if err := s.trackQuery().
		Joins("JOIN releases ON releases.id = tracks.release_id").
		Joins("JOIN artists ON artists.id = releases.artist_id").
		Where("LOWER(tracks.title) LIKE ? OR LOWER(artists.name) LIKE ?",
			likePattern(query), likePattern(query)).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":  query,
		"tracks": trackRows(tracks),
		"found":  len(tracks) > 0,
	})
}

// SearchArtists finds artists by name substring. mode=sensitive matches
// exact case; the default is case-insensitive.
func (s *Server) SearchArtists(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": "", "artists": []models.Artist{}})
		return
	}

	// The insensitive LIKE narrows the set on any backend; the sensitive
	// mode re-checks in Go since LIKE collation is driver-specific.
	var artists []models.Artist
	if err := s.DB.Where("LOWER(name) LIKE ?", likePattern(query)).Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search artists"})
		return
	}

	if c.Query("mode") == "sensitive" {
		filtered := artists[:0]
		for _, a := range artists {
			if strings.Contains(a.Name, query) {
				filtered = append(filtered, a)
			}
		}
		artists = filtered
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "artists": artists})
}

// SearchReleases finds releases by title or artist name substring.
func (s *Server) SearchReleases(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": "", "releases": []models.Release{}})
		return
	}

	var releases []models.Release
	if err := s.DB.Preload("Artist").
		Joins("JOIN artists ON artists.id = releases.artist_id").
		Where("LOWER(releases.title) LIKE ? OR LOWER(artists.name) LIKE ?",
			likePattern(query), likePattern(query)).
		Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search releases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "releases": releases})
}

// Search runs the catalog-wide search: tracks, artists and releases, ten
// of each.
func (s *Server) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": "", "results": gin.H{}})
		return
	}
	pattern := likePattern(query)

	var tracks []models.Track
	s.trackQuery().
		Joins("JOIN releases ON releases.id = tracks.release_id").
		Where("LOWER(tracks.title) LIKE ? OR LOWER(releases.title) LIKE ?", pattern, pattern).
		Limit(10).
		Find(&tracks)

	var artists []models.Artist
	s.DB.Where("LOWER(name) LIKE ? OR LOWER(biography) LIKE ?", pattern, pattern).
		Limit(10).
		Find(&artists)

	var releases []models.Release
	s.DB.Preload("Artist").
		Joins("JOIN artists ON artists.id = releases.artist_id").
		Where("LOWER(releases.title) LIKE ? OR LOWER(artists.name) LIKE ?", pattern, pattern).
		Limit(10).
		Find(&releases)

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"results": gin.H{
			"tracks":   trackRows(tracks),
			"artists":  artists,
			"releases": releases,
		},
		"has_results": len(tracks)+len(artists)+len(releases) > 0,
	})
}
