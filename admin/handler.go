package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/musiccatalog/models"
	"github.com/avolkov/musiccatalog/report"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register mounts the console on a route group: descriptor-driven entity
// lists, bulk-action invocation and the PDF exports.
func Register(rg *gin.RouterGroup, db *gorm.DB) {
	registry := NewRegistry()

	rg.GET("/export/artists", exportArtists(db))
	rg.GET("/export/tracks", exportTracks(db))
	rg.GET("/export/releases/:id", exportRelease(db))

	rg.GET("/:entity", listEntity(db, registry))
	rg.POST("/:entity/actions/:action", invokeAction(db, registry))
}

func listEntity(db *gorm.DB, registry Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := registry.Lookup(c.Param("entity"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity"})
			return
		}

		rows, err := d.List(db, ListOptions{Search: c.Query("q")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list " + d.Name})
			return
		}

		actions := make([]string, 0, len(d.Actions))
		for name := range d.Actions {
			actions = append(actions, name)
		}

		c.JSON(http.StatusOK, gin.H{
			"entity":  d.Name,
			"columns": d.Columns,
			"rows":    rows,
			"actions": actions,
		})
	}
}

func invokeAction(db *gorm.DB, registry Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity := c.Param("entity")
		action := c.Param("action")

		ids, err := parseIDs(c.PostForm("ids"))
		if err != nil || len(ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a comma-separated list of row ids"})
			return
		}

		params := map[string]string{}
		if years := c.PostForm("years"); years != "" {
			params["years"] = years
		}

		affected, err := registry.Invoke(db, entity, action, ids, params)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnknownEntity), errors.Is(err, ErrUnknownAction):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrBadYears):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Action failed"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"entity":   entity,
			"action":   action,
			"affected": affected,
		})
	}
}

// parseIDs splits "1,2,3" into row ids.
func parseIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// exportArtists renders the artist roster, optionally narrowed by ?ids=.
func exportArtists(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Releases").Order("name")
		ids, err := parseIDs(c.Query("ids"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a comma-separated list of row ids"})
			return
		}
		if len(ids) > 0 {
			q = q.Where("id IN ?", ids)
		}

		var artists []models.Artist
		if err := q.Find(&artists).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artists"})
			return
		}

		rows := make([]report.ArtistRow, 0, len(artists))
		for i := range artists {
			a := &artists[i]
			rows = append(rows, report.ArtistRow{
				Name:         a.Name,
				ReleaseCount: len(a.Releases),
				Created:      a.CreatedAt,
			})
		}

		data, err := report.Artists(rows, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
			return
		}
		sendPDF(c, "artists_report.pdf", data)
	}
}

// exportTracks renders the track roster, optionally narrowed by ?ids=.
func exportTracks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Release.Artist").Order("id")
		ids, err := parseIDs(c.Query("ids"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a comma-separated list of row ids"})
			return
		}
		if len(ids) > 0 {
			q = q.Where("id IN ?", ids)
		}

		var tracks []models.Track
		if err := q.Find(&tracks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tracks"})
			return
		}

		rows := make([]report.TrackRow, 0, len(tracks))
		for i := range tracks {
			t := &tracks[i]
			row := report.TrackRow{
				Title:    t.Title,
				Duration: t.FormattedDuration(),
				Status:   t.Status,
			}
			if t.Release != nil && t.Release.Artist != nil {
				row.Artist = t.Release.Artist.Name
			}
			rows = append(rows, row)
		}

		data, err := report.Tracks(rows, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
			return
		}
		sendPDF(c, "tracks_report.pdf", data)
	}
}

// exportRelease renders the single-release sheet with its track listing.
func exportRelease(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Release not found"})
			return
		}

		var release models.Release
		err = db.Preload("Artist").Preload("Label").
			Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
			First(&release, uint(id)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Release not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load release"})
			return
		}

		sheet := report.ReleaseSheet{
			Title:   release.Title,
			Year:    release.ReleaseYear,
			Format:  release.Format,
			Created: release.CreatedAt,
		}
		if release.Artist != nil {
			sheet.Artist = release.Artist.Name
		}
		if release.Label != nil {
			sheet.Label = release.Label.Name
		}
		for i := range release.Tracks {
			t := &release.Tracks[i]
			sheet.Tracks = append(sheet.Tracks, report.ReleaseTrackRow{
				Position: t.Position,
				Title:    t.Title,
				Duration: t.FormattedDuration(),
			})
		}

		data, err := report.Release(sheet, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
			return
		}
		sendPDF(c, fmt.Sprintf("release_%d.pdf", release.ID), data)
	}
}
