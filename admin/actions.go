package admin

import (
	"errors"
	"strconv"

	"github.com/avolkov/musiccatalog/models"
	"gorm.io/gorm"
)

var ErrBadYears = errors.New("years parameter must be an integer")

func setTrackStatus(status string) Action {
	return Action{
		Description: "Set track status to " + status,
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			res := db.Model(&models.Track{}).Where("id IN ?", ids).Update("status", status)
			return res.RowsAffected, res.Error
		},
	}
}

func featureArtists() Action {
	return Action{
		Description: "Mark artists as featured",
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			res := db.Model(&models.Artist{}).Where("id IN ?", ids).Update("featured", true)
			return res.RowsAffected, res.Error
		},
	}
}

func clearArtistBiographies() Action {
	return Action{
		Description: "Clear artist biographies",
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			res := db.Model(&models.Artist{}).Where("id IN ?", ids).Update("biography", "")
			return res.RowsAffected, res.Error
		},
	}
}

func markReleasesDigital() Action {
	return Action{
		Description: "Mark releases as digital",
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			res := db.Model(&models.Release{}).Where("id IN ?", ids).Update("format", models.FormatDigital)
			return res.RowsAffected, res.Error
		},
	}
}

// duplicateReleases copies the selected releases (not their tracks) with a
// " (copy)" title suffix. One transaction for the whole selection.
func duplicateReleases() Action {
	return Action{
		Description: "Duplicate releases",
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			var created int64
			err := db.Transaction(func(tx *gorm.DB) error {
				var releases []models.Release
				if err := tx.Where("id IN ?", ids).Find(&releases).Error; err != nil {
					return err
				}
				for _, r := range releases {
					copyRelease := models.Release{
						Title:       r.Title + " (copy)",
						ArtistID:    r.ArtistID,
						LabelID:     r.LabelID,
						Format:      r.Format,
						ReleaseYear: r.ReleaseYear,
						CoverImage:  r.CoverImage,
					}
					if err := tx.Create(&copyRelease).Error; err != nil {
						return err
					}
					created++
				}
				return nil
			})
			if err != nil {
				return 0, err
			}
			return created, nil
		},
	}
}

// shiftReleaseYears adds the "years" parameter (may be negative) to the
// release year of every selected row.
func shiftReleaseYears() Action {
	return Action{
		Description: "Shift release years",
		Apply: func(db *gorm.DB, ids []uint, params map[string]string) (int64, error) {
			years, err := strconv.Atoi(params["years"])
			if err != nil {
				return 0, ErrBadYears
			}
			res := db.Model(&models.Release{}).
				Where("id IN ?", ids).
				Update("release_year", gorm.Expr("release_year + ?", years))
			return res.RowsAffected, res.Error
		},
	}
}

func setPlaylistVisibility(public bool) Action {
	desc := "Make playlists private"
	if public {
		desc = "Make playlists public"
	}
	return Action{
		Description: desc,
		Apply: func(db *gorm.DB, ids []uint, _ map[string]string) (int64, error) {
			res := db.Model(&models.Playlist{}).Where("id IN ?", ids).Update("is_public", public)
			return res.RowsAffected, res.Error
		},
	}
}
