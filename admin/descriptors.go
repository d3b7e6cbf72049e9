package admin

import (
	"strings"

	"github.com/avolkov/musiccatalog/models"
	"gorm.io/gorm"
)

// NewRegistry builds the console configuration for every catalog entity.
func NewRegistry() Registry {
	return Registry{
		"artists":   artistDescriptor(),
		"labels":    labelDescriptor(),
		"genres":    genreDescriptor(),
		"releases":  releaseDescriptor(),
		"tracks":    trackDescriptor(),
		"playlists": playlistDescriptor(),
		"scrobbles": scrobbleDescriptor(),
		"documents": documentDescriptor(),
	}
}

func searchClause(db *gorm.DB, opts ListOptions, fields ...string) *gorm.DB {
	if opts.Search == "" {
		return db
	}
	pattern := "%" + strings.ToLower(opts.Search) + "%"
	conds := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		conds[i] = "LOWER(" + f + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}

func artistDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "artists",
		Columns:      []string{"name", "featured", "release_count", "has_social_links", "created_at"},
		SearchFields: []string{"name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var artists []models.Artist
			q := searchClause(db.Preload("Releases").Order("name"), opts, "name")
			if err := q.Find(&artists).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(artists))
			for i := range artists {
				a := &artists[i]
				rows = append(rows, Row{
					"id":               a.ID,
					"name":             a.Name,
					"featured":         a.Featured,
					"release_count":    len(a.Releases),
					"has_social_links": a.HasSocialLinks(),
					"created_at":       a.CreatedAt,
				})
			}
			return rows, nil
		},
		Actions: map[string]Action{
			"feature":           featureArtists(),
			"clear-biographies": clearArtistBiographies(),
		},
	}
}

func labelDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "labels",
		Columns:      []string{"name", "founded_year"},
		SearchFields: []string{"name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var labels []models.Label
			if err := searchClause(db.Order("name"), opts, "name").Find(&labels).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(labels))
			for _, l := range labels {
				rows = append(rows, Row{"id": l.ID, "name": l.Name, "founded_year": l.FoundedYear})
			}
			return rows, nil
		},
	}
}

func genreDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "genres",
		Columns:      []string{"name", "track_count"},
		SearchFields: []string{"name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			type rec struct {
				ID         uint
				Name       string
				TrackCount int
			}
			var recs []rec
			q := db.Model(&models.Genre{}).
				Select("genres.id, genres.name, COUNT(track_genres.track_id) AS track_count").
				Joins("LEFT JOIN track_genres ON track_genres.genre_id = genres.id").
				Group("genres.id").
				Order("genres.name")
			if err := searchClause(q, opts, "genres.name").Scan(&recs).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, Row{"id": r.ID, "name": r.Name, "track_count": r.TrackCount})
			}
			return rows, nil
		},
	}
}

func releaseDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "releases",
		Columns:      []string{"title", "artist", "release_year", "format", "track_count", "is_new", "has_streaming_links"},
		SearchFields: []string{"releases.title", "artists.name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var releases []models.Release
			q := db.Preload("Artist").Preload("Tracks").
				Joins("JOIN artists ON artists.id = releases.artist_id").
				Order("releases.release_year DESC, releases.title")
			if err := searchClause(q, opts, "releases.title", "artists.name").Find(&releases).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(releases))
			for i := range releases {
				r := &releases[i]
				row := Row{
					"id":                  r.ID,
					"title":               r.Title,
					"release_year":        r.ReleaseYear,
					"format":              r.Format,
					"track_count":         len(r.Tracks),
					"is_new":              r.IsNew(),
					"has_streaming_links": r.HasStreamingLinks(),
				}
				if r.Artist != nil {
					row["artist"] = r.Artist.Name
				}
				rows = append(rows, row)
			}
			return rows, nil
		},
		Actions: map[string]Action{
			"mark-digital": markReleasesDigital(),
			"duplicate":    duplicateReleases(),
			"shift-years":  shiftReleaseYears(),
		},
	}
}

func trackDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "tracks",
		Columns:      []string{"title", "artist", "release", "status", "duration", "has_audio", "has_lyrics", "added_recently", "created_at"},
		SearchFields: []string{"tracks.title", "releases.title", "artists.name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var tracks []models.Track
			q := db.Preload("Release.Artist").
				Joins("JOIN releases ON releases.id = tracks.release_id").
				Joins("JOIN artists ON artists.id = releases.artist_id").
				Order("tracks.release_id, tracks.position")
			if err := searchClause(q, opts, "tracks.title", "releases.title", "artists.name").Find(&tracks).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(tracks))
			for i := range tracks {
				t := &tracks[i]
				row := Row{
					"id":             t.ID,
					"title":          t.Title,
					"status":         t.Status,
					"duration":       t.FormattedDuration(),
					"has_audio":      t.HasAudio(),
					"has_lyrics":     t.HasLyrics(),
					"added_recently": t.AddedRecently(),
					"created_at":     t.CreatedAt,
				}
				if t.Release != nil {
					row["release"] = t.Release.Title
					if t.Release.Artist != nil {
						row["artist"] = t.Release.Artist.Name
					}
				}
				rows = append(rows, row)
			}
			return rows, nil
		},
		Actions: map[string]Action{
			"publish": setTrackStatus(models.StatusPublished),
			"draft":   setTrackStatus(models.StatusDraft),
			"archive": setTrackStatus(models.StatusArchived),
		},
	}
}

func playlistDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "playlists",
		Columns:      []string{"title", "user", "track_count", "total_duration", "is_public", "created_at"},
		SearchFields: []string{"playlists.title", "users.username"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var playlists []models.Playlist
			q := db.Preload("User").Preload("Tracks").
				Joins("JOIN users ON users.id = playlists.user_id").
				Order("playlists.created_at DESC")
			if err := searchClause(q, opts, "playlists.title", "users.username").Find(&playlists).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(playlists))
			for i := range playlists {
				p := &playlists[i]
				row := Row{
					"id":             p.ID,
					"title":          p.Title,
					"track_count":    p.TrackCount(),
					"total_duration": p.TotalDuration(),
					"is_public":      p.IsPublic,
					"created_at":     p.CreatedAt,
				}
				if p.User != nil {
					row["user"] = p.User.Username
				}
				rows = append(rows, row)
			}
			return rows, nil
		},
		Actions: map[string]Action{
			"make-public":  setPlaylistVisibility(true),
			"make-private": setPlaylistVisibility(false),
		},
	}
}

func scrobbleDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "scrobbles",
		Columns:      []string{"user", "track", "artist", "scrobbled_at", "listened_today"},
		SearchFields: []string{"tracks.title", "users.username"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var scrobbles []models.Scrobble
			q := db.Preload("User").Preload("Track.Release.Artist").
				Joins("JOIN users ON users.id = scrobbles.user_id").
				Joins("JOIN tracks ON tracks.id = scrobbles.track_id").
				Order("scrobbles.scrobbled_at DESC")
			if err := searchClause(q, opts, "tracks.title", "users.username").Find(&scrobbles).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(scrobbles))
			for i := range scrobbles {
				sc := &scrobbles[i]
				row := Row{
					"id":             sc.ID,
					"scrobbled_at":   sc.ScrobbledAt,
					"listened_today": sc.ListenedToday(),
				}
				if sc.User != nil {
					row["user"] = sc.User.Username
				}
				if sc.Track != nil {
					row["track"] = sc.Track.Title
					if sc.Track.Release != nil && sc.Track.Release.Artist != nil {
						row["artist"] = sc.Track.Release.Artist.Name
					}
				}
				rows = append(rows, row)
			}
			return rows, nil
		},
	}
}

func documentDescriptor() *Descriptor {
	return &Descriptor{
		Name:         "documents",
		Columns:      []string{"title", "artist", "document_type", "extension", "size", "uploaded_at"},
		SearchFields: []string{"documents.title", "artists.name"},
		List: func(db *gorm.DB, opts ListOptions) ([]Row, error) {
			var docs []models.Document
			q := db.Preload("Artist").
				Joins("JOIN artists ON artists.id = documents.artist_id").
				Order("documents.uploaded_at DESC")
			if err := searchClause(q, opts, "documents.title", "artists.name").Find(&docs).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(docs))
			for i := range docs {
				d := &docs[i]
				row := Row{
					"id":            d.ID,
					"title":         d.Title,
					"document_type": d.Type,
					"extension":     d.Extension(),
					"size":          d.DisplaySize(),
					"uploaded_at":   d.UploadedAt,
				}
				if d.Artist != nil {
					row["artist"] = d.Artist.Name
				}
				rows = append(rows, row)
			}
			return rows, nil
		},
	}
}
