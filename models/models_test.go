package models_test

import (
	"testing"
	"time"

	"github.com/avolkov/musiccatalog/config"
	"github.com/avolkov/musiccatalog/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive for the whole test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, config.Migrate(db))
	return db
}

func createTrack(t *testing.T, db *gorm.DB) (models.Artist, models.Release, models.Track) {
	t.Helper()

	artist := models.Artist{Name: "Arctic Monkeys"}
	require.NoError(t, db.Create(&artist).Error)

	release := models.Release{Title: "Midnight Memories", ArtistID: artist.ID, ReleaseYear: 2022}
	require.NoError(t, db.Create(&release).Error)

	track := models.Track{Title: "Golden Sunrise", ReleaseID: release.ID, DurationSeconds: 215}
	require.NoError(t, db.Create(&track).Error)

	return artist, release, track
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "3:35", models.FormatDuration(215))
	assert.Equal(t, "0:59", models.FormatDuration(59))
	assert.Equal(t, "1:00", models.FormatDuration(60))
	assert.Equal(t, "10:05", models.FormatDuration(605))
}

func TestTrackValidation(t *testing.T) {
	db := testDB(t)
	_, release, _ := createTrack(t, db)

	err := db.Create(&models.Track{Title: "No Duration", ReleaseID: release.ID}).Error
	assert.ErrorIs(t, err, models.ErrDurationRequired)

	err = db.Create(&models.Track{ReleaseID: release.ID, DurationSeconds: 100}).Error
	assert.ErrorIs(t, err, models.ErrTitleRequired)

	err = db.Create(&models.Track{Title: "Bad Status", ReleaseID: release.ID, DurationSeconds: 100, Status: "live"}).Error
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	track := models.Track{Title: "Defaults", ReleaseID: release.ID, DurationSeconds: 100}
	require.NoError(t, db.Create(&track).Error)
	assert.Equal(t, models.StatusDraft, track.Status)
}

func TestReleaseValidation(t *testing.T) {
	db := testDB(t)
	artist, _, _ := createTrack(t, db)

	err := db.Create(&models.Release{ArtistID: artist.ID, ReleaseYear: 2020}).Error
	assert.ErrorIs(t, err, models.ErrTitleRequired)

	err = db.Create(&models.Release{Title: "No Year", ArtistID: artist.ID}).Error
	assert.ErrorIs(t, err, models.ErrYearRequired)

	err = db.Create(&models.Release{Title: "Bad Format", ArtistID: artist.ID, ReleaseYear: 2020, Format: "8-track"}).Error
	assert.ErrorIs(t, err, models.ErrInvalidFormat)

	release := models.Release{Title: "Defaults", ArtistID: artist.ID, ReleaseYear: 2020}
	require.NoError(t, db.Create(&release).Error)
	assert.Equal(t, models.FormatDigital, release.Format)
}

// Batch updates run with an empty statement model; creation-time checks
// must not fire on them.
func TestBatchUpdates(t *testing.T) {
	db := testDB(t)
	artist, release, track := createTrack(t, db)

	res := db.Model(&models.Track{}).Where("id = ?", track.ID).
		Update("status", models.StatusPublished)
	require.NoError(t, res.Error)
	assert.EqualValues(t, 1, res.RowsAffected)

	res = db.Model(&models.Artist{}).Where("id = ?", artist.ID).
		Update("featured", true)
	require.NoError(t, res.Error)
	assert.EqualValues(t, 1, res.RowsAffected)

	res = db.Model(&models.Release{}).Where("id = ?", release.ID).
		Update("format", models.FormatCD)
	require.NoError(t, res.Error)
	assert.EqualValues(t, 1, res.RowsAffected)

	var reloaded models.Track
	require.NoError(t, db.First(&reloaded, track.ID).Error)
	assert.Equal(t, models.StatusPublished, reloaded.Status)
}

func TestArtistRequiresName(t *testing.T) {
	db := testDB(t)
	err := db.Create(&models.Artist{Biography: "anonymous"}).Error
	assert.ErrorIs(t, err, models.ErrNameRequired)
}

func TestArtistSocialLinks(t *testing.T) {
	a := models.Artist{Name: "Daft Punk"}
	assert.False(t, a.HasSocialLinks())
	assert.Empty(t, a.SocialLinks())

	a.SpotifyURL = "https://open.spotify.com/artist/x"
	a.Website = "https://daftpunk.example"
	assert.True(t, a.HasSocialLinks())

	links := a.SocialLinks()
	require.Len(t, links, 2)
	assert.Equal(t, "Website", links[0].Name)
	assert.Equal(t, "Spotify", links[1].Name)
}

func TestReviewRatingBounds(t *testing.T) {
	db := testDB(t)
	_, _, track := createTrack(t, db)

	user := models.User{Username: "alice"}
	require.NoError(t, db.Create(&user).Error)

	err := db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 0}).Error
	assert.ErrorIs(t, err, models.ErrInvalidRating)

	err = db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 6}).Error
	assert.ErrorIs(t, err, models.ErrInvalidRating)

	require.NoError(t, db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 5}).Error)
}

func TestReviewUniquePerUserTrack(t *testing.T) {
	db := testDB(t)
	_, _, track := createTrack(t, db)

	user := models.User{Username: "alice"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 4}).Error)
	err := db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 2}).Error
	assert.Error(t, err)
}

func TestFavoriteUniquePerUserTrack(t *testing.T) {
	db := testDB(t)
	_, _, track := createTrack(t, db)

	user := models.User{Username: "bob"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, TrackID: track.ID}).Error)
	err := db.Create(&models.Favorite{UserID: user.ID, TrackID: track.ID}).Error
	assert.Error(t, err)
}

func TestArtistDeleteCascades(t *testing.T) {
	db := testDB(t)
	artist, _, track := createTrack(t, db)

	user := models.User{Username: "carol"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Scrobble{UserID: user.ID, TrackID: track.ID, ScrobbledAt: time.Now()}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: user.ID, TrackID: track.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, TrackID: track.ID}).Error)

	require.NoError(t, db.Delete(&artist).Error)

	for _, m := range []any{&models.Release{}, &models.Track{}, &models.Scrobble{}, &models.Review{}, &models.Favorite{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T should be gone after artist delete", m)
	}
}

func TestLabelDeleteClearsReference(t *testing.T) {
	db := testDB(t)
	artist, _, _ := createTrack(t, db)

	label := models.Label{Name: "Independent"}
	require.NoError(t, db.Create(&label).Error)

	release := models.Release{Title: "Analog Soul", ArtistID: artist.ID, LabelID: &label.ID, ReleaseYear: 2021}
	require.NoError(t, db.Create(&release).Error)

	require.NoError(t, db.Delete(&label).Error)

	var reloaded models.Release
	require.NoError(t, db.First(&reloaded, release.ID).Error)
	assert.Nil(t, reloaded.LabelID)
}

func TestDocumentValidation(t *testing.T) {
	db := testDB(t)
	artist, _, _ := createTrack(t, db)

	err := db.Create(&models.Document{Title: "Contract", ArtistID: artist.ID, File: "documents/contract.exe", Type: models.DocContract}).Error
	assert.ErrorIs(t, err, models.ErrExtensionNotAllowed)

	err = db.Create(&models.Document{Title: "Contract", ArtistID: artist.ID, File: "documents/contract.pdf", Type: "invoice"}).Error
	assert.ErrorIs(t, err, models.ErrInvalidDocumentType)

	doc := models.Document{Title: "Contract", ArtistID: artist.ID, File: "documents/contract.pdf", Size: 2 * 1024 * 1024}
	require.NoError(t, db.Create(&doc).Error)
	assert.Equal(t, models.DocOther, doc.Type)
	assert.Equal(t, "PDF", doc.Extension())
	assert.Equal(t, "2.1 MB", doc.DisplaySize())
}

func TestExtensionAllowed(t *testing.T) {
	assert.True(t, models.ExtensionAllowed("song.MP3", models.AudioExtensions))
	assert.True(t, models.ExtensionAllowed("lyrics.txt", models.LyricsExtensions))
	assert.False(t, models.ExtensionAllowed("song.exe", models.AudioExtensions))
	assert.False(t, models.ExtensionAllowed("noextension", models.AudioExtensions))
}

func TestPlaylistTotals(t *testing.T) {
	p := models.Playlist{Tracks: []models.Track{
		{DurationSeconds: 200},
		{DurationSeconds: 125},
	}}
	assert.Equal(t, 2, p.TrackCount())
	assert.Equal(t, "5m25s", p.TotalDuration())
}

func TestScrobbleListenedToday(t *testing.T) {
	today := models.Scrobble{ScrobbledAt: time.Now()}
	assert.True(t, today.ListenedToday())

	yesterday := models.Scrobble{ScrobbledAt: time.Now().Add(-25 * time.Hour)}
	assert.False(t, yesterday.ListenedToday())
}

func TestReleaseHelpers(t *testing.T) {
	r := models.Release{CreatedAt: time.Now().Add(-24 * time.Hour)}
	assert.True(t, r.IsNew())
	assert.False(t, r.HasStreamingLinks())

	r.CreatedAt = time.Now().Add(-40 * 24 * time.Hour)
	r.BandcampURL = "https://x.bandcamp.com"
	assert.False(t, r.IsNew())
	assert.True(t, r.HasStreamingLinks())
}
