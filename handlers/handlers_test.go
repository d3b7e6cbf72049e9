package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avolkov/musiccatalog/config"
	"github.com/avolkov/musiccatalog/handlers"
	"github.com/avolkov/musiccatalog/models"
	"github.com/avolkov/musiccatalog/spotify"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*handlers.Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, config.Migrate(db))

	s := handlers.NewServer(db, t.TempDir(), spotify.New("", ""))
	return s, s.Router()
}

func seedRelease(t *testing.T, db *gorm.DB) models.Release {
	t.Helper()

	artist := models.Artist{Name: "Arctic Monkeys"}
	require.NoError(t, db.Create(&artist).Error)

	release := models.Release{Title: "Midnight Memories", ArtistID: artist.ID, ReleaseYear: 2022}
	require.NoError(t, db.Create(&release).Error)
	return release
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHomepage(t *testing.T) {
	s, router := newTestServer(t)
	seedRelease(t, s.DB)

	w := get(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "stats")
	assert.Contains(t, body, "new_releases")
}

func TestTrackCreateAndDetail(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	w := postForm(router, "/tracks", url.Values{
		"title":            {"Golden Sunrise"},
		"release_id":       {fmt.Sprint(release.ID)},
		"duration_seconds": {"215"},
		"position":         {"A1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/tracks/"))

	w = get(router, location)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "3:35", body["duration"])
	assert.Equal(t, false, body["has_audio"])
}

func TestTrackCreateValidation(t *testing.T) {
	s, router := newTestServer(t)
	seedRelease(t, s.DB)

	w := postForm(router, "/tracks", url.Values{"title": {"No Release"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(router, "/tracks", url.Values{
		"title":            {"Ghost Release"},
		"release_id":       {"9999"},
		"duration_seconds": {"100"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Release not found", decode(t, w)["error"])

	var count int64
	require.NoError(t, s.DB.Model(&models.Track{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTrackEditAndDelete(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	track := models.Track{Title: "Starry Night", ReleaseID: release.ID, DurationSeconds: 200}
	require.NoError(t, s.DB.Create(&track).Error)

	w := postForm(router, fmt.Sprintf("/tracks/%d/edit", track.ID), url.Values{
		"title":            {"Starry Night (remaster)"},
		"duration_seconds": {"210"},
		"status":           {"published"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var reloaded models.Track
	require.NoError(t, s.DB.First(&reloaded, track.ID).Error)
	assert.Equal(t, "Starry Night (remaster)", reloaded.Title)
	assert.Equal(t, 210, reloaded.DurationSeconds)
	assert.Equal(t, models.StatusPublished, reloaded.Status)

	w = postForm(router, fmt.Sprintf("/tracks/%d/edit", track.ID), url.Values{
		"title":            {"Bad"},
		"duration_seconds": {"210"},
		"status":           {"live"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(router, fmt.Sprintf("/tracks/%d/delete", track.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(router, fmt.Sprintf("/tracks/%d", track.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkPublishTracks(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	for _, title := range []string{"Draft One", "Draft Two"} {
		require.NoError(t, s.DB.Create(&models.Track{
			Title: title, ReleaseID: release.ID, DurationSeconds: 180, Status: models.StatusDraft,
		}).Error)
	}
	require.NoError(t, s.DB.Create(&models.Track{
		Title: "Already Out", ReleaseID: release.ID, DurationSeconds: 180, Status: models.StatusPublished,
	}).Error)

	w := postForm(router, "/tracks/bulk-publish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["updated"])

	w = postForm(router, "/tracks/bulk-publish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["updated"])
}

func TestGenreCRUD(t *testing.T) {
	s, router := newTestServer(t)

	w := postForm(router, "/genres", url.Values{"name": {"Jazz"}, "description": {"Smooth."}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var genre models.Genre
	require.NoError(t, s.DB.Where("name = ?", "Jazz").First(&genre).Error)

	w = postForm(router, "/genres", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(router, fmt.Sprintf("/genres/%d/edit", genre.ID), url.Values{"name": {"Jazz Fusion"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(router, fmt.Sprintf("/genres/%d", genre.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jazz Fusion")

	w = postForm(router, fmt.Sprintf("/genres/%d/delete", genre.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(router, fmt.Sprintf("/genres/%d", genre.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenreDeleteKeepsTracks(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	genre := models.Genre{Name: "Rock"}
	require.NoError(t, s.DB.Create(&genre).Error)

	track := models.Track{Title: "City Pulse", ReleaseID: release.ID, DurationSeconds: 190}
	require.NoError(t, s.DB.Create(&track).Error)
	require.NoError(t, s.DB.Model(&track).Association("Genres").Append(&genre))

	w := postForm(router, fmt.Sprintf("/genres/%d/delete", genre.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var count int64
	require.NoError(t, s.DB.Model(&models.Track{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSearchTracks(t *testing.T) {
	s, router := newTestServer(t)

	artist := models.Artist{Name: "Lovebirds"}
	require.NoError(t, s.DB.Create(&artist).Error)
	release := models.Release{Title: "Nest", ArtistID: artist.ID, ReleaseYear: 2021}
	require.NoError(t, s.DB.Create(&release).Error)

	// "Love Story" matches on title AND artist name; one query means it
	// still shows up once.
	for _, title := range []string{"Love Story", "Feathers"} {
		require.NoError(t, s.DB.Create(&models.Track{
			Title: title, ReleaseID: release.ID, DurationSeconds: 180,
		}).Error)
	}

	w := get(router, "/search/tracks?q=LOVE")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["found"])
	tracks := body["tracks"].([]any)
	assert.Len(t, tracks, 2)

	w = get(router, "/search/tracks?q=nothing-here")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["found"])
}

func TestSearchArtistsCaseModes(t *testing.T) {
	s, router := newTestServer(t)

	for _, name := range []string{"Adele", "DELTA Waves"} {
		require.NoError(t, s.DB.Create(&models.Artist{Name: name}).Error)
	}

	w := get(router, "/search/artists?q=del")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["artists"].([]any), 2)

	w = get(router, "/search/artists?q=del&mode=sensitive")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["artists"].([]any), 1)
}

func multipartForm(t *testing.T, fields map[string]string, fileField, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadTrackAudio(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	track := models.Track{Title: "Electric Storm", ReleaseID: release.ID, DurationSeconds: 222}
	require.NoError(t, s.DB.Create(&track).Error)

	// Disallowed extension leaves the track untouched.
	buf, ct := multipartForm(t, nil, "file", "virus.exe")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/tracks/%d/audio", track.ID), buf)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded models.Track
	require.NoError(t, s.DB.First(&reloaded, track.ID).Error)
	assert.Empty(t, reloaded.AudioFile)

	buf, ct = multipartForm(t, nil, "file", "storm.mp3")
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/tracks/%d/audio", track.ID), buf)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	require.NoError(t, s.DB.First(&reloaded, track.ID).Error)
	assert.True(t, reloaded.HasAudio())
	assert.Contains(t, reloaded.AudioFile, "storm.mp3")
}

func TestUploadDocument(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	buf, ct := multipartForm(t, map[string]string{
		"title":         "Recording Contract",
		"document_type": models.DocContract,
	}, "file", "contract.pdf")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/artists/%d/documents", release.ArtistID), buf)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var doc models.Document
	require.NoError(t, s.DB.First(&doc).Error)
	assert.Equal(t, "Recording Contract", doc.Title)
	assert.Equal(t, models.DocContract, doc.Type)
	assert.EqualValues(t, len("payload"), doc.Size)
}

func TestPlaylistLifecycle(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	user := models.User{Username: "alice"}
	require.NoError(t, s.DB.Create(&user).Error)

	track := models.Track{Title: "Cosmic Journey", ReleaseID: release.ID, DurationSeconds: 215}
	require.NoError(t, s.DB.Create(&track).Error)

	w := postForm(router, "/playlists", url.Values{
		"title":   {"Morning Mix"},
		"user_id": {fmt.Sprint(user.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")

	w = postForm(router, location+"/tracks", url.Values{"track_id": {fmt.Sprint(track.ID)}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(router, location)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["track_count"])
	assert.Equal(t, "3m35s", body["total_duration"])

	w = postForm(router, fmt.Sprintf("%s/tracks/%d/remove", location, track.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = get(router, location)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["track_count"])

	w = postForm(router, "/playlists", url.Values{"title": {"Orphan"}, "user_id": {"9999"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["error"])
}

type stubSpotify struct {
	info *spotify.ArtistInfo
	err  error
}

func (s *stubSpotify) Enabled() bool { return true }

func (s *stubSpotify) LookupArtist(ctx context.Context, name string) (*spotify.ArtistInfo, error) {
	return s.info, s.err
}

func TestArtistSpotifySync(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	// Credentials unset, sync is off.
	w := postForm(router, fmt.Sprintf("/artists/%d/spotify-sync", release.ArtistID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.Spotify = &stubSpotify{info: &spotify.ArtistInfo{
		Name:       "Arctic Monkeys",
		URL:        "https://open.spotify.com/artist/abc",
		ImageURL:   "https://i.scdn.co/image/abc",
		Popularity: 87,
	}}
	w = postForm(router, fmt.Sprintf("/artists/%d/spotify-sync", release.ArtistID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var artist models.Artist
	require.NoError(t, s.DB.First(&artist, release.ArtistID).Error)
	assert.Equal(t, "https://open.spotify.com/artist/abc", artist.SpotifyURL)
	assert.Equal(t, 87, artist.PopularityScore)
	assert.Equal(t, "https://i.scdn.co/image/abc", artist.Image)

	s.Spotify = &stubSpotify{err: spotify.ErrNotFound}
	w = postForm(router, fmt.Sprintf("/artists/%d/spotify-sync", release.ArtistID), nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAdminConsole(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	track := models.Track{Title: "Digital Love", ReleaseID: release.ID, DurationSeconds: 215, Status: models.StatusDraft}
	require.NoError(t, s.DB.Create(&track).Error)

	w := get(router, "/admin/tracks")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "tracks", body["entity"])
	assert.Len(t, body["rows"].([]any), 1)

	w = get(router, "/admin/invoices")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postForm(router, "/admin/tracks/actions/publish", url.Values{"ids": {fmt.Sprint(track.ID)}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["affected"])

	var reloaded models.Track
	require.NoError(t, s.DB.First(&reloaded, track.ID).Error)
	assert.Equal(t, models.StatusPublished, reloaded.Status)

	w = postForm(router, "/admin/tracks/actions/explode", url.Values{"ids": {fmt.Sprint(track.ID)}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postForm(router, "/admin/releases/actions/shift-years", url.Values{
		"ids":   {fmt.Sprint(release.ID)},
		"years": {"many"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminExports(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	track := models.Track{Title: "Golden Sunrise", ReleaseID: release.ID, DurationSeconds: 215, Status: models.StatusPublished}
	require.NoError(t, s.DB.Create(&track).Error)

	w := get(router, "/admin/export/tracks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tracks_report.pdf")
	assert.Contains(t, w.Body.String(), "Golden Sunrise")
	assert.Contains(t, w.Body.String(), "3:35")

	w = get(router, "/admin/export/artists")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "artists_report.pdf")
	assert.Contains(t, w.Body.String(), "Arctic Monkeys")

	w = get(router, fmt.Sprintf("/admin/export/releases/%d", release.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), fmt.Sprintf("release_%d.pdf", release.ID))
	assert.Contains(t, w.Body.String(), "Midnight Memories")

	w = get(router, "/admin/export/releases/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminExportIDFilter(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	keep := models.Track{Title: "City Pulse", ReleaseID: release.ID, DurationSeconds: 180}
	require.NoError(t, s.DB.Create(&keep).Error)
	skip := models.Track{Title: "Desert Wind", ReleaseID: release.ID, DurationSeconds: 190}
	require.NoError(t, s.DB.Create(&skip).Error)

	w := get(router, fmt.Sprintf("/admin/export/tracks?ids=%d", keep.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "City Pulse")
	assert.NotContains(t, w.Body.String(), "Desert Wind")

	w = get(router, "/admin/export/tracks?ids=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(router, "/admin/export/artists?ids=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReleasesWithoutLabel(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	label := models.Label{Name: "Independent"}
	require.NoError(t, s.DB.Create(&label).Error)
	signed := models.Release{Title: "Signed", ArtistID: release.ArtistID, LabelID: &label.ID, ReleaseYear: 2023}
	require.NoError(t, s.DB.Create(&signed).Error)

	w := get(router, "/releases/without-label")
	require.Equal(t, http.StatusOK, w.Code)
	releases := decode(t, w)["releases"].([]any)
	require.Len(t, releases, 1)
	assert.Equal(t, "Midnight Memories", releases[0].(map[string]any)["title"])
}

func TestTracksWithoutGenres(t *testing.T) {
	s, router := newTestServer(t)
	release := seedRelease(t, s.DB)

	genre := models.Genre{Name: "Electronic"}
	require.NoError(t, s.DB.Create(&genre).Error)

	tagged := models.Track{Title: "Neon Lights", ReleaseID: release.ID, DurationSeconds: 180}
	require.NoError(t, s.DB.Create(&tagged).Error)
	require.NoError(t, s.DB.Model(&tagged).Association("Genres").Append(&genre))

	bare := models.Track{Title: "Silent Rain", ReleaseID: release.ID, DurationSeconds: 180}
	require.NoError(t, s.DB.Create(&bare).Error)

	w := get(router, "/tracks/without-genres")
	require.Equal(t, http.StatusOK, w.Code)
	tracks := decode(t, w)["tracks"].([]any)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Silent Rain", tracks[0].(map[string]any)["title"])
}
