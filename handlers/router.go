package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/musiccatalog/admin"
	"github.com/avolkov/musiccatalog/spotify"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SpotifyLookup is the metadata source used by the sync endpoints.
type SpotifyLookup interface {
	Enabled() bool
	LookupArtist(ctx context.Context, name string) (*spotify.ArtistInfo, error)
}

// Server holds the shared dependencies of the request handlers.
type Server struct {
	DB       *gorm.DB
	MediaDir string
	Spotify  SpotifyLookup
}

func NewServer(db *gorm.DB, mediaDir string, sp SpotifyLookup) *Server {
	return &Server{DB: db, MediaDir: mediaDir, Spotify: sp}
}

// Router wires every catalog, CRUD, search and admin route.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Homepage)
	r.GET("/search", s.Search)
	r.GET("/search/tracks", s.SearchTracks)
	r.GET("/search/artists", s.SearchArtists)
	r.GET("/search/releases", s.SearchReleases)

	r.GET("/stats/artists", s.ArtistStats)
	r.GET("/stats/tracks", s.TrackStats)
	r.GET("/stats/genres", s.GenreStats)

	r.GET("/artists/:id", s.ArtistDetail)
	r.GET("/artists/:id/social", s.ArtistSocialLinks)
	r.POST("/artists/:id/spotify-sync", s.ArtistSpotifySync)
	r.POST("/artists/:id/documents", s.UploadDocument)
	r.GET("/artists/without-releases", s.ArtistsWithoutReleases)
	r.GET("/artists/with-links", s.ArtistsWithLinks)
	r.GET("/artists-by-label", s.ArtistsByLabel)
	r.GET("/artists-by-genre", s.ArtistsByGenre)
	r.GET("/tracks-by-artist", s.TracksByArtist)

	r.GET("/releases/:id", s.ReleaseDetail)
	r.GET("/releases/year/:year", s.ReleasesByYear)
	r.GET("/releases/popular", s.PopularReleases)
	r.GET("/releases/digital/recent", s.RecentDigitalReleases)
	r.GET("/releases/order/year", s.ReleasesOrderedByYear)
	r.GET("/releases/without-label", s.ReleasesWithoutLabel)
	r.GET("/releases/old-non-digital", s.OldNonDigitalReleases)
	r.GET("/releases/spotify", s.ReleasesOnSpotify)

	r.GET("/tracks", s.TrackList)
	r.POST("/tracks", s.TrackCreate)
	r.GET("/tracks/:id", s.TrackDetail)
	r.POST("/tracks/:id/edit", s.TrackEdit)
	r.POST("/tracks/:id/delete", s.TrackDelete)
	r.POST("/tracks/:id/audio", s.UploadTrackAudio)
	r.POST("/tracks/:id/lyrics", s.UploadTrackLyrics)
	r.GET("/tracks/genre/:name", s.TracksByGenre)
	r.GET("/tracks/non-digital/genre/:name", s.NonDigitalTracksByGenre)
	r.GET("/tracks/order/duration", s.TracksByDuration)
	r.GET("/tracks/without-genres", s.TracksWithoutGenres)
	r.GET("/tracks/without-position", s.TracksWithoutPosition)
	r.GET("/tracks/long", s.LongTracks)
	r.GET("/tracks/recent-digital", s.RecentDigitalTracks)
	r.POST("/tracks/bulk-publish", s.BulkPublishTracks)
	r.POST("/tracks/bulk-delete-archived", s.BulkDeleteArchivedTracks)

	r.GET("/genres", s.GenreList)
	r.POST("/genres", s.GenreCreate)
	r.GET("/genres/:id", s.GenreDetail)
	r.POST("/genres/:id/edit", s.GenreEdit)
	r.POST("/genres/:id/delete", s.GenreDelete)

	r.GET("/playlists", s.PlaylistList)
	r.POST("/playlists", s.PlaylistCreate)
	r.GET("/playlists/:id", s.PlaylistDetail)
	r.POST("/playlists/:id/edit", s.PlaylistEdit)
	r.POST("/playlists/:id/delete", s.PlaylistDelete)
	r.POST("/playlists/:id/tracks", s.PlaylistAddTrack)
	r.POST("/playlists/:id/tracks/:track_id/remove", s.PlaylistRemoveTrack)

	admin.Register(r.Group("/admin"), s.DB)

	return r
}

// idParam parses the numeric :id (or other named) path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func currentYear() int {
	return time.Now().Year()
}
