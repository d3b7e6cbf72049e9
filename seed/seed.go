// Package seed fills the database with sample catalog data for local
// development. Existing rows are removed first, in dependency order.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/avolkov/musiccatalog/models"
	"gorm.io/gorm"
)

var genreNames = []string{"Rock", "Pop", "Hip-Hop", "Jazz", "Electronic", "Classical", "Country", "R&B"}

var labelNames = []string{"Sony Music", "Universal Music", "Warner Music", "Independent"}

var artistNames = []string{
	"Arctic Monkeys", "Taylor Swift", "Kendrick Lamar", "Norah Jones",
	"Daft Punk", "Beethoven", "Johnny Cash", "Beyoncé",
	"The Beatles", "Radiohead", "Adele", "Drake",
}

var releaseTitles = []string{
	"Midnight Memories", "Summer Vibes", "Urban Dreams", "Ocean Waves",
	"Mountain Echo", "Desert Wind", "Forest Whisper", "River Flow",
	"Digital Age", "Analog Soul", "Future Vision", "Past Reflections",
}

var trackTitles = []string{
	"Golden Sunrise", "Starry Night", "Electric Storm", "Silent Rain",
	"Neon Lights", "Acoustic Morning", "Digital Love", "Analog Dreams",
	"City Pulse", "Country Road", "Cosmic Journey", "Earth Song",
}

var usernames = []string{"alice", "bob", "carol", "dave"}

// Run wipes the catalog and recreates the sample data set. A fixed random
// source keeps repeated runs identical.
func Run(db *gorm.DB) error {
	rng := rand.New(rand.NewSource(42))

	if err := wipe(db); err != nil {
		return err
	}

	genres := make([]models.Genre, 0, len(genreNames))
	for _, name := range genreNames {
		g := models.Genre{Name: name, Description: fmt.Sprintf("All things %s.", name)}
		if err := db.Create(&g).Error; err != nil {
			return fmt.Errorf("seeding genre %q: %w", name, err)
		}
		genres = append(genres, g)
	}

	labels := make([]models.Label, 0, len(labelNames))
	for _, name := range labelNames {
		founded := 1950 + rng.Intn(51)
		l := models.Label{
			Name:        name,
			Description: fmt.Sprintf("%s record label.", name),
			FoundedYear: &founded,
		}
		if err := db.Create(&l).Error; err != nil {
			return fmt.Errorf("seeding label %q: %w", name, err)
		}
		labels = append(labels, l)
	}

	artists := make([]models.Artist, 0, len(artistNames))
	for _, name := range artistNames {
		a := models.Artist{
			Name:            name,
			Biography:       fmt.Sprintf("%s is a well-known act in their genre.", name),
			Featured:        rng.Intn(2) == 0,
			PopularityScore: rng.Intn(101),
		}
		if err := db.Create(&a).Error; err != nil {
			return fmt.Errorf("seeding artist %q: %w", name, err)
		}
		artists = append(artists, a)
	}

	formats := []string{models.FormatDigital, models.FormatCD, models.FormatVinyl}
	releases := make([]models.Release, 0, len(releaseTitles))
	for _, title := range releaseTitles {
		labelID := labels[rng.Intn(len(labels))].ID
		r := models.Release{
			Title:       title,
			ArtistID:    artists[rng.Intn(len(artists))].ID,
			LabelID:     &labelID,
			Format:      formats[rng.Intn(len(formats))],
			ReleaseYear: 2018 + rng.Intn(7),
			Featured:    rng.Intn(2) == 0,
			IsPremium:   rng.Intn(2) == 0,
		}
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("seeding release %q: %w", title, err)
		}
		releases = append(releases, r)
	}

	sides := []string{"A", "B"}
	statuses := []string{models.StatusDraft, models.StatusPublished, models.StatusPublished}
	tracks := make([]models.Track, 0, len(trackTitles))
	for _, title := range trackTitles {
		t := models.Track{
			Title:           title,
			ReleaseID:       releases[rng.Intn(len(releases))].ID,
			DurationSeconds: 180 + rng.Intn(121),
			Position:        fmt.Sprintf("%s%d", sides[rng.Intn(2)], 1+rng.Intn(6)),
			Status:          statuses[rng.Intn(len(statuses))],
			PlayCount:       rng.Intn(5001),
			Featured:        rng.Intn(2) == 0,
		}
		if err := db.Create(&t).Error; err != nil {
			return fmt.Errorf("seeding track %q: %w", title, err)
		}
		picked := rng.Perm(len(genres))[:1+rng.Intn(2)]
		for _, gi := range picked {
			if err := db.Model(&t).Association("Genres").Append(&genres[gi]); err != nil {
				return fmt.Errorf("tagging track %q: %w", title, err)
			}
		}
		tracks = append(tracks, t)
	}

	users := make([]models.User, 0, len(usernames))
	for _, name := range usernames {
		u := models.User{Username: name, Email: name + "@example.com"}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("seeding user %q: %w", name, err)
		}
		users = append(users, u)
	}

	if err := seedListening(db, rng, users, tracks); err != nil {
		return err
	}

	return promoteHomepageContent(db, rng, artists, tracks, releases)
}

// seedListening creates one playlist per user plus a spread of scrobbles,
// reviews and favorites.
func seedListening(db *gorm.DB, rng *rand.Rand, users []models.User, tracks []models.Track) error {
	for _, u := range users {
		p := models.Playlist{
			Title:    fmt.Sprintf("%s's mix", u.Username),
			UserID:   u.ID,
			IsPublic: rng.Intn(2) == 0,
		}
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("seeding playlist for %q: %w", u.Username, err)
		}
		for _, ti := range rng.Perm(len(tracks))[:3+rng.Intn(3)] {
			if err := db.Model(&p).Association("Tracks").Append(&tracks[ti]); err != nil {
				return fmt.Errorf("filling playlist for %q: %w", u.Username, err)
			}
		}

		for _, ti := range rng.Perm(len(tracks))[:4] {
			s := models.Scrobble{
				UserID:      u.ID,
				TrackID:     tracks[ti].ID,
				ScrobbledAt: time.Now().Add(-time.Duration(rng.Intn(72)) * time.Hour),
			}
			if err := db.Create(&s).Error; err != nil {
				return fmt.Errorf("seeding scrobbles for %q: %w", u.Username, err)
			}
		}

		for _, ti := range rng.Perm(len(tracks))[:2] {
			r := models.Review{
				UserID:  u.ID,
				TrackID: tracks[ti].ID,
				Rating:  1 + rng.Intn(5),
				Comment: "Solid track.",
			}
			if err := db.Create(&r).Error; err != nil {
				return fmt.Errorf("seeding reviews for %q: %w", u.Username, err)
			}
		}

		for _, ti := range rng.Perm(len(tracks))[:2] {
			f := models.Favorite{UserID: u.ID, TrackID: tracks[ti].ID}
			if err := db.Create(&f).Error; err != nil {
				return fmt.Errorf("seeding favorites for %q: %w", u.Username, err)
			}
		}
	}
	return nil
}

// promoteHomepageContent marks a handful of rows as featured or popular so
// the homepage widgets have something to show.
func promoteHomepageContent(db *gorm.DB, rng *rand.Rand, artists []models.Artist, tracks []models.Track, releases []models.Release) error {
	for i := range artists[:4] {
		updates := map[string]any{"featured": true, "popularity_score": 80 + rng.Intn(21)}
		if err := db.Model(&artists[i]).Updates(updates).Error; err != nil {
			return fmt.Errorf("promoting artist %q: %w", artists[i].Name, err)
		}
	}
	for i := range tracks[:5] {
		updates := map[string]any{"featured": true, "play_count": 1000 + rng.Intn(9001)}
		if err := db.Model(&tracks[i]).Updates(updates).Error; err != nil {
			return fmt.Errorf("promoting track %q: %w", tracks[i].Title, err)
		}
	}
	for i := range releases[:3] {
		if err := db.Model(&releases[i]).Update("featured", true).Error; err != nil {
			return fmt.Errorf("promoting release %q: %w", releases[i].Title, err)
		}
	}
	return nil
}

// wipe removes existing rows, children before parents.
func wipe(db *gorm.DB) error {
	order := []any{
		&models.Favorite{},
		&models.Review{},
		&models.Scrobble{},
		&models.Playlist{},
		&models.Document{},
		&models.Track{},
		&models.Release{},
		&models.Artist{},
		&models.Genre{},
		&models.Label{},
		&models.User{},
	}
	for _, m := range order {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", m, err)
		}
	}
	return nil
}
