package models

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrExtensionNotAllowed = errors.New("file extension not allowed")

// Upload allow-lists per file kind. Checked before anything is persisted.
var (
	AudioExtensions    = []string{"mp3", "wav", "ogg", "m4a"}
	LyricsExtensions   = []string{"txt", "pdf", "doc", "docx"}
	DocumentExtensions = []string{"pdf", "doc", "docx", "txt", "jpg", "png"}
)

// Upload subdirectories under the media root.
const (
	ArtistImageDir = "artists"
	CoverImageDir  = "covers"
	AudioDir       = "tracks/audio"
	LyricsDir      = "tracks/lyrics"
	DocumentDir    = "documents"
)

// ExtensionAllowed checks a filename against an allow-list, ignoring case.
func ExtensionAllowed(name string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
