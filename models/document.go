package models

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

// Document types.
const (
	DocContract   = "contract"
	DocLicense    = "license"
	DocSheetMusic = "sheet_music"
	DocChords     = "chords"
	DocOther      = "other"
)

var (
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrFileRequired        = errors.New("file is required")
)

func ValidDocumentType(t string) bool {
	switch t {
	case DocContract, DocLicense, DocSheetMusic, DocChords, DocOther:
		return true
	}
	return false
}

// Document is a file attached to an artist: contracts, licenses, sheet
// music and the like.
type Document struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Type        string    `json:"document_type" gorm:"column:document_type;size:20;default:other"`
	ArtistID    uint      `json:"artist_id" gorm:"not null;index"`
	Artist      *Artist   `json:"artist,omitempty"`
	File        string    `json:"file" gorm:"size:500;not null"`
	Size        int64     `json:"size" gorm:"default:0"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.File == "" {
		return ErrFileRequired
	}
	if d.Type == "" {
		d.Type = DocOther
	}
	if !ValidDocumentType(d.Type) {
		return ErrInvalidDocumentType
	}
	if !ExtensionAllowed(d.File, DocumentExtensions) {
		return ErrExtensionNotAllowed
	}
	return nil
}

// Extension returns the upper-cased file extension without the dot.
func (d *Document) Extension() string {
	ext := strings.TrimPrefix(filepath.Ext(d.File), ".")
	return strings.ToUpper(ext)
}

// DisplaySize renders the stored size for list pages, e.g. "2.4 MB".
func (d *Document) DisplaySize() string {
	return humanize.Bytes(uint64(d.Size))
}
