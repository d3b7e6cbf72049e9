// Package report renders catalog result sets as paginated PDF tables.
// Layout and pagination are delegated to gofpdf; the generators only place
// a title, a generation timestamp and fixed-width table rows, so the same
// input rows and clock always produce the same bytes.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const timeLayout = "02.01.2006 15:04"

func newDoc(now time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	// Pin the metadata timestamp so the same inputs give the same bytes.
	pdf.SetCreationDate(now)
	pdf.AddPage()
	return pdf
}

func title(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func generatedAt(pdf *gofpdf.Fpdf, now time.Time) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+now.Format(timeLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func headerRow(pdf *gofpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
}

func dataRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ArtistRow is one line of the artist roster report.
type ArtistRow struct {
	Name         string
	ReleaseCount int
	Created      time.Time
}

// Artists renders the artist roster: name, release count, created date.
func Artists(rows []ArtistRow, now time.Time) ([]byte, error) {
	pdf := newDoc(now)
	title(pdf, "Artists Report")
	generatedAt(pdf, now)

	widths := []float64{100, 40, 40}
	headerRow(pdf, widths, []string{"Artist", "Releases", "Created"})
	for _, r := range rows {
		dataRow(pdf, widths, []string{
			r.Name,
			fmt.Sprintf("%d", r.ReleaseCount),
			r.Created.Format("02.01.2006"),
		})
	}

	return output(pdf)
}

// TrackRow is one line of the track roster report.
type TrackRow struct {
	Title    string
	Artist   string
	Duration string
	Status   string
}

// Tracks renders the track roster: title, artist, duration, status.
func Tracks(rows []TrackRow, now time.Time) ([]byte, error) {
	pdf := newDoc(now)
	title(pdf, "Tracks Report")
	generatedAt(pdf, now)

	widths := []float64{70, 55, 25, 30}
	headerRow(pdf, widths, []string{"Track", "Artist", "Duration", "Status"})
	for _, r := range rows {
		dataRow(pdf, widths, []string{r.Title, r.Artist, r.Duration, r.Status})
	}

	return output(pdf)
}

// ReleaseTrackRow is one track line on the single-release sheet.
type ReleaseTrackRow struct {
	Position string
	Title    string
	Duration string
}

// ReleaseSheet carries the metadata header and track listing of one
// release.
type ReleaseSheet struct {
	Title   string
	Artist  string
	Year    int
	Format  string
	Label   string
	Created time.Time
	Tracks  []ReleaseTrackRow
}

// Release renders the single-release sheet: a metadata block followed by
// the track table.
func Release(sheet ReleaseSheet, now time.Time) ([]byte, error) {
	pdf := newDoc(now)
	title(pdf, "Release: "+sheet.Title)
	generatedAt(pdf, now)

	label := sheet.Label
	if label == "" {
		label = "-"
	}
	meta := [][2]string{
		{"Artist", sheet.Artist},
		{"Year", fmt.Sprintf("%d", sheet.Year)},
		{"Format", sheet.Format},
		{"Label", label},
		{"Created", sheet.Created.Format(timeLayout)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range meta {
		pdf.SetFillColor(211, 211, 211)
		pdf.CellFormat(40, 7, kv[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(140, 7, kv[1], "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	if len(sheet.Tracks) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Tracks", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		widths := []float64{30, 115, 35}
		headerRow(pdf, widths, []string{"Position", "Track", "Duration"})
		for _, t := range sheet.Tracks {
			pos := t.Position
			if pos == "" {
				pos = "-"
			}
			dataRow(pdf, widths, []string{pos, t.Title, t.Duration})
		}
	}

	return output(pdf)
}
