// Package export serializes a generated album to one of the supported flat
// formats: structured JSON, tabular CSV, or a formatted plain-text sheet.
// Export is write-only; no round-trip import exists. Failures are reported
// as *music.ExportError and leave the in-memory album untouched so the user
// can retry.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"Concept-Album-Go/pkg/music"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatText}
}

// ParseFormat maps a user-supplied selector (optionally with a leading dot,
// any case) onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", &music.ExportError{Format: s, Err: fmt.Errorf("unsupported format")}
	}
}

// ContentType returns the MIME type served for downloads of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write serializes the album to w in the requested format.
func Write(a music.Album, f Format, w io.Writer) error {
	var err error
	switch f {
	case FormatJSON:
		err = writeJSON(a, w)
	case FormatCSV:
		err = writeCSV(a, w)
	case FormatText:
		err = writeText(a, w)
	default:
		err = fmt.Errorf("unsupported format")
	}
	if err != nil {
		return &music.ExportError{Format: string(f), Err: err}
	}
	return nil
}

// WriteFile serializes the album to the file at path, creating or truncating
// it.
func WriteFile(a music.Album, f Format, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &music.ExportError{Format: string(f), Err: err}
	}
	defer file.Close()
	if err := Write(a, f, file); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return &music.ExportError{Format: string(f), Err: err}
	}
	return nil
}

// Filename suggests a file name for the album in this format, derived from
// the title the way the desktop original did.
func Filename(a music.Album, f Format) string {
	name := strings.NewReplacer(" ", "_", "/", "-").Replace(a.Title)
	return name + "." + string(f)
}

func writeJSON(a music.Album, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(a)
}

func writeCSV(a music.Album, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"#", "Title", "Duration (s)", "Tempo (BPM)", "Mood", "Theme", "Genre", "Link"}); err != nil {
		return err
	}
	for _, t := range a.Tracks {
		row := []string{
			strconv.Itoa(t.Position),
			t.Title,
			strconv.Itoa(t.Seconds),
			strconv.Itoa(t.TempoBPM),
			t.Mood,
			t.Theme,
			string(t.Genre),
			t.Link,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(a music.Album, w io.Writer) error {
	genres := make([]string, len(a.Genres))
	for i, g := range a.Genres {
		genres[i] = string(g)
	}
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\n%s\n\n", a.Title, rule)
	fmt.Fprintf(&b, "Theme:   %s\n", a.Theme)
	fmt.Fprintf(&b, "Genres:  %s\n", strings.Join(genres, ", "))
	fmt.Fprintf(&b, "Artists: %s\n", strings.Join(a.Artists, ", "))
	fmt.Fprintf(&b, "Created: %s\n\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n\n", a.Narration)
	fmt.Fprintf(&b, "TRACKLIST\n%s\n\n", strings.Repeat("-", 60))
	for _, t := range a.Tracks {
		fmt.Fprintf(&b, "%2d. %s\n", t.Position, t.Title)
		fmt.Fprintf(&b, "    %d:%02d | %d BPM | %s | %s\n", t.Seconds/60, t.Seconds%60, t.TempoBPM, t.Mood, t.Theme)
		if t.Link != "" {
			fmt.Fprintf(&b, "    %s\n", t.Link)
		}
		b.WriteString("\n")
	}
	total := a.TotalSeconds()
	fmt.Fprintf(&b, "Total: %d min | %d tracks\n", total/60, len(a.Tracks))
	_, err := io.WriteString(w, b.String())
	return err
}
