// Package music defines the core data model and provider interfaces shared by
// the rest of the application. Metadata providers (Deezer, Spotify, ...)
// implement the MetadataService interface; by depending only on this package
// the assembler, cache and adapters remain agnostic about the underlying
// platform.
package music

import (
	"context"
	"strings"
	"time"
)

// GenreTag is one value from the fixed internal genre vocabulary. Raw
// provider genre strings are folded into this set by the genre package;
// GenreUnknown is the fallback when nothing matches.
type GenreTag string

// The internal genre vocabulary. The string values double as the canonical
// serialized form used in exports and in the config file.
const (
	GenreRap       GenreTag = "rap"
	GenreTrap      GenreTag = "trap"
	GenreDrill     GenreTag = "drill"
	GenreBoomBap   GenreTag = "boom bap"
	GenrePop       GenreTag = "pop"
	GenreRnB       GenreTag = "r&b"
	GenreElectro   GenreTag = "electro"
	GenreTechno    GenreTag = "techno"
	GenreHouse     GenreTag = "house"
	GenreAmbient   GenreTag = "ambient"
	GenreLofi      GenreTag = "lofi"
	GenreJazz      GenreTag = "jazz"
	GenreNeoJazz   GenreTag = "neo-jazz"
	GenreRock      GenreTag = "rock"
	GenreIndie     GenreTag = "indie"
	GenreMetal     GenreTag = "metal"
	GenreCinematic GenreTag = "cinematic"
	GenreUnknown   GenreTag = "unknown"
)

// ArtistProfile holds the normalized metadata retrieved for one artist. It is
// immutable once built; refreshing an artist replaces the whole profile.
type ArtistProfile struct {
	// Name is the display name reported by the provider, falling back to
	// the name the user typed when the provider had nothing better.
	Name string `json:"name"`
	// Genres contains the raw genre strings as returned by the provider,
	// before classification into the internal vocabulary.
	Genres []string `json:"genres"`
	// Link points at the artist's page on the provider, if known.
	Link string `json:"link,omitempty"`
	// AvgTrackSeconds is the mean duration of the artist's top tracks.
	// Zero when the provider does not expose track durations.
	AvgTrackSeconds int `json:"avg_track_seconds,omitempty"`
	// Fans is a coarse popularity signal; the scale differs per provider.
	Fans int `json:"fans,omitempty"`
	// FromAPI reports whether the profile was built from live provider
	// data rather than synthesized as a lookup-failure fallback.
	FromAPI bool `json:"from_api"`
}

// Track is one entry of a generated album. Position is 1-based and contiguous
// within an album.
type Track struct {
	Position int      `json:"position"`
	Title    string   `json:"title"`
	Seconds  int      `json:"seconds"`
	TempoBPM int      `json:"tempo_bpm"`
	Mood     string   `json:"mood"`
	Theme    string   `json:"theme"`
	Genre    GenreTag `json:"genre"`
	Link     string   `json:"link,omitempty"`
}

// Album is a complete generated concept album. It is created once per
// generation request and never mutated afterwards.
type Album struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Theme     string     `json:"theme"`
	Narration string     `json:"narration"`
	Genres    []GenreTag `json:"genres"`
	Artists   []string   `json:"artists"`
	Tracks    []Track    `json:"tracks"`
	CreatedAt time.Time  `json:"created_at"`
}

// TotalSeconds returns the summed duration of all tracks.
func (a Album) TotalSeconds() int {
	var total int
	for _, t := range a.Tracks {
		total += t.Seconds
	}
	return total
}

// MetadataService looks up one artist by free-text name on an external
// provider. Implementations return a LookupError on network failure, non-2xx
// responses or an empty result set so callers can degrade gracefully.
type MetadataService interface {
	SearchArtist(ctx context.Context, name string) (ArtistProfile, error)
}

// NormalizeName canonicalizes an artist name for use as a cache key. Lookups
// for "Freeze Corleone" and " freeze corleone " refer to the same entry.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
