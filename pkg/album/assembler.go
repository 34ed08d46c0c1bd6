// Package album orchestrates metadata lookup, genre classification and title
// generation into complete concept albums. The assembler owns the degrade
// policy: a failed artist lookup never aborts a generation, it just swaps in
// a synthetic profile with no genre contribution. Given valid input, Assemble
// always succeeds.
package album

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"Concept-Album-Go/pkg/generator"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/music"
)

// defaultTheme is used when the caller leaves the theme blank.
const defaultTheme = "libre"

// HistoryRecorder appends completed albums to a durable log. *db.DB
// satisfies this interface.
type HistoryRecorder interface {
	SaveAlbum(ctx context.Context, a music.Album) error
}

// Limits bounds the accepted input sizes. The zero value is replaced by
// DefaultLimits.
type Limits struct {
	MinTracks  int
	MaxTracks  int
	MaxArtists int
}

// DefaultLimits mirrors the limits of the desktop original: 3 to 30 tracks
// and at most 15 artists.
func DefaultLimits() Limits {
	return Limits{MinTracks: 3, MaxTracks: 30, MaxArtists: 15}
}

// Request carries the user selections for one generation.
type Request struct {
	Artists []string         `json:"artists"`
	Genres  []music.GenreTag `json:"genres"`
	Theme   string           `json:"theme"`
	Tracks  int              `json:"tracks"`
}

// Assembler builds albums. Lookup is normally the cache-wrapped provider;
// History may be nil to skip persistence.
type Assembler struct {
	Lookup     music.MetadataService
	Classifier *genre.Classifier
	Gen        *generator.Generator
	History    HistoryRecorder
	Log        logrus.FieldLogger
	Limits     Limits
}

// Assemble resolves each artist through the lookup service, unions the
// classified genres with the requested ones, and generates the titled
// tracklist. It returns an InputError for invalid selections; lookup
// failures are absorbed per the degrade policy and never surface here.
func (a *Assembler) Assemble(ctx context.Context, req Request) (music.Album, error) {
	limits := a.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}

	artists := make([]string, 0, len(req.Artists))
	for _, name := range req.Artists {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			artists = append(artists, trimmed)
		}
	}
	if len(artists) == 0 {
		return music.Album{}, music.NewInputError("at least one artist is required")
	}
	if len(artists) > limits.MaxArtists {
		return music.Album{}, music.NewInputError("at most %d artists are supported", limits.MaxArtists)
	}
	if req.Tracks <= 0 {
		return music.Album{}, music.NewInputError("track count must be positive")
	}
	if req.Tracks < limits.MinTracks || req.Tracks > limits.MaxTracks {
		return music.Album{}, music.NewInputError("track count must be between %d and %d", limits.MinTracks, limits.MaxTracks)
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = defaultTheme
	}

	union := make(map[music.GenreTag]struct{})
	for _, tag := range req.Genres {
		if genre.IsValid(tag) {
			union[tag] = struct{}{}
		} else {
			a.Log.WithField("genre", tag).Warn("requested genre outside vocabulary, dropped")
		}
	}

	// Resolve every artist, degrading failed lookups to a synthetic
	// profile that contributes nothing to the genre union.
	profiles := make([]generator.Profile, 0, len(artists))
	tally := make(map[music.GenreTag]int)
	for _, name := range artists {
		p, err := a.Lookup.SearchArtist(ctx, name)
		if err != nil {
			a.Log.WithError(err).WithField("artist", name).Warn("lookup failed, using fallback profile")
			profiles = append(profiles, a.Gen.Fallback(name))
			continue
		}
		tags := a.Classifier.Classify(p.Genres)
		for _, t := range tags {
			// GenreUnknown only ever enters the union as the final
			// fallback, not as a per-artist contribution.
			if t != music.GenreUnknown {
				union[t] = struct{}{}
				tally[t]++
			}
		}
		profiles = append(profiles, a.Gen.Interpret(p, tags))
	}
	if len(union) == 0 {
		union[music.GenreUnknown] = struct{}{}
	}

	genres := make([]music.GenreTag, 0, len(union))
	for tag := range union {
		genres = append(genres, tag)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i] < genres[j] })

	lang := albumLanguage(profiles)
	alb := music.Album{
		ID:        uuid.NewString(),
		Title:     a.Gen.AlbumTitle(theme, dominantGenre(tally, req.Genres), lang),
		Theme:     theme,
		Narration: generator.Narration(theme, lang),
		Genres:    genres,
		Artists:   artists,
		Tracks:    a.Gen.Tracks(profiles, genres, theme, req.Tracks),
		CreatedAt: time.Now(),
	}

	if a.History != nil {
		// The album is already complete; a full history log is not worth
		// failing the generation over.
		if err := a.History.SaveAlbum(ctx, alb); err != nil {
			a.Log.WithError(err).Warn("history append failed")
		}
	}
	return alb, nil
}

// dominantGenre picks the most frequently classified tag, breaking ties
// lexicographically. When no lookup produced a classification the first
// requested genre wins, and with nothing requested either the album is
// simply unknown.
func dominantGenre(tally map[music.GenreTag]int, requested []music.GenreTag) music.GenreTag {
	var best music.GenreTag
	bestCount := 0
	for tag, n := range tally {
		if n > bestCount || (n == bestCount && (best == "" || tag < best)) {
			best, bestCount = tag, n
		}
	}
	if best != "" {
		return best
	}
	for _, tag := range requested {
		if genre.IsValid(tag) {
			return tag
		}
	}
	return music.GenreUnknown
}

// albumLanguage is the majority language of the contributing profiles, with
// English winning ties.
func albumLanguage(profiles []generator.Profile) generator.Language {
	fr := 0
	for _, p := range profiles {
		if p.Language == generator.French {
			fr++
		}
	}
	if fr > len(profiles)-fr {
		return generator.French
	}
	return generator.English
}
