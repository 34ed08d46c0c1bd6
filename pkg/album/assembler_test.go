package album

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Concept-Album-Go/pkg/generator"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/music"
)

// fakeLookup serves canned profiles per normalized artist name, failing for
// anyone else.
type fakeLookup struct {
	profiles map[string]music.ArtistProfile
	calls    int
}

func (f *fakeLookup) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	f.calls++
	if p, ok := f.profiles[music.NormalizeName(name)]; ok {
		return p, nil
	}
	return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: errors.New("not found")}
}

type recordingHistory struct {
	saved []music.Album
	err   error
}

func (r *recordingHistory) SaveAlbum(ctx context.Context, a music.Album) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, a)
	return nil
}

func newAssembler(lookup music.MetadataService, history HistoryRecorder) *Assembler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Assembler{
		Lookup:     lookup,
		Classifier: genre.New(nil),
		Gen:        generator.New(42),
		History:    history,
		Log:        log,
	}
}

func TestAssembleDrillScenario(t *testing.T) {
	lookup := &fakeLookup{profiles: map[string]music.ArtistProfile{
		"freeze corleone": {
			Name:    "Freeze Corleone",
			Genres:  []string{"Drill"},
			Link:    "https://example.com/freeze",
			FromAPI: true,
		},
	}}
	history := &recordingHistory{}
	a := newAssembler(lookup, history)

	alb, err := a.Assemble(context.Background(), Request{
		Artists: []string{"Freeze Corleone"},
		Genres:  []music.GenreTag{music.GenreDrill},
		Theme:   "Nuit",
		Tracks:  5,
	})
	require.NoError(t, err)

	require.Len(t, alb.Tracks, 5)
	for i, tr := range alb.Tracks {
		assert.Equal(t, i+1, tr.Position)
		assert.Equal(t, music.GenreDrill, tr.Genre)
	}
	assert.Equal(t, []music.GenreTag{music.GenreDrill}, alb.Genres)
	assert.True(t, strings.Contains(strings.ToLower(alb.Title), "nuit"), "title %q should carry the theme", alb.Title)
	assert.Equal(t, "Nuit", alb.Theme)
	assert.Equal(t, []string{"Freeze Corleone"}, alb.Artists)
	assert.NotEmpty(t, alb.ID)
	assert.NotEmpty(t, alb.Narration)
	assert.False(t, alb.CreatedAt.IsZero())

	require.Len(t, history.saved, 1)
	assert.Equal(t, alb.ID, history.saved[0].ID)
}

func TestAssembleDegradesOnLookupFailure(t *testing.T) {
	a := newAssembler(&fakeLookup{}, nil) // every lookup fails

	alb, err := a.Assemble(context.Background(), Request{
		Artists: []string{"Nobody"},
		Theme:   "void",
		Tracks:  4,
	})
	require.NoError(t, err, "lookup failures must not escape Assemble")
	require.Len(t, alb.Tracks, 4)
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, alb.Genres)
	for _, tr := range alb.Tracks {
		assert.Equal(t, music.GenreUnknown, tr.Genre)
	}
}

func TestAssembleFailureKeepsRequestedGenres(t *testing.T) {
	a := newAssembler(&fakeLookup{}, nil)

	alb, err := a.Assemble(context.Background(), Request{
		Artists: []string{"Nobody"},
		Genres:  []music.GenreTag{music.GenreTrap, music.GenreElectro},
		Theme:   "void",
		Tracks:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, []music.GenreTag{music.GenreElectro, music.GenreTrap}, alb.Genres)
	for _, tr := range alb.Tracks {
		assert.Contains(t, alb.Genres, tr.Genre)
	}
}

func TestAssembleUnionsClassifiedAndRequested(t *testing.T) {
	lookup := &fakeLookup{profiles: map[string]music.ArtistProfile{
		"artist a": {Name: "Artist A", Genres: []string{"Techno"}, FromAPI: true},
		"artist b": {Name: "Artist B", Genres: []string{"Rap/Hip Hop"}, FromAPI: true},
	}}
	a := newAssembler(lookup, nil)

	alb, err := a.Assemble(context.Background(), Request{
		Artists: []string{"Artist A", "Artist B"},
		Genres:  []music.GenreTag{music.GenreAmbient},
		Theme:   "machines",
		Tracks:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, []music.GenreTag{music.GenreAmbient, music.GenreRap, music.GenreTechno}, alb.Genres)
}

func TestAssembleInputValidation(t *testing.T) {
	a := newAssembler(&fakeLookup{}, nil)

	tests := []struct {
		name string
		req  Request
	}{
		{"no artists", Request{Theme: "x", Tracks: 5}},
		{"blank artists", Request{Artists: []string{" ", ""}, Tracks: 5}},
		{"zero tracks", Request{Artists: []string{"A"}, Tracks: 0}},
		{"negative tracks", Request{Artists: []string{"A"}, Tracks: -3}},
		{"too few tracks", Request{Artists: []string{"A"}, Tracks: 2}},
		{"too many tracks", Request{Artists: []string{"A"}, Tracks: 31}},
		{"too many artists", Request{Artists: make([]string, 16), Tracks: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "too many artists" {
				for i := range tt.req.Artists {
					tt.req.Artists[i] = "A"
				}
			}
			_, err := a.Assemble(context.Background(), tt.req)
			var inputErr *music.InputError
			require.ErrorAs(t, err, &inputErr)
		})
	}
}

func TestAssembleDefaultsEmptyTheme(t *testing.T) {
	a := newAssembler(&fakeLookup{}, nil)
	alb, err := a.Assemble(context.Background(), Request{Artists: []string{"A"}, Tracks: 3})
	require.NoError(t, err)
	assert.Equal(t, "libre", alb.Theme)
}

func TestAssembleSurvivesHistoryFailure(t *testing.T) {
	history := &recordingHistory{err: errors.New("disk full")}
	a := newAssembler(&fakeLookup{}, history)
	alb, err := a.Assemble(context.Background(), Request{Artists: []string{"A"}, Theme: "x", Tracks: 3})
	require.NoError(t, err)
	assert.Len(t, alb.Tracks, 3)
}

func TestAssembleDropsInvalidRequestedGenres(t *testing.T) {
	a := newAssembler(&fakeLookup{}, nil)
	alb, err := a.Assemble(context.Background(), Request{
		Artists: []string{"A"},
		Genres:  []music.GenreTag{"vaporcore", music.GenreLofi},
		Theme:   "tape",
		Tracks:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, []music.GenreTag{music.GenreLofi}, alb.Genres)
}
