package cache

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Concept-Album-Go/pkg/music"
)

// countingService counts how often the wrapped lookup is actually invoked.
type countingService struct {
	calls   int
	profile music.ArtistProfile
	err     error
}

func (s *countingService) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	s.calls++
	if s.err != nil {
		return music.ArtistProfile{}, s.err
	}
	return s.profile, nil
}

// mapStore is an in-memory Store implementation for tests.
type mapStore struct {
	profiles map[string]music.ArtistProfile
	puts     int
}

func (m *mapStore) GetProfile(ctx context.Context, name string) (music.ArtistProfile, time.Time, error) {
	p, ok := m.profiles[name]
	if !ok {
		return music.ArtistProfile{}, time.Time{}, sql.ErrNoRows
	}
	return p, time.Now(), nil
}

func (m *mapStore) PutProfile(ctx context.Context, name string, p music.ArtistProfile, _ time.Time) error {
	if m.profiles == nil {
		m.profiles = make(map[string]music.ArtistProfile)
	}
	m.profiles[name] = p
	m.puts++
	return nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLookupMemoized(t *testing.T) {
	svc := &countingService{profile: music.ArtistProfile{Name: "Freeze Corleone", Genres: []string{"Drill"}}}
	c := New(svc, nil, discardLogger())

	first, err := c.SearchArtist(context.Background(), "Freeze Corleone")
	require.NoError(t, err)
	second, err := c.SearchArtist(context.Background(), "Freeze Corleone")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, svc.calls)
}

func TestLookupNormalizesNames(t *testing.T) {
	svc := &countingService{profile: music.ArtistProfile{Name: "PNL"}}
	c := New(svc, nil, discardLogger())

	_, err := c.SearchArtist(context.Background(), "  PNL ")
	require.NoError(t, err)
	_, err = c.SearchArtist(context.Background(), "pnl")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, 1, c.Len())
}

func TestLookupEmptyName(t *testing.T) {
	svc := &countingService{}
	c := New(svc, nil, discardLogger())
	_, err := c.SearchArtist(context.Background(), "   ")
	var inputErr *music.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Zero(t, svc.calls)
}

func TestFailuresAreNotCached(t *testing.T) {
	svc := &countingService{err: errors.New("api down")}
	c := New(svc, nil, discardLogger())

	_, err := c.SearchArtist(context.Background(), "Ninho")
	require.Error(t, err)
	_, err = c.SearchArtist(context.Background(), "Ninho")
	require.Error(t, err)
	assert.Equal(t, 2, svc.calls, "every call after a failure must retry the fetch")

	// Once the provider recovers the result is cached as usual.
	svc.err = nil
	svc.profile = music.ArtistProfile{Name: "Ninho"}
	_, err = c.SearchArtist(context.Background(), "Ninho")
	require.NoError(t, err)
	_, err = c.SearchArtist(context.Background(), "Ninho")
	require.NoError(t, err)
	assert.Equal(t, 3, svc.calls)
}

func TestStoreReadBeforeFetch(t *testing.T) {
	svc := &countingService{}
	store := &mapStore{profiles: map[string]music.ArtistProfile{
		"jul": {Name: "Jul", Genres: []string{"French Rap"}},
	}}
	c := New(svc, store, discardLogger())

	p, err := c.SearchArtist(context.Background(), "Jul")
	require.NoError(t, err)
	assert.Equal(t, "Jul", p.Name)
	assert.Zero(t, svc.calls, "persisted entry must not trigger a fetch")
}

func TestStoreWriteThrough(t *testing.T) {
	svc := &countingService{profile: music.ArtistProfile{Name: "SCH"}}
	store := &mapStore{}
	c := New(svc, store, discardLogger())

	_, err := c.SearchArtist(context.Background(), "SCH")
	require.NoError(t, err)
	assert.Equal(t, 1, store.puts)
	assert.Contains(t, store.profiles, "sch")
}
