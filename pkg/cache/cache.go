// Package cache memoizes metadata lookups by normalized artist name so a
// session never queries the provider twice for the same artist. It decorates
// any music.MetadataService and can optionally be backed by a persistent
// store so entries survive restarts.
//
// Failures are never cached: a failed lookup is retried on the next call.
// Concurrent lookups for the same uncached name are not deduplicated; both
// fetch and the last write wins, which is harmless since both carry the same
// provider data.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"Concept-Album-Go/pkg/music"
)

// Store persists cache entries between runs. *db.DB satisfies this; a nil
// Store keeps the cache purely in-memory.
type Store interface {
	GetProfile(ctx context.Context, name string) (music.ArtistProfile, time.Time, error)
	PutProfile(ctx context.Context, name string, p music.ArtistProfile, fetchedAt time.Time) error
}

type entry struct {
	profile   music.ArtistProfile
	fetchedAt time.Time
}

// Cache wraps a MetadataService with per-name memoization.
type Cache struct {
	svc   music.MetadataService
	store Store
	log   logrus.FieldLogger

	mu      sync.RWMutex
	entries map[string]entry
}

var _ music.MetadataService = (*Cache)(nil)

// New builds a cache around svc. store may be nil for an in-memory only
// cache. log must not be nil.
func New(svc music.MetadataService, store Store, log logrus.FieldLogger) *Cache {
	return &Cache{
		svc:     svc,
		store:   store,
		log:     log,
		entries: make(map[string]entry),
	}
}

// SearchArtist implements music.MetadataService. The first request for a
// normalized name delegates to the wrapped service and stores the result;
// subsequent requests return the stored profile without a network call.
func (c *Cache) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	key := music.NormalizeName(name)
	if key == "" {
		return music.ArtistProfile{}, music.NewInputError("artist name is empty")
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.profile, nil
	}

	if c.store != nil {
		p, fetchedAt, err := c.store.GetProfile(ctx, key)
		switch {
		case err == nil:
			c.remember(key, p, fetchedAt)
			return p, nil
		case !errors.Is(err, sql.ErrNoRows):
			c.log.WithError(err).WithField("artist", key).Warn("cache store read failed")
		}
	}

	p, err := c.svc.SearchArtist(ctx, name)
	if err != nil {
		return music.ArtistProfile{}, err
	}
	fetchedAt := time.Now()
	c.remember(key, p, fetchedAt)
	if c.store != nil {
		// Persistence is best effort; the in-memory entry already serves
		// this session.
		if err := c.store.PutProfile(ctx, key, p, fetchedAt); err != nil {
			c.log.WithError(err).WithField("artist", key).Warn("cache store write failed")
		}
	}
	return p, nil
}

func (c *Cache) remember(key string, p music.ArtistProfile, fetchedAt time.Time) {
	c.mu.Lock()
	c.entries[key] = entry{profile: p, fetchedAt: fetchedAt}
	c.mu.Unlock()
}

// Len reports the number of in-memory entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
