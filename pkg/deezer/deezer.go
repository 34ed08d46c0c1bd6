// Package deezer implements the music.MetadataService interface using the
// public Deezer API, which requires no credentials. An artist lookup is a
// search followed by a scan of the artist's top tracks: Deezer exposes genres
// on albums rather than artists, so the client fetches the albums behind the
// top tracks and collects their genre names.
//
// Network calls are performed using the provided http.Client allowing
// callers to substitute a test client, and requests are rate limited to stay
// under Deezer's quota of 50 requests per 5 seconds.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"Concept-Album-Go/pkg/music"
)

const defaultBaseURL = "https://api.deezer.com"

// topTrackLimit bounds how many top tracks are scanned per artist, and with
// it how many album requests a single lookup can issue.
const topTrackLimit = 10

// Client provides access to the Deezer API.
type Client struct {
	// BaseURL overrides the API root, primarily for tests. Empty means the
	// public API.
	BaseURL string
	// HTTPClient performs the requests. Nil falls back to a client with a
	// ten second timeout.
	HTTPClient *http.Client
	// Limiter throttles outgoing requests. Nil disables throttling.
	Limiter *rate.Limiter
	// Log must not be nil.
	Log logrus.FieldLogger
}

var _ music.MetadataService = (*Client)(nil)

// NewClient returns a Deezer client with sane defaults: a 10 second request
// timeout and 50 requests per 5 seconds with a burst of 10.
func NewClient(log logrus.FieldLogger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
		Log:        log,
	}
}

// SearchArtist implements music.MetadataService. The first search result is
// taken as the match. Album-genre fetches that fail are skipped silently; a
// profile with an empty genre list is still a successful lookup.
func (c *Client) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	var search struct {
		Data []struct {
			ID     int64  `json:"id"`
			Name   string `json:"name"`
			Link   string `json:"link"`
			NbFans int    `json:"nb_fan"`
		} `json:"data"`
	}
	q := url.Values{"q": {name}}
	if err := c.getJSON(ctx, "/search/artist?"+q.Encode(), &search); err != nil {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: err}
	}
	if len(search.Data) == 0 {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: fmt.Errorf("no artist found")}
	}
	artist := search.Data[0]

	var top struct {
		Data []struct {
			Duration int `json:"duration"`
			Album    struct {
				ID int64 `json:"id"`
			} `json:"album"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/artist/%d/top?limit=%d", artist.ID, topTrackLimit), &top); err != nil {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: err}
	}

	var (
		genres    []string
		seenGenre = make(map[string]struct{})
		seenAlbum = make(map[int64]struct{})
		totalSecs int
		nDur      int
	)
	for _, t := range top.Data {
		if t.Duration > 0 {
			totalSecs += t.Duration
			nDur++
		}
		if t.Album.ID == 0 {
			continue
		}
		if _, ok := seenAlbum[t.Album.ID]; ok {
			continue
		}
		seenAlbum[t.Album.ID] = struct{}{}

		var album struct {
			Genres struct {
				Data []struct {
					Name string `json:"name"`
				} `json:"data"`
			} `json:"genres"`
		}
		if err := c.getJSON(ctx, fmt.Sprintf("/album/%d", t.Album.ID), &album); err != nil {
			c.Log.WithError(err).WithField("album", t.Album.ID).Debug("album genre fetch skipped")
			continue
		}
		for _, g := range album.Genres.Data {
			if g.Name == "" {
				continue
			}
			if _, ok := seenGenre[g.Name]; !ok {
				seenGenre[g.Name] = struct{}{}
				genres = append(genres, g.Name)
			}
		}
	}

	avg := 0
	if nDur > 0 {
		avg = totalSecs / nDur
	}
	return music.ArtistProfile{
		Name:            artist.Name,
		Genres:          genres,
		Link:            artist.Link,
		AvgTrackSeconds: avg,
		Fans:            artist.NbFans,
		FromAPI:         true,
	}, nil
}

// getJSON performs a rate-limited GET against the API and decodes the JSON
// body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Concept-Album-Go/1.0")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deezer: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
