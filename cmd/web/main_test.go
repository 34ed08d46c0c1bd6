package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"Concept-Album-Go/pkg/album"
	"Concept-Album-Go/pkg/config"
	"Concept-Album-Go/pkg/db"
	"Concept-Album-Go/pkg/deezer"
	"Concept-Album-Go/pkg/generator"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/handlers"
	"Concept-Album-Go/pkg/music"
)

// stubLookup implements music.MetadataService for tests, returning a fixed
// profile for every artist so endpoints can be exercised without hitting a
// real provider.
type stubLookup struct{}

func (stubLookup) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	return music.ArtistProfile{Name: name, Genres: []string{"Techno"}, FromAPI: true}, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newServer creates an HTTP server with all routes registered using
// in-memory dependencies.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	log := discardLogger()
	app := &handlers.Application{
		Assembler: &album.Assembler{
			Lookup:     stubLookup{},
			Classifier: genre.New(nil),
			Gen:        generator.New(1),
			History:    database,
			Log:        log,
		},
		DB:  database,
		Log: log,
	}
	srv := httptest.NewServer(handlers.SecurityHeaders(routes(app)))
	t.Cleanup(srv.Close)
	return srv
}

// TestNewServiceProviderSwitch checks the provider selection logic without
// any network access: deezer needs nothing, aggregate without Spotify
// credentials degrades to the single provider, and an unknown name fails.
func TestNewServiceProviderSwitch(t *testing.T) {
	log := discardLogger()

	svc, err := newService(&config.Config{Provider: "deezer"}, log)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.(*deezer.Client); !ok {
		t.Fatalf("expected deezer client, got %T", svc)
	}

	svc, err = newService(&config.Config{Provider: "aggregate"}, log)
	if err != nil {
		t.Fatal(err)
	}
	agg, ok := svc.(music.Aggregator)
	if !ok {
		t.Fatalf("expected aggregator, got %T", svc)
	}
	if len(agg.Services) != 1 {
		t.Fatalf("aggregate without credentials should hold 1 service, got %d", len(agg.Services))
	}

	if _, err := newService(&config.Config{Provider: "tape-deck"}, log); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

// TestHomeEndpoint exercises the form page through the full middleware stack
// and checks the security headers arrive with it.
func TestHomeEndpoint(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("missing security header, got %q", got)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "Concept Album Generator") {
		t.Errorf("unexpected body %s", data)
	}
}

// TestAlbumsMethodDispatch verifies the /api/albums closure routes GET to the
// history listing and POST to generation.
func TestAlbumsMethodDispatch(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/albums")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET: expected 200 got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/albums", "application/json",
		strings.NewReader(`{"artists":["Gesaffelstein"],"tracks":3}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST: expected 201 got %d", resp.StatusCode)
	}
}

// TestMetricsEndpoint checks that the Prometheus handler is mounted.
func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "albumgen_albums_generated_total") {
		t.Errorf("expected generation counter in metrics output")
	}
}
