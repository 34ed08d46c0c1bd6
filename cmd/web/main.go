// Command web initializes the album generator and starts the HTTP server.
// Configuration comes from an optional albumgen.yaml plus ALBUMGEN_*
// environment variables; Spotify credentials are only required when the
// spotify or aggregate provider is selected. The server serves the HTML form,
// the JSON API and Prometheus metrics.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"Concept-Album-Go/pkg/album"
	"Concept-Album-Go/pkg/cache"
	"Concept-Album-Go/pkg/config"
	"Concept-Album-Go/pkg/db"
	"Concept-Album-Go/pkg/deezer"
	"Concept-Album-Go/pkg/generator"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/handlers"
	"Concept-Album-Go/pkg/music"
	"Concept-Album-Go/pkg/spotify"
)

// newService builds the metadata provider selected by the configuration. The
// Deezer provider needs no credentials and is always available; Spotify joins
// in when credentials are configured.
func newService(cfg *config.Config, log *logrus.Logger) (music.MetadataService, error) {
	dz := deezer.NewClient(log)
	switch cfg.Provider {
	case "deezer":
		return dz, nil
	case "spotify":
		sc, err := spotify.NewSpotifyClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
		if err != nil {
			return nil, fmt.Errorf("spotify client init: %w", err)
		}
		return sc, nil
	case "aggregate":
		services := []music.MetadataService{dz}
		if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
			sc, err := spotify.NewSpotifyClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
			if err != nil {
				return nil, fmt.Errorf("spotify client init: %w", err)
			}
			services = append(services, sc)
		}
		return music.Aggregator{Services: services}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// routes registers every endpoint of the web adapter on a fresh ServeMux.
func routes(app *handlers.Application) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", app.Home)
	mux.HandleFunc("/generate", app.Generate)
	mux.HandleFunc("/api/albums", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			app.GenerateJSON(w, r)
		} else {
			app.HistoryJSON(w, r)
		}
	})
	mux.HandleFunc("/api/albums/export", app.ExportAlbum)
	mux.HandleFunc("/api/genres", app.GenresJSON)
	mux.HandleFunc("/api/presets", app.PresetsJSON)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// main configures application dependencies and starts the HTTP server.
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(os.Getenv("ALBUMGEN_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	service, err := newService(cfg, log)
	if err != nil {
		log.Fatalf("provider: %v", err)
	}

	// The SQLite database persists the lookup cache and the album history.
	// An empty path keeps everything in memory for the process lifetime.
	var (
		database *db.DB
		store    cache.Store
	)
	if cfg.DatabasePath != "" {
		database, err = db.New(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		defer database.Close()
		store = database
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	assembler := &album.Assembler{
		Lookup:     cache.New(service, store, log),
		Classifier: genre.New(cfg.GenreAliases),
		Gen:        generator.New(seed),
		Log:        log,
		Limits: album.Limits{
			MinTracks:  cfg.Limits.MinTracks,
			MaxTracks:  cfg.Limits.MaxTracks,
			MaxArtists: cfg.Limits.MaxArtists,
		},
	}
	if database != nil {
		assembler.History = database
	}

	app := &handlers.Application{Assembler: assembler, DB: database, Log: log}

	log.WithField("addr", cfg.ListenAddr).Info("starting server")
	if err := http.ListenAndServe(cfg.ListenAddr, handlers.SecurityHeaders(routes(app))); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
