// Command albumgen is the command line surface of the album generator. It
// mirrors the desktop original: pick genres and artists, generate an album,
// export it to json/csv/txt and browse the history, all without a server.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Concept-Album-Go/pkg/album"
	"Concept-Album-Go/pkg/cache"
	"Concept-Album-Go/pkg/config"
	"Concept-Album-Go/pkg/db"
	"Concept-Album-Go/pkg/deezer"
	"Concept-Album-Go/pkg/export"
	"Concept-Album-Go/pkg/generator"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/music"
	"Concept-Album-Go/pkg/spotify"
)

var (
	configFile string
	cfg        *config.Config
	log        = logrus.New()

	rootCmd = &cobra.Command{
		Use:          "albumgen",
		Short:        "Generate fictional concept albums from real artist metadata",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				log.SetLevel(level)
			}
			return nil
		},
	}
)

var (
	genArtists []string
	genGenres  []string
	genPreset  string
	genTheme   string
	genTracks  int
	genSeed    int64
	genFormat  string
	genOutput  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an album and print or export it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := album.Request{
			Artists: genArtists,
			Theme:   genTheme,
			Tracks:  genTracks,
		}
		if genPreset != "" {
			p, ok := genre.PresetByName(genPreset)
			if !ok {
				return fmt.Errorf("unknown preset %q", genPreset)
			}
			req.Genres = append(req.Genres, p.Genres...)
			if req.Theme == "" {
				req.Theme = p.Theme
			}
		}
		for _, g := range genGenres {
			req.Genres = append(req.Genres, music.GenreTag(g))
		}

		assembler, database, err := buildAssembler(genSeed)
		if err != nil {
			return err
		}
		if database != nil {
			defer database.Close()
		}

		alb, err := assembler.Assemble(cmd.Context(), req)
		if err != nil {
			return err
		}

		format, err := export.ParseFormat(genFormat)
		if err != nil {
			return err
		}
		if genOutput != "" {
			if err := export.WriteFile(alb, format, genOutput); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", genOutput)
			return nil
		}
		return export.Write(alb, format, cmd.OutOrStdout())
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated albums",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.DatabasePath == "" {
			return fmt.Errorf("no database configured")
		}
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		albums, err := database.ListAlbums(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(albums) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no albums generated yet")
			return nil
		}
		for i, a := range albums {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  (%s, %d tracks)  %s  %s\n",
				i+1, a.Title, a.Theme, len(a.Tracks), a.CreatedAt.Format("2006-01-02 15:04"), a.ID)
		}
		return nil
	},
}

var (
	expFormat string
	expOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <album-id>",
	Short: "Re-export an album from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabasePath == "" {
			return fmt.Errorf("no database configured")
		}
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer database.Close()
		alb, err := database.GetAlbum(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load album %s: %w", args[0], err)
		}
		format, err := export.ParseFormat(expFormat)
		if err != nil {
			return err
		}
		if expOutput != "" {
			if err := export.WriteFile(alb, format, expOutput); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", expOutput)
			return nil
		}
		return export.Write(alb, format, cmd.OutOrStdout())
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in album presets",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, p := range genre.Presets() {
			genres := make([]string, len(p.Genres))
			for i, g := range p.Genres {
				genres[i] = string(g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s theme=%-13s genres=%v  %s\n", p.Name, p.Theme, genres, p.Description)
		}
	},
}

// buildAssembler wires the provider, cache and generator from the loaded
// configuration, mirroring cmd/web.
func buildAssembler(seed int64) (*album.Assembler, *db.DB, error) {
	dz := deezer.NewClient(log)
	var service music.MetadataService = dz
	switch cfg.Provider {
	case "deezer":
	case "spotify":
		sc, err := spotify.NewSpotifyClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
		if err != nil {
			return nil, nil, fmt.Errorf("spotify client init: %w", err)
		}
		service = sc
	case "aggregate":
		services := []music.MetadataService{dz}
		if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
			sc, err := spotify.NewSpotifyClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
			if err != nil {
				return nil, nil, fmt.Errorf("spotify client init: %w", err)
			}
			services = append(services, sc)
		}
		service = music.Aggregator{Services: services}
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	var (
		database *db.DB
		store    cache.Store
		history  album.HistoryRecorder
	)
	if cfg.DatabasePath != "" {
		var err error
		database, err = db.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		store = database
		history = database
	}

	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &album.Assembler{
		Lookup:     cache.New(service, store, log),
		Classifier: genre.New(cfg.GenreAliases),
		Gen:        generator.New(seed),
		History:    history,
		Log:        log,
		Limits: album.Limits{
			MinTracks:  cfg.Limits.MinTracks,
			MaxTracks:  cfg.Limits.MaxTracks,
			MaxArtists: cfg.Limits.MaxArtists,
		},
	}, database, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default albumgen.yaml)")

	generateCmd.Flags().StringSliceVarP(&genArtists, "artists", "a", nil, "artist names")
	generateCmd.Flags().StringSliceVarP(&genGenres, "genres", "g", nil, "genres from the internal vocabulary")
	generateCmd.Flags().StringVarP(&genPreset, "preset", "p", "", "start from a built-in preset")
	generateCmd.Flags().StringVarP(&genTheme, "theme", "m", "", "album theme")
	generateCmd.Flags().IntVarP(&genTracks, "tracks", "n", 8, "number of tracks")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = from the clock)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "txt", "output format: json, csv or txt")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "write to file instead of stdout")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum entries to list")

	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "txt", "output format: json, csv or txt")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(generateCmd, historyCmd, exportCmd, presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
