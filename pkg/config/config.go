// Package config loads application configuration once at process start.
// Values are resolved in viper's usual order: explicit flags (bound by the
// CLI), environment variables, an optional YAML config file, then defaults.
// The genre alias table and input limits live here so the classifier and
// assembler stay pure.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the server and CLI need to wire the application.
type Config struct {
	// ListenAddr is the HTTP listen address of the web adapter.
	ListenAddr string `mapstructure:"listen_addr"`
	// DatabasePath locates the SQLite file holding the lookup cache and
	// album history. Empty disables persistence.
	DatabasePath string `mapstructure:"database_path"`
	// Provider selects the metadata backend: deezer, spotify or
	// aggregate (all configured providers merged).
	Provider string `mapstructure:"provider"`
	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`
	// Seed fixes the random source of the title generator. Zero means
	// seed from the clock.
	Seed int64 `mapstructure:"seed"`

	Spotify struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"spotify"`

	Limits struct {
		MinTracks  int `mapstructure:"min_tracks"`
		MaxTracks  int `mapstructure:"max_tracks"`
		MaxArtists int `mapstructure:"max_artists"`
	} `mapstructure:"limits"`

	// GenreAliases adds provider-label to vocabulary-tag mappings on top
	// of the built-in classifier table.
	GenreAliases map[string]string `mapstructure:"genre_aliases"`
}

// Load reads the configuration. path may name a specific config file; when
// empty, albumgen.yaml is searched for in the working directory and
// $HOME/.config/albumgen. A missing file is not an error; environment
// variables with the ALBUMGEN_ prefix override file values (for example
// ALBUMGEN_SPOTIFY_CLIENT_ID).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":4000")
	v.SetDefault("database_path", "albumgen.db")
	v.SetDefault("provider", "deezer")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("limits.min_tracks", 3)
	v.SetDefault("limits.max_tracks", 30)
	v.SetDefault("limits.max_artists", 15)
	// Registering the credential keys lets AutomaticEnv reach them during
	// Unmarshal even when no config file mentions them.
	v.SetDefault("spotify.client_id", "")
	v.SetDefault("spotify.client_secret", "")

	v.SetEnvPrefix("albumgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("albumgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/albumgen")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
