// Package config loads the songfiler settings: a YAML file for the
// preferences, a dotenv file and the environment for the credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/provider"
	"gopkg.in/yaml.v3"
)

const (
	appName         = "songfiler"
	configFileName  = "config.yml"
	keysFileName    = "keys.env"
	defaultSize     = 600
	defaultTol      = 25
	defaultCacheTTL = 14 * 24 * time.Hour
)

const (
	EnvGenius        = "GENIUS_TOKEN"
	EnvYouTube       = "YOUTUBE_KEY"
	EnvLastFM        = "LASTFM_KEY"
	EnvSpotifyID     = "SPOTIFY_ID"
	EnvSpotifySecret = "SPOTIFY_KEY"
)

// Error reports an invalid configuration value
type Error struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration %s (%v): %s", e.Field, e.Value, e.Reason)
}

type Cover struct {
	Size         int           `yaml:"size"`
	Tolerance    int           `yaml:"tolerance"` // percentage of size
	Format       string        `yaml:"format"`
	MaxDownloads int           `yaml:"max-downloads"`
	Timeout      time.Duration `yaml:"timeout"`
}

type Video struct {
	PreferExplicit bool     `yaml:"prefer-explicit"`
	Wrong          []string `yaml:"wrong-words"`
	Okay           []string `yaml:"okay-words"`
	Better         []string `yaml:"better-words"`
	KeptInParens   []string `yaml:"kept-in-parens"`
}

type Keys struct {
	Genius        string `yaml:"genius"`
	YouTube       string `yaml:"youtube"`
	LastFM        string `yaml:"lastfm"`
	SpotifyID     string `yaml:"spotify-id"`
	SpotifySecret string `yaml:"spotify-secret"`
}

type Config struct {
	Library  string        `yaml:"library"`
	KeysFile string        `yaml:"keys-file"`
	CacheTTL time.Duration `yaml:"cache-ttl"`
	Cover    Cover         `yaml:"cover"`
	Video    Video         `yaml:"video"`
	Keys     Keys          `yaml:"keys"`
}

func Default() *Config {
	return &Config{
		Library:  xdg.UserDirs.Music,
		KeysFile: filepath.Join(xdg.ConfigHome, appName, keysFileName),
		CacheTTL: defaultCacheTTL,
		Cover: Cover{
			Size:         defaultSize,
			Tolerance:    defaultTol,
			Format:       "jpg",
			MaxDownloads: cover.DefaultMaxDownloads,
			Timeout:      cover.DefaultTimeout,
		},
		Video: Video{PreferExplicit: true},
	}
}

// DefaultPath returns the location of the configuration file
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// Load reads the configuration at path over the defaults: a missing file
// is fine unless its path was explicitly given. Credentials are read
// from the keys file first, then from the environment
func Load(path string) (*Config, error) {
	config := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := config.loadKeys(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) loadKeys() error {
	keys := make(map[string]string)
	if config.KeysFile != "" {
		values, err := godotenv.Read(config.KeysFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot read keys file %s: %w", config.KeysFile, err)
		}
		for key, value := range values {
			keys[key] = value
		}
	}
	for _, key := range []string{EnvGenius, EnvYouTube, EnvLastFM, EnvSpotifyID, EnvSpotifySecret} {
		if value, ok := os.LookupEnv(key); ok {
			keys[key] = value
		}
	}

	for key, field := range map[string]*string{
		EnvGenius:        &config.Keys.Genius,
		EnvYouTube:       &config.Keys.YouTube,
		EnvLastFM:        &config.Keys.LastFM,
		EnvSpotifyID:     &config.Keys.SpotifyID,
		EnvSpotifySecret: &config.Keys.SpotifySecret,
	} {
		if value := strings.TrimSpace(keys[key]); value != "" {
			*field = value
		}
	}
	return nil
}

func (config *Config) Validate() error {
	switch {
	case config.Cover.Size <= 0:
		return &Error{"cover.size", config.Cover.Size, "must be positive"}
	case config.Cover.Tolerance < 0 || config.Cover.Tolerance > 100:
		return &Error{"cover.tolerance", config.Cover.Tolerance, "must be a percentage between 0 and 100"}
	case config.CoverFormat() == cover.Unknown:
		return &Error{"cover.format", config.Cover.Format, "must be either jpg or png"}
	case config.Cover.MaxDownloads <= 0:
		return &Error{"cover.max-downloads", config.Cover.MaxDownloads, "must be positive"}
	case config.Cover.Timeout <= 0:
		return &Error{"cover.timeout", config.Cover.Timeout, "must be positive"}
	case config.Library == "":
		return &Error{"library", config.Library, "must be set"}
	}
	return nil
}

func (config *Config) CoverFormat() cover.Format {
	return cover.ParseFormat(strings.ToLower(config.Cover.Format))
}

func (config *Config) Target() cover.Target {
	return cover.Target{Size: config.Cover.Size, TolerancePct: config.Cover.Tolerance}
}

// Words returns the video ranking words, defaults filling the lists left empty
func (config *Config) Words() provider.Words {
	var (
		defaults = provider.DefaultWords()
		pick     = func(configured, fallback []string) []string {
			if len(configured) > 0 {
				return configured
			}
			return fallback
		}
	)
	return provider.NewWords(
		pick(config.Video.Wrong, defaults.Wrong()),
		pick(config.Video.Okay, defaults.Okay()),
		pick(config.Video.Better, defaults.Better()),
		pick(config.Video.KeptInParens, defaults.Kept()),
	)
}
