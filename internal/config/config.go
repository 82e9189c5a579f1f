package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metadata MetadataConfig `mapstructure:"metadata"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// RateLimit caps API requests per client IP per minute; 0 disables it.
	RateLimit   int      `mapstructure:"rate_limit_per_minute"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// MetadataConfig groups the three rating sources. DevMode swaps the
// network clients for offline mock providers.
type MetadataConfig struct {
	DevMode    bool             `mapstructure:"dev_mode"`
	TMDB       TMDBConfig       `mapstructure:"tmdb"`
	OMDB       OMDBConfig       `mapstructure:"omdb"`
	Letterboxd LetterboxdConfig `mapstructure:"letterboxd"`
}

// TMDBConfig configures the primary metadata provider.
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"`
	Timeout      int    `mapstructure:"timeout"` // seconds
}

// OMDBConfig configures the secondary ratings provider.
// RatingsPageURL is the site that serves the per-title rating histogram.
type OMDBConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	RatingsPageURL string `mapstructure:"ratings_page_url"`
	UserAgent      string `mapstructure:"user_agent"`
	Timeout        int    `mapstructure:"timeout"`
}

// LetterboxdConfig configures the scraped ratings source.
type LetterboxdConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	ProxyURL          string  `mapstructure:"proxy_url"`
	UserAgent         string  `mapstructure:"user_agent"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Timeout           int     `mapstructure:"timeout"`
	TablePath         string  `mapstructure:"table_path"`
	TableRefreshMins  int     `mapstructure:"table_refresh_mins"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			RateLimit:   120,
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metadata: MetadataConfig{
			TMDB: TMDBConfig{
				APIKey:       EmbeddedTMDBKey,
				BaseURL:      "https://api.themoviedb.org/3",
				ImageBaseURL: "https://image.tmdb.org/t/p",
				Language:     "en-US",
				Timeout:      15,
			},
			OMDB: OMDBConfig{
				APIKey:         EmbeddedOMDBKey,
				BaseURL:        "https://www.omdbapi.com/",
				RatingsPageURL: "https://www.imdb.com",
				UserAgent:      defaultUserAgent,
				Timeout:        15,
			},
			Letterboxd: LetterboxdConfig{
				BaseURL:           "https://letterboxd.com",
				UserAgent:         defaultUserAgent,
				RequestsPerSecond: 2,
				Timeout:           15,
				TableRefreshMins:  60,
			},
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > .env file > config file > defaults
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.cinescope")
	}

	v.SetEnvPrefix("CINESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values in viper. Every key must be registered here
// for AutomaticEnv to pick up its environment override during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.rate_limit_per_minute", d.Server.RateLimit)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("metadata.dev_mode", false)
	v.SetDefault("metadata.tmdb.api_key", d.Metadata.TMDB.APIKey)
	v.SetDefault("metadata.tmdb.base_url", d.Metadata.TMDB.BaseURL)
	v.SetDefault("metadata.tmdb.image_base_url", d.Metadata.TMDB.ImageBaseURL)
	v.SetDefault("metadata.tmdb.language", d.Metadata.TMDB.Language)
	v.SetDefault("metadata.tmdb.timeout", d.Metadata.TMDB.Timeout)

	v.SetDefault("metadata.omdb.api_key", d.Metadata.OMDB.APIKey)
	v.SetDefault("metadata.omdb.base_url", d.Metadata.OMDB.BaseURL)
	v.SetDefault("metadata.omdb.ratings_page_url", d.Metadata.OMDB.RatingsPageURL)
	v.SetDefault("metadata.omdb.user_agent", d.Metadata.OMDB.UserAgent)
	v.SetDefault("metadata.omdb.timeout", d.Metadata.OMDB.Timeout)

	v.SetDefault("metadata.letterboxd.base_url", d.Metadata.Letterboxd.BaseURL)
	v.SetDefault("metadata.letterboxd.proxy_url", "")
	v.SetDefault("metadata.letterboxd.user_agent", d.Metadata.Letterboxd.UserAgent)
	v.SetDefault("metadata.letterboxd.requests_per_second", d.Metadata.Letterboxd.RequestsPerSecond)
	v.SetDefault("metadata.letterboxd.timeout", d.Metadata.Letterboxd.Timeout)
	v.SetDefault("metadata.letterboxd.table_path", "")
	v.SetDefault("metadata.letterboxd.table_refresh_mins", d.Metadata.Letterboxd.TableRefreshMins)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
