package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "BOXOFFICE"

var DefaultGenres = []string{"Action", "Adventure", "Biography", "Comedy", "Drama", "Horror"}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Filters FiltersConfig `mapstructure:"filters"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatasetConfig struct {
	Source     string `mapstructure:"source"` // csv | duckdb
	Path       string `mapstructure:"path"`
	DuckDBPath string `mapstructure:"duckdb_path"`
}

// FiltersConfig holds the selection shown before the user touches any control.
type FiltersConfig struct {
	Genres []string `mapstructure:"genres"`
	From   int      `mapstructure:"from"`
	To     int      `mapstructure:"to"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("dataset.source", "csv")
	v.SetDefault("dataset.path", "data/movies_genres_summary.csv")
	v.SetDefault("dataset.duckdb_path", "boxoffice-atlas.db")
	v.SetDefault("filters.genres", DefaultGenres)
	v.SetDefault("filters.from", 2000)
	v.SetDefault("filters.to", 2016)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads the YAML file at path (optional) and BOXOFFICE_* environment
// overrides, e.g. BOXOFFICE_DATASET_PATH.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for the csv source")
		}
	case "duckdb":
		if c.Dataset.DuckDBPath == "" {
			return fmt.Errorf("dataset.duckdb_path is required for the duckdb source")
		}
	default:
		return fmt.Errorf("unsupported dataset.source %q", c.Dataset.Source)
	}
	if c.Filters.From > c.Filters.To {
		return fmt.Errorf("filters.from (%d) is after filters.to (%d)", c.Filters.From, c.Filters.To)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

func (c LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
