// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Storage backends accepted by the -s flag.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageBadger   = "badger"
	StoragePostgres = "postgres"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the Postgres connection string, used by the postgres backend.
	DatabaseDSN string `json:"database_dsn"`

	// Storage selects the snapshot backend: memory, file, badger or postgres.
	Storage string `json:"storage"`

	// DataDir is where the file and badger backends keep their data.
	DataDir string `json:"data_dir"`

	// Latency is the simulated delay applied to every API request.
	Latency time.Duration `json:"-"`

	// LatencyText is the JSON form of Latency, e.g. "500ms".
	LatencyText string `json:"latency"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	register(flag.CommandLine, options)
}

func register(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&o.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&o.Storage, "s", StorageFile, "storage backend: memory, file, badger or postgres")
	fs.StringVar(&o.DataDir, "data", "data", "data directory for file and badger storage")
	fs.DurationVar(&o.Latency, "latency", 0, "simulated latency per API request")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&o.Config, "config", "config.json", "path to config file")
	fs.StringVar(&o.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()
	if err := resolve(options, os.Getenv); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return options
}

// resolve applies the config file and then the environment on top of parsed flags.
// Precedence, lowest first: flag defaults and values, config file, environment.
func resolve(o *Options, getenv func(string) string) error {
	if configPath := getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if storage := getenv("STORAGE"); storage != "" {
		o.Storage = storage
	}
	if dir := getenv("DATA_DIR"); dir != "" {
		o.DataDir = dir
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		o.LogLevel = level
	}
	if latency := getenv("LATENCY"); latency != "" {
		o.LatencyText = latency
	}

	if o.LatencyText != "" {
		d, err := time.ParseDuration(o.LatencyText)
		if err != nil {
			return fmt.Errorf("invalid latency %q: %w", o.LatencyText, err)
		}
		o.Latency = d
	}
	if o.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %v", o.Latency)
	}

	o.Storage = strings.ToLower(strings.TrimSpace(o.Storage))
	switch o.Storage {
	case StorageMemory, StorageFile, StorageBadger:
	case StoragePostgres:
		if o.DatabaseDSN == "" {
			return fmt.Errorf("storage %q requires a database DSN", o.Storage)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", o.Storage)
	}
	return nil
}
