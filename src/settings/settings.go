package settings

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// Arguments holds the process-wide configuration for the mapping layer.
type Arguments struct {
	// The file path to the datafiles written by the memory gateway
	DataDir string `toml:"data_dir"`

	ConfigFile string `toml:"-"`

	// The adapter used when a command definition does not name one
	// (memory, sqlite)
	DefaultAdapter string `toml:"default_adapter"`

	// DSN handed to the sqlite gateway when one is configured
	SQLitePath string `toml:"sqlite_path"`

	// Strongly verbose logging
	Verbose bool `toml:"verbose"`

	Debug bool `toml:"debug"`
}

var (
	instance *Arguments
	once     sync.Once
)

// GetSettings returns the global settings instance, creating it with
// defaults on first use.
func GetSettings() *Arguments {
	once.Do(func() {
		instance = &Arguments{
			DataDir:        "./datafiles",
			DefaultAdapter: "memory",
		}
	})
	return instance
}

// RegisterFlags maps command line flags onto the Arguments struct.
func RegisterFlags(args *Arguments) {
	flag.StringVar(&args.DataDir, "datadir", args.DataDir, "Directory to store data files")
	flag.StringVar(&args.ConfigFile, "config", "", "Path to config file")
	flag.StringVar(&args.DefaultAdapter, "adapter", args.DefaultAdapter, "Default storage adapter (memory, sqlite)")
	flag.StringVar(&args.SQLitePath, "sqlitepath", args.SQLitePath, "Path to the sqlite database file")
	flag.BoolVar(&args.Verbose, "verbose", args.Verbose, "Enable verbose logging")
	flag.BoolVar(&args.Debug, "debug", args.Debug, "Enable debug mode")
}

// LoadConfigFile overlays values from the TOML config file onto args.
// Flags parsed afterwards still win over file values.
func LoadConfigFile(args *Arguments) error {
	if args.ConfigFile == "" {
		return nil
	}
	if _, err := os.Stat(args.ConfigFile); err != nil {
		return fmt.Errorf("could not access config file: %w", err)
	}
	if _, err := toml.DecodeFile(args.ConfigFile, args); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", args.ConfigFile, err)
	}
	return nil
}
