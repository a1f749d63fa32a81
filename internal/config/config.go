package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

const DefaultOutput = "file_data.json"

type Config struct {
	Dir     string
	Output  string
	Verbose bool
	Sniff   bool
	TUI     bool
}

// BindFlags registers the command-line flags that populate cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Dir, "dir", "C", "", "Directory to scan (default: working directory)")
	fs.StringVarP(&cfg.Output, "output", "o", DefaultOutput, "Name of the document written into the scanned directory")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output on stderr")
	fs.BoolVar(&cfg.Sniff, "sniff", false, "Detect the type of files with unknown extensions from their content")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show an interactive progress view while scanning")
}

// Resolve applies environment fallbacks and defaults, and validates cfg.
func Resolve(cfg Config) (Config, error) {
	if !cfg.Verbose {
		cfg.Verbose = envTruthy("DIRMETA_VERBOSE")
	}
	if !cfg.Sniff {
		cfg.Sniff = envTruthy("DIRMETA_SNIFF")
	}

	if cfg.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = wd
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return Config{}, err
	}
	cfg.Dir = dir

	cfg.Output = strings.TrimSpace(cfg.Output)
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if strings.ContainsAny(cfg.Output, `/\`) || cfg.Output == "." || cfg.Output == ".." {
		return Config{}, errors.New("output must be a file name inside the scanned directory")
	}

	return cfg, nil
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
