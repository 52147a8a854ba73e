// Package config loads the settings shared by the pathtools binaries.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PATHTOOLS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"
)

const (
	appName = "pathtools"
	// EnvPrefix is the prefix of every environment override.
	EnvPrefix = "PATHTOOLS"
	// FileEnv names the variable that points at an explicit config file.
	FileEnv = "PATHTOOLS_CONFIG"
)

var (
	// ErrConfigInvalid is returned when the loaded configuration fails validation.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrConfigRead is returned when the config file exists but cannot be read or parsed.
	ErrConfigRead = errors.New("could not read configuration file")
)

// FsFactory returns the filesystem config files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config holds the settings of the resolver and the dispatchers.
type Config struct {
	// SearchPathVar names the colon-delimited environment variable searched by the resolver.
	SearchPathVar string `yaml:"search_path_var" envconfig:"SEARCH_PATH_VAR"`
	// FindstrProgram is the companion located and run by findstr.
	FindstrProgram string `yaml:"findstr_program" envconfig:"FINDSTR_PROGRAM"`
	// DirsbProgram is the companion located and run by dirsb.
	DirsbProgram string `yaml:"dirsb_program" envconfig:"DIRSB_PROGRAM"`
	// CanonicalizeSearchMatches also canonicalizes matches found on the search path.
	CanonicalizeSearchMatches bool `yaml:"canonicalize_search_matches" envconfig:"CANONICALIZE_SEARCH_MATCHES"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SearchPathVar:  "PATH",
		FindstrProgram: "findstr-search",
		DirsbProgram:   "dirsb-list",
	}
}

// DefaultFile is the config file used when PATHTOOLS_CONFIG is unset.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load builds the configuration from defaults, the config file and the environment.
// A missing default config file is not an error; a missing explicit one is.
func Load() (Config, error) {
	cfg := Default()

	file, explicit := os.LookupEnv(FileEnv)
	if !explicit || file == "" {
		file, explicit = DefaultFile(), false
	}

	if err := cfg.mergeFile(FsFactory(), file, explicit); err != nil {
		return cfg, err
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(fs afero.Fs, file string, explicit bool) error {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("%w %s: %w", ErrConfigRead, file, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigRead, file, err)
	}

	return nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var result error

	if strings.TrimSpace(c.SearchPathVar) == "" {
		result = multierror.Append(result, errors.New("search_path_var must not be empty"))
	} else if strings.ContainsAny(c.SearchPathVar, "= ") {
		result = multierror.Append(result, fmt.Errorf("search_path_var %q is not a valid variable name", c.SearchPathVar))
	}

	if strings.TrimSpace(c.FindstrProgram) == "" {
		result = multierror.Append(result, errors.New("findstr_program must not be empty"))
	}

	if strings.TrimSpace(c.DirsbProgram) == "" {
		result = multierror.Append(result, errors.New("dirsb_program must not be empty"))
	}

	if result != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, result)
	}

	return nil
}

// SearchDirs splits the configured search-path variable of env into directories.
func (c Config) SearchDirs(getenv func(string) string) []string {
	return SplitSearchPath(getenv(c.SearchPathVar))
}

// SplitSearchPath splits a colon-delimited list, keeping order and empty segments.
// An empty list has no directories.
func SplitSearchPath(list string) []string {
	if list == "" {
		return nil
	}

	return strings.Split(list, ":")
}
