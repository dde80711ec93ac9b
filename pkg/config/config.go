// Package config loads the textpipe run configuration from YAML, .env files and the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-textpipe/internal/logging"
)

// Environment variables overriding the file configuration.
const (
	EnvSteps     = "TEXTPIPE_STEPS"
	EnvStrict    = "TEXTPIPE_STRICT"
	EnvLexicon   = "TEXTPIPE_LEXICON"
	EnvJobs      = "TEXTPIPE_JOBS"
	EnvLogLevel  = "TEXTPIPE_LOG_LEVEL"
	EnvLogFormat = "TEXTPIPE_LOG_FORMAT"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the configuration of a textpipe run.
type Config struct {
	// Steps are passed to the pipeline untouched: unknown names are skipped at run time.
	Steps []string `yaml:"steps"`
	// Strict enables kind checks between steps.
	Strict bool `yaml:"strict"`
	// Lexicon is an optional sentiment lexicon file.
	Lexicon string `yaml:"lexicon"`
	// HTML forces text extraction for every input.
	HTML bool `yaml:"html"`
	// Jobs bounds the number of documents processed at once.
	Jobs int `yaml:"jobs"`
	// DOT is an optional path receiving the diagram of each run.
	DOT string         `yaml:"dot"`
	Log logging.Config `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		Steps: []string{"sentenceSplit", "scoreSentiment"},
		Jobs:  1,
	}
	cfg.Log.ApplyDefaults()

	return cfg
}

// Load reads a YAML configuration file on top of Default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "unable to parse config %s", path)
	}
	cfg.Log.ApplyDefaults()

	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment. Missing files are ignored
// and already set variables are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "unable to load %s", path)
		}
	}

	return nil
}

// ApplyEnv overrides the configuration with the TEXTPIPE_* variables found by lookup,
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookup(EnvSteps); ok {
		c.Steps = SplitSteps(v)
	}
	if v, ok := lookup(EnvStrict); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "unable to parse %s", EnvStrict)
		}
		c.Strict = strict
	}
	if v, ok := lookup(EnvLexicon); ok {
		c.Lexicon = v
	}
	if v, ok := lookup(EnvJobs); ok {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "unable to parse %s", EnvJobs)
		}
		c.Jobs = jobs
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}

	return nil
}

// Validate checks the settings textpipe cannot run with. Step names are not checked.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return errors.Wrapf(ErrInvalidConfig, "jobs must be at least 1 (got: %d)", c.Jobs)
	}

	if err := c.Log.Validate(); err != nil {
		return errors.Wrap(err, "log")
	}

	return nil
}

// SplitSteps splits a comma separated step list, dropping blanks.
func SplitSteps(s string) []string {
	steps := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			steps = append(steps, part)
		}
	}

	return steps
}
