package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/filex"
)

// Config holds runtime settings for the console.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DebounceDelay  time.Duration
	PageSize       int
	DataDir        string
	LogLevel       string
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.DebounceDelay = 500 * time.Millisecond
	c.PageSize = 5
	c.DataDir = filex.DefaultDataDir()
	c.LogLevel = "info"
}

// Load builds a Config from defaults, environment, JSON and flags, in that
// order of increasing precedence.
func Load(args []string, lookupEnv LookupEnvFunc) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Validate rejects settings the console cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.RequestTimeout < 0 || c.DebounceDelay < 0 {
		return errors.New("durations must not be negative")
	}
	if c.DataDir == "" {
		return errors.New("data dir is empty")
	}
	return nil
}
