package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when -env is not given and the file exists.
const DefaultEnvFile = ".env"

// Environment variable names.
const (
	EnvAPIBaseURL     = "USERADMIN_API_URL"
	EnvRequestTimeout = "USERADMIN_REQUEST_TIMEOUT"
	EnvDebounceDelay  = "USERADMIN_DEBOUNCE"
	EnvPageSize       = "USERADMIN_PAGE_SIZE"
	EnvDataDir        = "USERADMIN_DATA_DIR"
	EnvLogLevel       = "USERADMIN_LOG_LEVEL"
)

// parseEnv overlays cfg with the dotenv file and then the process
// environment; a variable set in the process wins over the file.
func parseEnv(cfg *Config, args []string, lookupEnv LookupEnvFunc) error {
	file := flagx.EnvFileFlag(args)
	explicit := file != ""
	if !explicit {
		file = DefaultEnvFile
	}

	vars, err := godotenv.Read(file)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", file, err)
		}
		vars = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if lookupEnv != nil {
			if v, ok := lookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := vars[key]
		return v, ok
	}

	if v, ok := get(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := get(EnvDataDir); ok {
		cfg.DataDir = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(EnvDebounceDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounceDelay, err)
		}
		cfg.DebounceDelay = d
	}
	if v, ok := get(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		cfg.PageSize = n
	}
	return nil
}
