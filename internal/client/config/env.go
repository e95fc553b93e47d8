package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/bizdesk/internal/flagx"
)

const (
	envBackendURL = "BACKEND_URL"
	envStorage    = "BIZDESK_STORAGE"
	envTimeout    = "BIZDESK_TIMEOUT"
	envRPS        = "BIZDESK_RPS"
	envLogLevel   = "BIZDESK_LOG_LEVEL"
)

// parseEnv overlays cfg with environment variables. A dotenv file named by
// -env fills in variables the process does not define.
func parseEnv(cfg *Config, args []string, lookupEnv func(string) (string, bool)) error {
	var file map[string]string
	if path := flagx.EnvFileFlag(args); path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read env file: %w", err)
		}
		file = m
	}

	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := get(envBackendURL); ok {
		cfg.BackendURL = v
	}
	if v, ok := get(envStorage); ok {
		cfg.StoragePath = v
	}
	if v, ok := get(envTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(envRPS); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envRPS, err)
		}
		cfg.RequestsPerSecond = f
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	return nil
}
