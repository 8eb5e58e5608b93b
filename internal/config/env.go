package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAppAddr       = ":8080"
	DefaultAPIURL        = "http://localhost:8080"
	DefaultDebounceDelay = 300 * time.Millisecond
)

type Env struct {
	DatabaseURL        string   `toml:"database_url"`
	AppAddr            string   `toml:"app_addr"`
	GinMode            string   `toml:"gin_mode"`
	LogLevel           string   `toml:"log_level"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	APIURL             string   `toml:"api_url"`
	DebounceDelay      Duration `toml:"debounce_delay"`
}

// Duration reads "300ms"-style strings from TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// LoadEnv reads the optional TOML file at path, then lets environment variables override it.
// An empty path or a missing file is not an error.
func LoadEnv(path string) (Env, error) {
	env := Env{}
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return env, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &env); err != nil {
				return env, fmt.Errorf("unmarshaling config: %w", err)
			}
		}
	}

	override(&env.DatabaseURL, "DATABASE_URL")
	override(&env.AppAddr, "APP_ADDR")
	override(&env.GinMode, "GIN_MODE")
	override(&env.LogLevel, "LOG_LEVEL")
	override(&env.APIURL, "ADVOCATES_API_URL")
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSAllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("ADVOCATES_DEBOUNCE")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return env, fmt.Errorf("ADVOCATES_DEBOUNCE: %w", err)
		}
		env.DebounceDelay = Duration{d}
	}

	if env.AppAddr == "" {
		env.AppAddr = DefaultAppAddr
	}
	if env.APIURL == "" {
		env.APIURL = DefaultAPIURL
	}
	if env.DebounceDelay.Duration <= 0 {
		env.DebounceDelay = Duration{DefaultDebounceDelay}
	}
	if len(env.CORSAllowedOrigins) == 0 {
		env.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	return env, nil
}

func override(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
