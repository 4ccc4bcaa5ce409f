package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverFile      = "file"
	DriverMemory    = "memory"
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port               string
	StoreDriver        string
	DataFile           string
	SQLitePath         string
	FirebaseProjectID  string
	FirebaseCredential string
	JWTSecret          string
	TokenTTL           time.Duration
	CORSOrigins        []string
	GinMode            string
}

// Load reads a .env file when present, then the environment, and applies
// defaults. Validate is left to the caller so flags can override first.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := Config{
		Port:               env("PORT", "8080"),
		StoreDriver:        strings.ToLower(env("STORE_DRIVER", DriverFile)),
		DataFile:           env("DATA_FILE", ".data/storage.json"),
		SQLitePath:         env("SQLITE_PATH", ".data/tracker.db"),
		FirebaseProjectID:  env("FIREBASE_PROJECT_ID", ""),
		FirebaseCredential: env("GOOGLE_APPLICATION_CREDENTIALS", ""),
		JWTSecret:          env("JWT_SECRET_KEY", ""),
		CORSOrigins:        splitList(os.Getenv("CORS_ORIGINS")),
		GinMode:            env("GIN_MODE", "release"),
	}
	cfg.TokenTTL = parseTTL(os.Getenv("TOKEN_TTL"))
	return cfg
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.StoreDriver {
	case DriverFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the %s driver", c.StoreDriver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s driver", c.StoreDriver)
		}
	case DriverFirestore:
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the %s driver", c.StoreDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseTTL accepts Go durations ("24h", "90m"); anything invalid means no expiry.
func parseTTL(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: ignoring invalid TOKEN_TTL %q", raw)
		return 0
	}
	return d
}
