package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// at startup; optional ones fall back to sensible defaults so a minimal
// .env is enough for local development.
type Config struct {
	Env              string        // application environment (e.g. "dev", "prod")
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	DBMaxOpenConns   int           // connection pool ceiling (default 20)
	DBMaxIdleConns   int           // idle connections kept warm (default 10)
	DBConnLifetime   time.Duration // recycle connections after this long (default 1h)
	JWTSecret        string        // secret used to sign JWTs
	AccessTTLMin     int           // access token time-to-live in minutes (default 60)
	BcryptCost       int           // bcrypt cost for password hashing
	UploadDir        string        // directory for uploaded complaint photos
	EnforceOwnership bool          // restrict complaint update/delete to the owner
}

// Load reads configuration values from environment variables and returns
// a Config. Missing required variables cause the process to exit with a
// fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		DBMaxOpenConns:   atoi(getenv("DB_MAX_OPEN_CONNS", "20")),
		DBMaxIdleConns:   atoi(getenv("DB_MAX_IDLE_CONNS", "10")),
		DBConnLifetime:   parseDur(getenv("DB_CONN_MAX_LIFETIME", "1h")),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     atoi(getenv("ACCESS_TOKEN_TTL_MIN", "60")),
		BcryptCost:       mustInt("BCRYPT_COST"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		EnforceOwnership: getenv("COMPLAINT_ENFORCE_OWNERSHIP", "false") == "true",
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
