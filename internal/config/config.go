package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // auth database username
	DBPass         string // auth database password (optional)
	DBHost         string // auth database host address
	DBPort         string // auth database port number
	DBName         string // auth database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	Content        ContentConfig
}

// ContentConfig describes how to reach the hosted content store.  The
// store is an external collaborator: all entity documents live there and
// this service only ever holds cached snapshots.  WriteToken is the
// bearer credential scoped for mutations; it is handed to admin sessions
// and never to preview sessions, so write authorization is ultimately
// enforced by the store itself rather than by this service's role checks.
type ContentConfig struct {
	BaseURL    string // root URL of the content store API
	Dataset    string // dataset (namespace) holding the documents
	APIVersion string // date-versioned API revision, e.g. "2024-01-01"
	WriteToken string // mutation-scoped bearer credential (admin only)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		Content: ContentConfig{
			BaseURL:    must("CONTENT_BASE_URL"),
			Dataset:    must("CONTENT_DATASET"),
			APIVersion: getenv("CONTENT_API_VERSION", "2024-01-01"),
			WriteToken: must("CONTENT_WRITE_TOKEN"),
		},
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
