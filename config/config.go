package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
)

var (
	BIND_ADDRESS = "0.0.0.0:8080"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	DEBUG_MODE   = true
	CORS_ORIGINS = "*" // comma separated
	// Database: MySQL is used if MYSQL_DSN is set, then PostgreSQL, then SQLite
	MYSQL_DSN    = ""
	POSTGRES_DSN = ""
	SQLITE_FILE  = "portfolio.db"
	DB_TIMEOUT   = 5 * time.Second
	// Sessions
	SESSION_SECRET  = "" // random per process if empty (sessions won't survive restarts)
	SESSION_MAX_AGE = 7 * 86400
	// Media storage: "disk" or "s3"
	MEDIA_STORAGE    = "disk"
	MEDIA_DIR        = "./media"
	MEDIA_PUBLIC_URL = "http://localhost:8080/media" // public prefix of stored objects
	MEDIA_MAX_SIZE   = "25MB"
	MEDIA_TIMEOUT    = 30 * time.Second
	S3_BUCKET        = ""
	S3_REGION        = "us-east-1"
	S3_ENDPOINT      = "" // for S3 compatible services
	S3_KEY           = ""
	S3_SECRET        = ""
	S3_PREFIX        = ""
	S3_SSE           = "" // e.g. "AES256"
	SHUTDOWN_TIMEOUT = 15 * time.Second
	// Initial account, created on startup if missing
	ADMIN_SEED_EMAIL    = ""
	ADMIN_SEED_PASSWORD = ""
	ADMIN_SEED_USERNAME = "admin"

	fileValues = map[string]string{}
)

func init() {
	if err := Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
}

// Load applies values from the TOML config file (CONFIG_FILE, defaults to ./config.toml when present)
// and then from the environment. Environment variables win.
func Load() error {
	fileValues = map[string]string{}
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.toml"
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	var err error
	if path != "" {
		err = loadFile(path)
	}
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvDuration("DB_TIMEOUT", &DB_TIMEOUT)
	readEnvString("SESSION_SECRET", &SESSION_SECRET)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("MEDIA_STORAGE", &MEDIA_STORAGE)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvString("MEDIA_PUBLIC_URL", &MEDIA_PUBLIC_URL)
	readEnvString("MEDIA_MAX_SIZE", &MEDIA_MAX_SIZE)
	readEnvDuration("MEDIA_TIMEOUT", &MEDIA_TIMEOUT)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_SSE", &S3_SSE)
	readEnvDuration("SHUTDOWN_TIMEOUT", &SHUTDOWN_TIMEOUT)
	readEnvString("ADMIN_SEED_EMAIL", &ADMIN_SEED_EMAIL)
	readEnvString("ADMIN_SEED_PASSWORD", &ADMIN_SEED_PASSWORD)
	readEnvString("ADMIN_SEED_USERNAME", &ADMIN_SEED_USERNAME)
	return err
}

// MediaMaxBytes parses MEDIA_MAX_SIZE ("25MB", "512KiB", ...). Invalid values fall back to 25MB.
func MediaMaxBytes() int64 {
	size, err := units.RAMInBytes(MEDIA_MAX_SIZE)
	if err != nil || size <= 0 {
		return 25 * units.MiB
	}
	return size
}

// CORSOrigins returns the configured origins as a list
func CORSOrigins() []string {
	result := []string{}
	for _, origin := range strings.Split(CORS_ORIGINS, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

// loadFile reads a flat TOML file, e.g.:
//
//	bind_address = "0.0.0.0:9000"
//	debug_mode = false
func loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	values := map[string]any{}
	if err = toml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for k, v := range values {
		fileValues[strings.ToLower(k)] = fmt.Sprint(v)
	}
	return nil
}

func lookup(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fileValues[strings.ToLower(name)]
}

func readEnvString(name string, value *string) {
	v := lookup(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(lookup(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := lookup(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

func readEnvDuration(name string, value *time.Duration) {
	v := lookup(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return
	}
	*value = d
}
