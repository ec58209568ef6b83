package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
bind_address = "127.0.0.1:9000"
debug_mode = false
db_timeout = "2s"
media_storage = "s3"
session_max_age = 60
`), 0600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MEDIA_STORAGE", "disk")

	require.NoError(t, Load())
	assert.Equal(t, "127.0.0.1:9000", BIND_ADDRESS)
	assert.False(t, DEBUG_MODE)
	assert.Equal(t, 2*time.Second, DB_TIMEOUT)
	assert.Equal(t, 60, SESSION_MAX_AGE)
	// environment wins over the file
	assert.Equal(t, "disk", MEDIA_STORAGE)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, Load())
}

func TestMediaMaxBytes(t *testing.T) {
	old := MEDIA_MAX_SIZE
	defer func() { MEDIA_MAX_SIZE = old }()

	tests := []struct {
		in   string
		want int64
	}{
		{"1MB", 1 << 20},
		{"512KiB", 512 << 10},
		{"nonsense", 25 << 20},
		{"", 25 << 20},
	}
	for _, tt := range tests {
		MEDIA_MAX_SIZE = tt.in
		assert.Equal(t, tt.want, MediaMaxBytes(), tt.in)
	}
}

func TestCORSOrigins(t *testing.T) {
	old := CORS_ORIGINS
	defer func() { CORS_ORIGINS = old }()
	CORS_ORIGINS = "https://a.example, https://b.example,,"
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
}
