package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	c := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", c.RemoteBaseURL)
	assert.Equal(t, 10, c.RemoteTimeoutSec)
	assert.Equal(t, 2, c.RemoteRetryAttempts)
	assert.Equal(t, 1, c.CurrentUserID)
	assert.Equal(t, "sqlite", c.StorageDriver)
	assert.Equal(t, "interbank_custom_posts", c.SlotPostsKey)
	assert.Equal(t, "interbank_deleted_posts", c.SlotDeletedKey)
	assert.Equal(t, 350, c.SearchDebounceMs)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
}

func TestLoadFromJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"app": {"AppPort": "9090", "CurrentUserID": 3, "AllowedOrigins": ["http://a", "http://b"]},
		"remote": {"BaseURL": "http://remote.test", "RetryAttempts": 4},
		"storage": {"Driver": "bolt", "BoltPath": "/tmp/x.bolt"},
		"log": {"Level": "debug", "Compress": true}
	}`)

	c := LoadFrom(path)

	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, 3, c.CurrentUserID)
	assert.Equal(t, []string{"http://a", "http://b"}, c.AllowedOrigins)
	assert.Equal(t, "http://remote.test", c.RemoteBaseURL)
	assert.Equal(t, 4, c.RemoteRetryAttempts)
	assert.Equal(t, 10, c.RemoteTimeoutSec)
	assert.Equal(t, "bolt", c.StorageDriver)
	assert.Equal(t, "/tmp/x.bolt", c.BoltPath)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.LogCompress)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
app:
  AppPort: "7070"
  SearchDebounceMs: 100
storage:
  Driver: memory
  PostsKey: custom
redis:
  RedisPort: 6380
`)

	c := LoadFrom(path)

	assert.Equal(t, "7070", c.AppPort)
	assert.Equal(t, 100, c.SearchDebounceMs)
	assert.Equal(t, "memory", c.StorageDriver)
	assert.Equal(t, "custom", c.SlotPostsKey)
	assert.Equal(t, "interbank_deleted_posts", c.SlotDeletedKey)
	assert.Equal(t, 6380, c.RedisPort)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"app": {"AppPort": "9090"}}`)
	t.Setenv("APP_PORT", "6060")
	t.Setenv("CURRENT_USER_ID", "7")
	t.Setenv("STORAGE_DRIVER", "REDIS")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://x , ,http://y ")

	c := LoadFrom(path)

	assert.Equal(t, "6060", c.AppPort)
	assert.Equal(t, 7, c.CurrentUserID)
	assert.Equal(t, "redis", c.StorageDriver)
	assert.Equal(t, []string{"http://x", "http://y"}, c.AllowedOrigins)
}

func TestLoadFromInvalidFileFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{not json`)

	c := LoadFrom(path)

	assert.Equal(t, "8080", c.AppPort)
}

func TestOpenDatabaseSQLite(t *testing.T) {
	c := AppConfig{StorageDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "nested", "test.db"), LogLevel: "silent"}

	conn, err := OpenDatabase(c)
	require.NoError(t, err)
	assert.True(t, conn.Migrator().HasTable("local_slots"))
}

func TestOpenDatabaseUnsupportedDriver(t *testing.T) {
	_, err := OpenDatabase(AppConfig{StorageDriver: "oracle"})
	require.Error(t, err)
}

func TestExampleConfigLoads(t *testing.T) {
	c := LoadFrom("config.example.json")

	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, 120, c.RateLimitPerMinute)
	assert.Equal(t, "logs/postboard.log", c.LogPath)
	assert.Equal(t, 6379, c.RedisPort)
}
