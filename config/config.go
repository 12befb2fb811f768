package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks for the config file when no path is given.
var DefaultPath = filepath.Join("config", "config.json")

// AppConfig holds file and environment driven configuration values.
type AppConfig struct {
	AppPort            string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Remote read-only API
	RemoteBaseURL       string
	RemoteTimeoutSec    int
	RemoteRetryAttempts int
	// Identity used for edit/delete permission checks when a request does not name one
	CurrentUserID int
	// Local persistence
	StorageDriver   string // sqlite | mysql | postgres | redis | bolt | memory
	DatabaseURI     string
	SQLitePath      string
	BoltPath        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	SlotPostsKey    string
	SlotDeletedKey  string
	SearchDebounceMs int
	// Redis slot backend
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the configuration from DefaultPath and the environment. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}
	return LoadFrom(DefaultPath)
}

// LoadFrom loads the configuration from the given file and caches it for Load.
// Precedence: file -> defaults -> environment variable overrides.
func LoadFrom(path string) AppConfig {
	var c AppConfig
	if err := loadFile(path, &c); err != nil {
		log.Printf("ignoring config file %s: %v", path, err)
	}
	applyDefaults(&c)
	applyEnvOverrides(&c)

	cfg = c
	loaded = true
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadFile reads a JSON or YAML file into out. A missing file is not an error.
func loadFile(path string, out *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	applyRaw(raw, out)
	return nil
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(m map[string]any, key string) int {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case float64:
			return int(t)
		case int:
			return t
		case string:
			i, _ := strconv.Atoi(t)
			return i
		}
	}
	return 0
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func getStringSlice(m map[string]any, key string) []string {
	if v, ok := m[key]; ok {
		if arr, ok := v.([]any); ok {
			res := make([]string, 0, len(arr))
			for _, it := range arr {
				if s, ok := it.(string); ok {
					res = append(res, s)
				}
			}
			return res
		}
	}
	return nil
}

// applyRaw maps grouped sections (app, remote, storage, redis, log) onto out.
// Flat top-level keys are honored for anything a section left unset.
func applyRaw(raw map[string]any, out *AppConfig) {
	if app, ok := raw["app"].(map[string]any); ok {
		out.AppPort = getString(app, "AppPort")
		out.GinMode = getString(app, "GinMode")
		out.GinPath = getString(app, "GinPath")
		out.RateLimitPerMinute = getInt(app, "RateLimitPerMinute")
		out.AllowedOrigins = getStringSlice(app, "AllowedOrigins")
		out.CurrentUserID = getInt(app, "CurrentUserID")
		out.SearchDebounceMs = getInt(app, "SearchDebounceMs")
	}

	if rm, ok := raw["remote"].(map[string]any); ok {
		out.RemoteBaseURL = getString(rm, "BaseURL")
		out.RemoteTimeoutSec = getInt(rm, "TimeoutSec")
		out.RemoteRetryAttempts = getInt(rm, "RetryAttempts")
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		out.StorageDriver = getString(st, "Driver")
		out.DatabaseURI = getString(st, "DatabaseURI")
		out.SQLitePath = getString(st, "SQLitePath")
		out.BoltPath = getString(st, "BoltPath")
		out.DBHost = getString(st, "DBHost")
		out.DBPort = getString(st, "DBPort")
		out.DBUser = getString(st, "DBUser")
		out.DBPassword = getString(st, "DBPassword")
		out.DBName = getString(st, "DBName")
		out.SlotPostsKey = getString(st, "PostsKey")
		out.SlotDeletedKey = getString(st, "DeletedKey")
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		out.RedisHost = getString(rds, "RedisHost")
		out.RedisPort = getInt(rds, "RedisPort")
		out.RedisDB = getInt(rds, "RedisDB")
		out.RedisPassword = getString(rds, "RedisPassword")
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		out.LogLevel = getString(lg, "Level")
		out.LogPath = getString(lg, "Path")
		out.LogMaxSizeMB = getInt(lg, "MaxSizeMB")
		out.LogMaxBackups = getInt(lg, "MaxBackups")
		out.LogMaxAgeDays = getInt(lg, "MaxAgeDays")
		out.LogCompress = getBool(lg, "Compress")
	}

	// flat keys for backward compatibility
	if out.AppPort == "" {
		out.AppPort = getString(raw, "AppPort")
	}
	if out.RemoteBaseURL == "" {
		out.RemoteBaseURL = getString(raw, "RemoteBaseURL")
	}
	if out.StorageDriver == "" {
		out.StorageDriver = getString(raw, "StorageDriver")
	}
	if out.CurrentUserID == 0 {
		out.CurrentUserID = getInt(raw, "CurrentUserID")
	}
	if out.LogLevel == "" {
		out.LogLevel = getString(raw, "LogLevel")
	}
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RemoteBaseURL == "" {
		c.RemoteBaseURL = "https://jsonplaceholder.typicode.com"
	}
	if c.RemoteTimeoutSec == 0 {
		c.RemoteTimeoutSec = 10
	}
	if c.RemoteRetryAttempts == 0 {
		c.RemoteRetryAttempts = 2
	}
	if c.CurrentUserID == 0 {
		c.CurrentUserID = 1
	}
	if c.StorageDriver == "" {
		c.StorageDriver = "sqlite"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "data/postboard.db"
	}
	if c.BoltPath == "" {
		c.BoltPath = "data/postboard.bolt"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "postboard"
	}
	if c.SlotPostsKey == "" {
		c.SlotPostsKey = "interbank_custom_posts"
	}
	if c.SlotDeletedKey == "" {
		c.SlotDeletedKey = "interbank_deleted_posts"
	}
	if c.SearchDebounceMs == 0 {
		c.SearchDebounceMs = 350
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	if v := getEnv("REMOTE_BASE_URL", ""); v != "" {
		c.RemoteBaseURL = v
	}
	if v := getEnv("REMOTE_TIMEOUT_SEC", ""); v != "" {
		c.RemoteTimeoutSec = mustParseInt(v)
	}
	if v := getEnv("REMOTE_RETRY_ATTEMPTS", ""); v != "" {
		c.RemoteRetryAttempts = mustParseInt(v)
	}
	if v := getEnv("CURRENT_USER_ID", ""); v != "" {
		c.CurrentUserID = mustParseInt(v)
	}
	if v := getEnv("STORAGE_DRIVER", ""); v != "" {
		c.StorageDriver = strings.ToLower(v)
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("SQLITE_PATH", ""); v != "" {
		c.SQLitePath = v
	}
	if v := getEnv("BOLT_PATH", ""); v != "" {
		c.BoltPath = v
	}
	if v := getEnv("DB_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("DB_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("DB_USER", ""); v != "" {
		c.DBUser = v
	}
	if v := getEnv("DB_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("DB_NAME", ""); v != "" {
		c.DBName = v
	}
	if v := getEnv("SLOT_POSTS_KEY", ""); v != "" {
		c.SlotPostsKey = v
	}
	if v := getEnv("SLOT_DELETED_KEY", ""); v != "" {
		c.SlotDeletedKey = v
	}
	if v := getEnv("SEARCH_DEBOUNCE_MS", ""); v != "" {
		c.SearchDebounceMs = mustParseInt(v)
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
