package commsig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ──────────────────────────────────────────────
// Configuration — environment-driven service config
// ──────────────────────────────────────────────

// Storage backends selectable via COMMSIG_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// ServiceConfig holds everything needed to run the HTTP service.
// Use NewServiceConfigFromEnv() to load it from environment variables
// (.env file supported).
type ServiceConfig struct {
	// Addr is the HTTP listen address (default ":8080").
	Addr string
	// Store selects the backend: "memory", "redis" or "sqlite".
	Store string
	// RedisAddr is the redis host:port for the redis backend.
	RedisAddr string
	// RedisPassword is optional.
	RedisPassword string
	// RedisDB selects the redis database number.
	RedisDB int
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string
	// MaxMessageBytes caps inbound request bodies (default 64 KiB).
	MaxMessageBytes int64
	// LogRequests enables one log line per handled request.
	LogRequests bool
}

// NewServiceConfigFromEnv loads configuration from environment variables,
// reading a .env file first when one exists.
func NewServiceConfigFromEnv() (*ServiceConfig, error) {
	LoadDotEnv()

	store := strings.ToLower(strings.TrimSpace(getEnv("COMMSIG_STORE", StoreMemory)))
	switch store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return nil, fmt.Errorf("commsig: unknown COMMSIG_STORE %q", store)
	}

	redisDB, _ := strconv.Atoi(getEnv("COMMSIG_REDIS_DB", "0"))
	maxBytes, _ := strconv.ParseInt(getEnv("COMMSIG_MAX_MESSAGE_BYTES", "65536"), 10, 64)
	if maxBytes <= 0 {
		maxBytes = 65536
	}

	return &ServiceConfig{
		Addr:            getEnv("COMMSIG_ADDR", ":8080"),
		Store:           store,
		RedisAddr:       getEnv("COMMSIG_REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("COMMSIG_REDIS_PASSWORD", ""),
		RedisDB:         redisDB,
		SQLitePath:      getEnv("COMMSIG_SQLITE_PATH", "commsig.db"),
		MaxMessageBytes: maxBytes,
		LogRequests:     toBool(getEnv("COMMSIG_LOG_REQUESTS", "false")),
	}, nil
}

// Summary returns a human-readable configuration summary with sensitive
// data masked.
func (c *ServiceConfig) Summary() string {
	passwordDisplay := "(none)"
	if c.RedisPassword != "" {
		passwordDisplay = "***"
	}
	backend := c.Store
	switch c.Store {
	case StoreRedis:
		backend = fmt.Sprintf("redis(%s db=%d pass=%s)", c.RedisAddr, c.RedisDB, passwordDisplay)
	case StoreSQLite:
		backend = fmt.Sprintf("sqlite(%s)", c.SQLitePath)
	}
	return fmt.Sprintf(
		"Addr: %s | Store: %s | MaxBody: %d | LogRequests: %v",
		c.Addr, backend, c.MaxMessageBytes, c.LogRequests,
	)
}

// --- internal helpers ---

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func toBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// LoadDotEnv loads a .env file from the current directory into the
// process environment. Existing variables are never overridden; missing
// or malformed files are ignored.
func LoadDotEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}
