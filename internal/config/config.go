package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ContentDir string // root directory of the content tree (outline files + article bodies)
	SiteFile   string // site manifest filename inside ContentDir (default: site.yaml)
	AssetsDir  string // directory served under /assets (optional, empty = disabled)

	ReloadInterval  time.Duration // interval to reload outline files (default: 1h)
	JanitorInterval time.Duration // interval to prune orphaned rendered articles (default: 24h)

	SearchMaxResults int // max candidates returned by /api/search (default: 20, 0 = no limit)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedOrigins []string // CORS origins for the API (default: "*")
	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict admin endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PAVILION_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PAVILION_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PAVILION_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PAVILION_PRETTY_LOG", true),

		// Content tree
		ContentDir: requireEnv("PAVILION_CONTENT_DIR"),
		SiteFile:   getenv("PAVILION_SITE_FILE", "site.yaml"),
		AssetsDir:  getenv("PAVILION_ASSETS_DIR", ""),

		ReloadInterval:  mustDuration("PAVILION_RELOAD_INTERVAL", 1*time.Hour),
		JanitorInterval: mustDuration("PAVILION_JANITOR_INTERVAL", 24*time.Hour),

		SearchMaxResults: getenvInt("PAVILION_SEARCH_MAX_RESULTS", 20),

		// Redis settings
		RedisAddr:             requireEnv("PAVILION_REDIS_ADDR"),
		RedisUser:             getenv("PAVILION_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PAVILION_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("PAVILION_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("PAVILION_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("PAVILION_ALLOWED_ORIGINS", "*")),
		AllowedHosts:   splitAndTrim(getenv("PAVILION_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("PAVILION_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("PAVILION_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: PAVILION_REDIS_PASSWORD is required when PAVILION_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
