package deps

import (
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
	"github.com/hollowdust/pavilion/internal/markdown"
	"github.com/hollowdust/pavilion/internal/sources/content"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time              // for testing, defaults to time.Now
	AllowedOrigins   []string                      // CORS origins for the public API
	AllowedHosts     []string                      // Host headers allowed on admin endpoints
	AllowedCIDRS     []string                      // IPs allowed on admin endpoints
	TrustProxy       bool                          // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient      *redis.Client                 // Redis client connection (nil = degraded mode)
	MemoryIndex      *index.MemoryIndex            // In-memory content index
	Manifest         *content.Manifest             // Site manifest (declared collections)
	Renderer         *markdown.Renderer            // Markdown to HTML renderer for article bodies
	AssetsDir        string                        // Directory served under /assets (empty = disabled)
	SearchMaxResults int                           // Max candidates returned by search (0 = no limit)
	ReloadTriggers   map[domain.Kind]chan struct{} // Channels to trigger manual reloads per collection
}
