package config

import (
	"os"
	"time"
)

// Server captures process-level configuration for the access service.
type Server struct {
	Addr        string
	MetricsAddr string

	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration

	// CoreDatabaseURL backs the audit ledger, the portal user table, and the
	// employee directory views.
	CoreDatabaseURL string

	// BackendDatabaseURLs maps an application name to the DSN of its status
	// store. Each downstream application owns an independent database; the
	// adapters never share tables.
	BackendDatabaseURLs map[string]string

	Redis RedisConfig

	// LocationCacheTTL bounds staleness of the announcement role list served
	// from the Redis read-through cache.
	LocationCacheTTL time.Duration
}

// RedisConfig captures connection settings for the optional Redis cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Gateway captures configuration for the reverse-proxy entrypoint.
type Gateway struct {
	Addr        string
	LogsURL     string
	AppURL      string
}

// backendApps lists the applications with a dedicated status store. Kept in
// sync with the registry; config only needs the names to find DSNs.
var backendApps = []string{
	"activate", "announcement", "avayalogout", "helpdesk", "sdotp", "wifiguest",
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	backends := make(map[string]string, len(backendApps))
	for _, app := range backendApps {
		backends[app] = envOr("ACCESSDESK_BACKEND_"+envKey(app)+"_URL", "")
	}

	return Server{
		Addr:            envOr("ACCESSDESK_ADDR", ":8002"),
		MetricsAddr:     envOr("ACCESSDESK_METRICS_ADDR", ":9090"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       envOr("JWT_ISSUER", "accessdesk"),
		TokenTTL:        durationOr("ACCESSDESK_TOKEN_TTL", 24*time.Hour),
		CoreDatabaseURL: envOr("ACCESSDESK_DATABASE_URL", ""),

		BackendDatabaseURLs: backends,

		Redis: RedisConfig{
			URL:          envOr("ACCESSDESK_REDIS_URL", ""),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},

		LocationCacheTTL: durationOr("ACCESSDESK_LOCATION_CACHE_TTL", 5*time.Minute),
	}
}

// GatewayFromEnv builds the reverse-proxy config.
func GatewayFromEnv() Gateway {
	return Gateway{
		Addr:    envOr("ACCESSDESK_GATEWAY_ADDR", ":8000"),
		LogsURL: envOr("ACCESSDESK_LOGS_UPSTREAM", "http://localhost:8001"),
		AppURL:  envOr("ACCESSDESK_APP_UPSTREAM", "http://localhost:8002"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envKey(app string) string {
	out := make([]byte, len(app))
	for i := 0; i < len(app); i++ {
		c := app[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
