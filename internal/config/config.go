package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port           string
	FinnhubAPIKey  string
	FinnhubBaseURL string
	CacheTTL       time.Duration
	CacheEnabled   bool
	// Per-request upstream timeout.
	UpstreamTimeout time.Duration
	// Requests per second allowed against the upstream API.
	UpstreamRateLimit float64
	StaticDir         string
	LogLevel          string
	LogPretty         bool
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	godotenv.Load(".env")

	return Config{
		Port:              getDefault("PORT", "8000"),
		FinnhubAPIKey:     Get("FINNHUB_API_KEY"),
		FinnhubBaseURL:    getDefault("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		CacheTTL:          getDuration("CACHE_TTL", 5*time.Minute),
		CacheEnabled:      GetBool("CACHE_ENABLED", "true"),
		UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamRateLimit: getFloat("UPSTREAM_RATE_LIMIT", 25),
		StaticDir:         getDefault("STATIC_DIR", "static"),
		LogLevel:          getDefault("LOG_LEVEL", "info"),
		LogPretty:         GetBool("LOG_PRETTY", "false"),
	}
}

func Get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetBool(key, defaultVal string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		v = defaultVal
	}
	return v == "1" || v == "true" || v == "yes"
}

func getDefault(key, def string) string {
	if v := Get(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := Get(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getFloat(key string, def float64) float64 {
	v := Get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
