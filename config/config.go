package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CacheTTLKey                 = "CACHE_TTL_MS"
	MaxCacheEntriesKey          = "MAX_CACHE_ENTRIES"
	BrapiTokenKey               = "BRAPI_TOKEN"
	BrapiBaseURLKey             = "BRAPI_BASE_URL"
	UpstreamTimeoutKey          = "UPSTREAM_TIMEOUT"
	HttpAddrKey                 = "HTTP_ADDR"
	PortfolioWeightToleranceKey = "PORTFOLIO_WEIGHT_TOLERANCE"
	CorsAllowedOriginsKey       = "CORS_ALLOWED_ORIGINS"
)

const (
	defaultCacheTTLMs       = 300_000
	defaultMaxCacheEntries  = 500
	defaultBrapiBaseURL     = "https://brapi.dev/api"
	defaultUpstreamTimeout  = 30 * time.Second
	defaultHttpAddr         = ":8080"
	defaultWeightTolerance  = 1.0
	defaultCorsAllowedOrigs = "*"
)

type Config struct {
	CacheTTL                 time.Duration
	MaxCacheEntries          int
	BrapiToken               string
	BrapiBaseURL             string
	UpstreamTimeout          time.Duration
	HttpAddr                 string
	PortfolioWeightTolerance float64
	CorsAllowedOrigins       []string
}

// Load reads the given .env files (or ./.env) into the environment and resolves every key,
// environment values win over defaults.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(CacheTTLKey, defaultCacheTTLMs)
	v.SetDefault(MaxCacheEntriesKey, defaultMaxCacheEntries)
	v.SetDefault(BrapiTokenKey, "")
	v.SetDefault(BrapiBaseURLKey, defaultBrapiBaseURL)
	v.SetDefault(UpstreamTimeoutKey, defaultUpstreamTimeout.String())
	v.SetDefault(HttpAddrKey, defaultHttpAddr)
	v.SetDefault(PortfolioWeightToleranceKey, defaultWeightTolerance)
	v.SetDefault(CorsAllowedOriginsKey, defaultCorsAllowedOrigs)
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		CacheTTL:                 time.Duration(v.GetInt64(CacheTTLKey)) * time.Millisecond,
		MaxCacheEntries:          v.GetInt(MaxCacheEntriesKey),
		BrapiToken:               strings.TrimSpace(v.GetString(BrapiTokenKey)),
		BrapiBaseURL:             strings.TrimSpace(v.GetString(BrapiBaseURLKey)),
		UpstreamTimeout:          parseTimeout(v.GetString(UpstreamTimeoutKey)),
		HttpAddr:                 v.GetString(HttpAddrKey),
		PortfolioWeightTolerance: v.GetFloat64(PortfolioWeightToleranceKey),
		CorsAllowedOrigins:       splitOrigins(v.GetString(CorsAllowedOriginsKey)),
	}

	// unparseable or non positive values fall back to defaults
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTLMs * time.Millisecond
	}
	if cfg.MaxCacheEntries <= 0 {
		cfg.MaxCacheEntries = defaultMaxCacheEntries
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = defaultUpstreamTimeout
	}
	if cfg.PortfolioWeightTolerance < 0 {
		cfg.PortfolioWeightTolerance = defaultWeightTolerance
	}
	if cfg.BrapiBaseURL == "" {
		cfg.BrapiBaseURL = defaultBrapiBaseURL
	}
	if cfg.HttpAddr == "" {
		cfg.HttpAddr = defaultHttpAddr
	}

	return cfg
}

// parseTimeout reads a bare number as seconds, anything else as a Go duration ("45s", "1m30s")
func parseTimeout(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s %q, using default: %v", UpstreamTimeoutKey, raw, err)
		return 0
	}
	return d
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{defaultCorsAllowedOrigs}
	}
	return origins
}
