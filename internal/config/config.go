package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	SourceBaseURL   string
	SourceUserAgent string
	SourceTimeout   time.Duration

	WidgetHost         string
	WidgetOrganization string

	ScrapeCircuitEnabled        bool
	ScrapeCircuitFailureCount   int
	ScrapeCircuitOpenTimeout    time.Duration
	ScrapeCircuitHalfOpenMaxReq int

	TournamentCacheTTL time.Duration
	MatchCacheTTL      time.Duration
	RankingCacheTTL    time.Duration
	MatchStatsCacheTTL time.Duration

	ArchiveDBPath string
	PlayerAliases map[string]string

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	LogLevel           logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	sourceTimeout, err := time.ParseDuration(getEnv("SOURCE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_TIMEOUT: %w", err)
	}
	if sourceTimeout <= 0 {
		return Config{}, fmt.Errorf("SOURCE_TIMEOUT must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("SCRAPE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("SCRAPE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCRAPE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("SCRAPE_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	tournamentTTL, err := parseTTL("TOURNAMENT_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	matchTTL, err := parseTTL("MATCH_CACHE_TTL", "2m")
	if err != nil {
		return Config{}, err
	}
	rankingTTL, err := parseTTL("RANKING_CACHE_TTL", "1h")
	if err != nil {
		return Config{}, err
	}
	matchStatsTTL, err := parseTTL("MATCH_STATS_CACHE_TTL", "5m")
	if err != nil {
		return Config{}, err
	}

	aliases, err := parseAliasMap(getEnv("PLAYER_ALIASES", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_ALIASES: %w", err)
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "padel-tracker-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		SourceBaseURL:   strings.TrimRight(getEnv("SOURCE_BASE_URL", "https://www.padelfip.com"), "/"),
		SourceUserAgent: strings.TrimSpace(getEnv("SOURCE_USER_AGENT", "")),
		SourceTimeout:   sourceTimeout,

		WidgetHost:         strings.TrimRight(getEnv("WIDGET_HOST", "https://widget.matchscorerlive.com"), "/"),
		WidgetOrganization: strings.TrimSpace(getEnv("WIDGET_ORGANIZATION", "FIP")),

		ScrapeCircuitEnabled:        circuitEnabled,
		ScrapeCircuitFailureCount:   circuitFailureCount,
		ScrapeCircuitOpenTimeout:    circuitOpenTimeout,
		ScrapeCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,

		TournamentCacheTTL: tournamentTTL,
		MatchCacheTTL:      matchTTL,
		RankingCacheTTL:    rankingTTL,
		MatchStatsCacheTTL: matchStatsTTL,

		ArchiveDBPath: strings.TrimSpace(getEnv("ARCHIVE_DB_PATH", "padel-archive.db")),
		PlayerAliases: aliases,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:     swaggerEnabled,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if cfg.SourceBaseURL == "" {
		return Config{}, fmt.Errorf("SOURCE_BASE_URL cannot be empty")
	}
	if cfg.WidgetHost == "" {
		return Config{}, fmt.Errorf("WIDGET_HOST cannot be empty")
	}
	if cfg.ArchiveDBPath == "" {
		return Config{}, fmt.Errorf("ARCHIVE_DB_PATH cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseTTL(key, fallback string) (time.Duration, error) {
	ttl, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return ttl, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseAliasMap reads "alias:canonical" pairs, e.g.
// "galan:alejandro galan,bela:fernando belasteguin".
func parseAliasMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid alias item %q, expected alias:canonical", item)
		}

		alias := strings.TrimSpace(segments[0])
		canonical := strings.TrimSpace(segments[1])
		if alias == "" || canonical == "" {
			return nil, fmt.Errorf("empty side in alias item %q", item)
		}
		out[alias] = canonical
	}
	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
