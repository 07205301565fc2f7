package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

const (
	SettingsStoreMemory   = "memory"
	SettingsStoreFile     = "file"
	SettingsStorePostgres = "postgres"

	// CatalogSourceMemory serves the built-in demo player pool.
	CatalogSourceMemory = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	MetricsEnabled             bool
	LogLevel                   logging.Level
	CatalogSource              string
	CatalogTimeout             time.Duration
	CatalogCacheTTL            time.Duration
	SettingsStore              string
	SettingsFile               string
	DBURL                      string
	DBDisablePreparedBinary    bool
	DraftAutoPickDelay         time.Duration
	DraftExplainWorkers        int
	DraftSessionTTL            time.Duration
	ExplanationCacheTTL        time.Duration
	GeminiAPIKey               string
	GeminiBaseURL              string
	GeminiModel                string
	GeminiTimeout              time.Duration
	GeminiMinInterval          time.Duration
	GeminiBurst                int
	GeminiCircuitEnabled       bool
	GeminiCircuitFailureCount  int
	GeminiCircuitOpenTimeout   time.Duration
	GeminiCircuitHalfOpenMax   int
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the process environment. A .env file in the working directory
// is applied first when present; variables already set win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

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

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}
	if shutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be > 0")
	}

	catalogSource := strings.TrimSpace(getEnv("CATALOG_SOURCE", CatalogSourceMemory))
	catalogTimeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_TIMEOUT: %w", err)
	}
	if catalogTimeout <= 0 {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT must be > 0")
	}
	catalogCacheTTL, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_CACHE_TTL: %w", err)
	}
	if catalogCacheTTL < 0 {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL must be >= 0")
	}

	settingsStore, err := parseSettingsStore(getEnv("SETTINGS_STORE", SettingsStoreMemory))
	if err != nil {
		return Config{}, err
	}
	settingsFile := strings.TrimSpace(getEnv("SETTINGS_FILE", "data/league.yaml"))
	if settingsStore == SettingsStoreFile && settingsFile == "" {
		return Config{}, fmt.Errorf("SETTINGS_FILE is required when SETTINGS_STORE=file")
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if settingsStore == SettingsStorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when SETTINGS_STORE=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	autoPickDelay, err := time.ParseDuration(getEnv("DRAFT_AUTOPICK_DELAY", "300ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_AUTOPICK_DELAY: %w", err)
	}
	if autoPickDelay <= 0 {
		return Config{}, fmt.Errorf("DRAFT_AUTOPICK_DELAY must be > 0")
	}
	explainWorkers, err := getEnvAsInt("DRAFT_EXPLAIN_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_EXPLAIN_WORKERS: %w", err)
	}
	if explainWorkers < 1 {
		return Config{}, fmt.Errorf("DRAFT_EXPLAIN_WORKERS must be >= 1")
	}
	sessionTTL, err := time.ParseDuration(getEnv("DRAFT_SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_SESSION_TTL: %w", err)
	}
	if sessionTTL <= 0 {
		return Config{}, fmt.Errorf("DRAFT_SESSION_TTL must be > 0")
	}
	explanationCacheTTL, err := time.ParseDuration(getEnv("EXPLANATION_CACHE_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXPLANATION_CACHE_TTL: %w", err)
	}

	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}
	if geminiTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_TIMEOUT must be > 0")
	}
	geminiMinInterval, err := time.ParseDuration(getEnv("GEMINI_MIN_INTERVAL", "250ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_MIN_INTERVAL: %w", err)
	}
	geminiBurst, err := getEnvAsInt("GEMINI_BURST", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_BURST: %w", err)
	}
	if geminiBurst < 1 {
		return Config{}, fmt.Errorf("GEMINI_BURST must be >= 1")
	}
	geminiCircuitEnabled, err := strconv.ParseBool(getEnv("GEMINI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_ENABLED: %w", err)
	}
	geminiCircuitFailureCount, err := getEnvAsInt("GEMINI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if geminiCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	geminiCircuitOpenTimeout, err := time.ParseDuration(getEnv("GEMINI_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if geminiCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	geminiCircuitHalfOpenMax, err := getEnvAsInt("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if geminiCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "draft-companion-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		MetricsEnabled:             metricsEnabled,
		LogLevel:                   logLevel,
		CatalogSource:              catalogSource,
		CatalogTimeout:             catalogTimeout,
		CatalogCacheTTL:            catalogCacheTTL,
		SettingsStore:              settingsStore,
		SettingsFile:               settingsFile,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		DraftAutoPickDelay:         autoPickDelay,
		DraftExplainWorkers:        explainWorkers,
		DraftSessionTTL:            sessionTTL,
		ExplanationCacheTTL:        explanationCacheTTL,
		GeminiAPIKey:               strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiBaseURL:              strings.TrimSpace(getEnv("GEMINI_BASE_URL", "")),
		GeminiModel:                strings.TrimSpace(getEnv("GEMINI_MODEL", "")),
		GeminiTimeout:              geminiTimeout,
		GeminiMinInterval:          geminiMinInterval,
		GeminiBurst:                geminiBurst,
		GeminiCircuitEnabled:       geminiCircuitEnabled,
		GeminiCircuitFailureCount:  geminiCircuitFailureCount,
		GeminiCircuitOpenTimeout:   geminiCircuitOpenTimeout,
		GeminiCircuitHalfOpenMax:   geminiCircuitHalfOpenMax,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// GeminiConfigured reports whether the explanation provider has credentials.
func (c Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseSettingsStore(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case SettingsStoreMemory, SettingsStoreFile, SettingsStorePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid SETTINGS_STORE %q: valid values are %s, %s, %s", v, SettingsStoreMemory, SettingsStoreFile, SettingsStorePostgres)
	}
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
