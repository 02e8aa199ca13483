package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for one pipeline run.
type Config struct {
	AppEnv         string `validate:"required,oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`

	WOMBaseURL             string        `validate:"required,url"`
	WOMCompetitionID       int64         `validate:"required,gt=0"`
	WOMTimeout             time.Duration `validate:"gt=0"`
	WOMMaxRetries          int           `validate:"gte=0"`
	WOMRateLimitRequests   int           `validate:"gt=0"`
	WOMRateLimitWindow     time.Duration `validate:"gt=0"`
	WOMCircuitEnabled      bool
	WOMCircuitFailureCount int           `validate:"gte=1"`
	WOMCircuitOpenTimeout  time.Duration `validate:"gt=0"`

	SheetBaseURL string        `validate:"required,url"`
	SheetID      string        `validate:"required"`
	SheetName    string        `validate:"required"`
	SheetAPIKey  string        `validate:"required"`
	SheetTimeout time.Duration `validate:"gt=0"`

	TeamOne string `validate:"required,nefield=TeamTwo"`
	TeamTwo string `validate:"required"`

	DataDir     string `validate:"required"`
	HuntEdition int    `validate:"required,gt=0"`

	TracingEnabled bool
	LogLevel       logging.Level
}

// StorePath is the canonical store file for the configured hunt edition.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, fmt.Sprintf("hunt_%d_data.json", c.HuntEdition))
}

func Load() (Config, error) {
	womCompetitionID, err := getEnvAsInt64("WOM_COMPETITION_ID", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_COMPETITION_ID: %w", err)
	}

	womTimeout, err := time.ParseDuration(getEnv("WOM_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_TIMEOUT: %w", err)
	}

	womMaxRetries, err := getEnvAsInt("WOM_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_MAX_RETRIES: %w", err)
	}

	// 20 req/60s is the provider's public quota; the limiter turns it into
	// a 3s gap between consecutive requests.
	womRateLimitRequests, err := getEnvAsInt("WOM_RATE_LIMIT_REQUESTS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_RATE_LIMIT_REQUESTS: %w", err)
	}

	womRateLimitWindow, err := time.ParseDuration(getEnv("WOM_RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_RATE_LIMIT_WINDOW: %w", err)
	}

	womCircuitEnabled, err := strconv.ParseBool(getEnv("WOM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_CIRCUIT_ENABLED: %w", err)
	}

	womCircuitFailureCount, err := getEnvAsInt("WOM_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_CIRCUIT_FAILURE_COUNT: %w", err)
	}

	womCircuitOpenTimeout, err := time.ParseDuration(getEnv("WOM_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WOM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	sheetTimeout, err := time.ParseDuration(getEnv("SHEET_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHEET_TIMEOUT: %w", err)
	}

	huntEdition, err := getEnvAsInt("HUNT_EDITION", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse HUNT_EDITION: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnv("TRACING_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TRACING_ENABLED: %w", err)
	}

	cfg := Config{
		AppEnv:         strings.ToLower(getEnv("APP_ENV", EnvDev)),
		ServiceName:    getEnv("APP_SERVICE_NAME", "hunt-stats"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),

		WOMBaseURL:             strings.TrimSpace(getEnv("WOM_BASE_URL", "https://api.wiseoldman.net/v2")),
		WOMCompetitionID:       womCompetitionID,
		WOMTimeout:             womTimeout,
		WOMMaxRetries:          womMaxRetries,
		WOMRateLimitRequests:   womRateLimitRequests,
		WOMRateLimitWindow:     womRateLimitWindow,
		WOMCircuitEnabled:      womCircuitEnabled,
		WOMCircuitFailureCount: womCircuitFailureCount,
		WOMCircuitOpenTimeout:  womCircuitOpenTimeout,

		SheetBaseURL: strings.TrimSpace(getEnv("SHEET_BASE_URL", "https://sheets.googleapis.com/v4")),
		SheetID:      strings.TrimSpace(getEnv("SHEET_ID", "")),
		SheetName:    strings.TrimSpace(getEnv("SHEET_NAME", "Drops")),
		SheetAPIKey:  strings.TrimSpace(getEnv("SHEET_API_KEY", "")),
		SheetTimeout: sheetTimeout,

		TeamOne: strings.TrimSpace(getEnv("TEAM_ONE", "Team Red")),
		TeamTwo: strings.TrimSpace(getEnv("TEAM_TWO", "Team Gold")),

		DataDir:     strings.TrimSpace(getEnv("DATA_DIR", "data")),
		HuntEdition: huntEdition,

		TracingEnabled: tracingEnabled,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, describeValidation(err)
	}

	return cfg, nil
}

// describeValidation converts validator's field errors into the env-var
// vocabulary operators actually set.
func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fmt.Sprintf("%s (%s)", envNameFor(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(names, ", "))
}

var envNames = map[string]string{
	"AppEnv":                 "APP_ENV",
	"ServiceName":            "APP_SERVICE_NAME",
	"ServiceVersion":         "APP_SERVICE_VERSION",
	"WOMBaseURL":             "WOM_BASE_URL",
	"WOMCompetitionID":       "WOM_COMPETITION_ID",
	"WOMTimeout":             "WOM_TIMEOUT",
	"WOMMaxRetries":          "WOM_MAX_RETRIES",
	"WOMRateLimitRequests":   "WOM_RATE_LIMIT_REQUESTS",
	"WOMRateLimitWindow":     "WOM_RATE_LIMIT_WINDOW",
	"WOMCircuitFailureCount": "WOM_CIRCUIT_FAILURE_COUNT",
	"WOMCircuitOpenTimeout":  "WOM_CIRCUIT_OPEN_TIMEOUT",
	"SheetBaseURL":           "SHEET_BASE_URL",
	"SheetID":                "SHEET_ID",
	"SheetName":              "SHEET_NAME",
	"SheetAPIKey":            "SHEET_API_KEY",
	"SheetTimeout":           "SHEET_TIMEOUT",
	"TeamOne":                "TEAM_ONE",
	"TeamTwo":                "TEAM_TWO",
	"DataDir":                "DATA_DIR",
	"HuntEdition":            "HUNT_EDITION",
}

func envNameFor(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
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

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}
