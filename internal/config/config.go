package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/footsim/manager/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the simulation runner.
type Config struct {
	AppEnv                 string
	ServiceName            string
	LogLevel               logging.Level
	LogJSON                bool
	Seed                   int64
	Seasons                int
	Workers                int
	TeamsPerLeague         int
	SquadSize              int
	UserTeamID             string
	SnapshotPath           string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logJSON, err := strconv.ParseBool(getEnv("LOG_JSON", boolDefault(appEnv == EnvProd)))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_JSON: %w", err)
	}

	seed, err := getEnvAsInt64("SIM_SEED", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_SEED: %w", err)
	}

	seasons, err := getEnvAsInt("SIM_SEASONS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_SEASONS: %w", err)
	}
	if seasons <= 0 {
		return Config{}, fmt.Errorf("SIM_SEASONS must be > 0")
	}

	workers, err := getEnvAsInt("SIM_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_WORKERS: %w", err)
	}
	if workers <= 0 {
		return Config{}, fmt.Errorf("SIM_WORKERS must be > 0")
	}

	teamsPerLeague, err := getEnvAsInt("SIM_TEAMS_PER_LEAGUE", 18)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_TEAMS_PER_LEAGUE: %w", err)
	}
	if teamsPerLeague < 2 {
		return Config{}, fmt.Errorf("SIM_TEAMS_PER_LEAGUE must be >= 2")
	}

	squadSize, err := getEnvAsInt("SIM_SQUAD_SIZE", 18)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_SQUAD_SIZE: %w", err)
	}
	if squadSize < 11 {
		return Config{}, fmt.Errorf("SIM_SQUAD_SIZE must be >= 11")
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

	return Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("SERVICE_NAME", "seasonsim"),
		LogLevel:               parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogJSON:                logJSON,
		Seed:                   seed,
		Seasons:                seasons,
		Workers:                workers,
		TeamsPerLeague:         teamsPerLeague,
		SquadSize:              squadSize,
		UserTeamID:             strings.TrimSpace(getEnv("SIM_USER_TEAM_ID", "")),
		SnapshotPath:           strings.TrimSpace(getEnv("SIM_SNAPSHOT_PATH", "")),
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "seasonsim"),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}, nil
}

func parseAppEnv(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case EnvDev, "":
		return EnvDev, nil
	case EnvProd:
		return EnvProd, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV: %s", value)
	}
}

func parseLogLevel(value string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

func boolDefault(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
