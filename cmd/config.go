package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	Storage    string `envconfig:"STORAGE" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"fulfillment"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SLAMonitorSchedule    string `envconfig:"SLA_MONITOR_SCHEDULE" default:"0 */5 * * * *"`
	MonthlyReportSchedule string `envconfig:"MONTHLY_REPORT_SCHEDULE" default:"0 0 2 1 * *"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
