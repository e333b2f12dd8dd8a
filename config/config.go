package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration loaded from environment variables.
type Env struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"datafeed"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	VatsimDataURL string `env:"VATSIM_DATA_URL" envDefault:"https://data.vatsim.net/v3/vatsim-data.json"`
	MetarURL      string `env:"METAR_URL" envDefault:"https://metar.vatsim.net/"`
	AirepURL      string `env:"AIREP_URL" envDefault:"https://www.aviationweather.gov/cgi-bin/json/AirepJSON.php"`

	StatsAPIURL string `env:"STATS_API_URL"`
	StatsAPIKey string `env:"STATS_API_KEY"`

	RegionFile string `env:"REGION_FILE" envDefault:"region.json"`

	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"15s"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL" envDefault:"2m"`
	PirepRetention time.Duration `env:"PIREP_RETENTION" envDefault:"2h"`
}

// Parse loads configuration from environment variables.
func Parse() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PollInterval <= 0 || cfg.ReportInterval <= 0 {
		return cfg, fmt.Errorf("poll intervals must be positive")
	}
	return cfg, nil
}
