package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Database    DatabaseConfig    `yaml:"database"`
	Push        PushConfig        `yaml:"push"`
	WorkerPool  WorkerPoolConfig  `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the report delivery worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys used to notify administrators about new reports.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// MaintenanceConfig controls the background expiry and monthly report jobs.
type MaintenanceConfig struct {
	Enabled             bool           `yaml:"enabled"`
	IntervalSeconds     int            `yaml:"interval_seconds"`
	Interval            time.Duration  `yaml:"-"`
	DailyWindowMinutes  int            `yaml:"daily_window_minutes"`
	DailyWindow         time.Duration  `yaml:"-"`
	Timezone            string         `yaml:"timezone"`
	Location            *time.Location `yaml:"-"`
	StoreTimeoutSeconds int            `yaml:"store_timeout_seconds"`
	StoreTimeout        time.Duration  `yaml:"-"`
	ReportsDir          string         `yaml:"reports_dir"`
	ReportKind          string         `yaml:"report_kind"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset values and derives the durations used at runtime.
func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}

	m := &cfg.Maintenance
	if m.IntervalSeconds <= 0 {
		m.IntervalSeconds = 3600
	}
	if m.DailyWindowMinutes <= 0 {
		m.DailyWindowMinutes = 60
	}
	m.Interval = time.Duration(m.IntervalSeconds) * time.Second
	m.DailyWindow = time.Duration(m.DailyWindowMinutes) * time.Minute
	// At least one wake-up must land strictly inside every daily window.
	if m.Interval >= m.DailyWindow {
		m.Interval = m.DailyWindow / 2
		log.Printf("maintenance.interval_seconds (%d) does not fit the daily window; clamping to %v", m.IntervalSeconds, m.Interval)
	}

	if m.Timezone == "" {
		m.Timezone = "Local"
	}
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return err
	}
	m.Location = loc

	if m.StoreTimeoutSeconds <= 0 {
		m.StoreTimeoutSeconds = 30
	}
	m.StoreTimeout = time.Duration(m.StoreTimeoutSeconds) * time.Second

	if m.ReportsDir == "" {
		m.ReportsDir = "reports"
	}
	if m.ReportKind == "" {
		m.ReportKind = "MonthlyReport"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	return nil
}
