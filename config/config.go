package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	Backend       BackendConfig       `yaml:"backend"`
	Sync          SyncConfig          `yaml:"sync"`
	Competition   CompetitionConfig   `yaml:"competition"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// PostgresConfig holds Postgres configuration. An empty DSN runs without a database.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// BackendConfig points at the competition REST backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// SyncConfig controls the periodic snapshot refresh.
type SyncConfig struct {
	Interval time.Duration `yaml:"interval"`
	// Scheduler is "river", "gocron" or empty to pick river when a database is configured.
	Scheduler string `yaml:"scheduler"`
}

// CompetitionConfig holds the event rules.
type CompetitionConfig struct {
	Timezone         string                               `yaml:"timezone"`
	LeaderboardLimit int                                  `yaml:"leaderboard_limit"`
	GradeTable       competitiondomain.CategoryGradeTable `yaml:"grade_table"`
	StatsGradeTable  competitiondomain.CategoryGradeTable `yaml:"stats_grade_table"`
	Schedule         competitiondomain.Schedule           `yaml:"schedule"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, falling back to the
// environment when the file is missing. A .env file is loaded first if present.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Backend.BaseURL = os.Getenv("BACKEND_URL")
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_URL environment variable not set")
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.RateLimit = f
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateBurst = n
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.DefaultTTL = d
		}
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("BACKEND_TOKEN"); v != "" {
		cfg.Backend.Token = v
	}
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = d
		}
	}
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sync.Interval = d
		}
	}
	if v := os.Getenv("SYNC_SCHEDULER"); v != "" {
		cfg.Sync.Scheduler = v
	}
	if v := os.Getenv("COMPETITION_TIMEZONE"); v != "" {
		cfg.Competition.Timezone = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 10
	}
	if cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = 20
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 12 * time.Hour
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 15 * time.Second
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = time.Minute
	}
	if cfg.Competition.LeaderboardLimit == 0 {
		cfg.Competition.LeaderboardLimit = competitiondomain.DefaultLeaderboardLimit
	}
	if cfg.Competition.GradeTable == nil {
		cfg.Competition.GradeTable = competitiondomain.DefaultGradeTable()
	}
	if cfg.Competition.StatsGradeTable == nil {
		cfg.Competition.StatsGradeTable = competitiondomain.DefaultStatsGradeTable()
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

// Validate reports configuration that cannot be served.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	switch c.Sync.Scheduler {
	case "", "river", "gocron":
	default:
		return fmt.Errorf("unknown sync scheduler %q", c.Sync.Scheduler)
	}
	if c.Sync.Scheduler == "river" && c.Postgres.DSN == "" {
		return fmt.Errorf("sync scheduler river requires postgres.dsn")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the competition timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Competition.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Competition.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid competition timezone %q: %w", c.Competition.Timezone, err)
	}
	return loc, nil
}

// Schedule returns the configured windows or the default event schedule.
func (c *Config) Schedule() competitiondomain.Schedule {
	if len(c.Competition.Schedule) > 0 {
		return c.Competition.Schedule
	}
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return competitiondomain.DefaultSchedule(loc)
}

// SchedulerKind resolves the sync scheduler, preferring river when a database is configured.
func (c *Config) SchedulerKind() string {
	if c.Sync.Scheduler != "" {
		return c.Sync.Scheduler
	}
	if c.Postgres.DSN != "" {
		return "river"
	}
	return "gocron"
}

// ToObsConfig maps the observability section.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		Environment: appCfg.Observability.Environment,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
