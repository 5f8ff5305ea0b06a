package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
http:
  address: ":9090"
  allowed_origins: ["https://irock.example"]
backend:
  base_url: "https://api.irock.example/api"
  token: "svc-token"
jwt:
  secret: "file-secret"
  default_ttl: 2h
sync:
  interval: 30s
competition:
  timezone: "America/Mexico_City"
  leaderboard_limit: 10
  grade_table:
    kids:
      rutas: ["5.8"]
      boulders: ["V0"]
  schedule:
    - categories: [kids, principiante]
      start: 2026-03-01T09:00:00-06:00
      end: 2026-03-01T14:00:00-06:00
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://irock.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "svc-token", cfg.Backend.Token)
	assert.Equal(t, 2*time.Hour, cfg.JWT.DefaultTTL)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 10, cfg.Competition.LeaderboardLimit)
	assert.Equal(t, []string{"5.8"}, cfg.Competition.GradeTable[competitiondomain.CategoryKids].Rutas)

	schedule := cfg.Schedule()
	require.Len(t, schedule, 1)
	w, ok := schedule.WindowFor(competitiondomain.CategoryPrincipiante)
	require.True(t, ok)
	assert.Equal(t, 14, w.End.Hour())

	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout, "defaults fill unset values")
	assert.Equal(t, "gocron", cfg.SchedulerKind())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/irock?sslmode=disable")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SYNC_INTERVAL", "5m")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, "river", cfg.SchedulerKind())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Run("missing backend url", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("env only with defaults", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "http://backend:8000/api")
		t.Setenv("JWT_SECRET", "s")
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTP.Address)
		assert.Equal(t, competitiondomain.DefaultGradeTable(), cfg.Competition.GradeTable)
		assert.Equal(t, competitiondomain.DefaultStatsGradeTable(), cfg.Competition.StatsGradeTable)
		assert.Len(t, cfg.Schedule(), 3)
	})
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{
			Backend: BackendConfig{BaseURL: "http://backend"},
			JWT:     JWTConfig{Secret: "s"},
		}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "unknown scheduler", mutate: func(c *Config) { c.Sync.Scheduler = "cron" }, wantErr: true},
		{name: "river without database", mutate: func(c *Config) { c.Sync.Scheduler = "river" }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Competition.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
