package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, BackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.AudioTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, RateLimitRule{Window: time.Minute, Max: 10}, cfg.RateLimitRule(EndpointPrayer))
	assert.Empty(t, cfg.Speech.Provider)
}

func TestParseOverridesAndAliases(t *testing.T) {
	cfg, err := Parse([]byte(`
port: 8080
node_env: Production
tz: America/New_York
cors_allowed_origins: [" *.example.org ", ""]
jwtsecret: legacy-secret
redis_host: cache.internal
redis_db: 3
ai:
  timeout: 5s
  providers:
    - id: primary
      type: openai
      api_key: sk-1
      model: gpt-4o-mini
      rpm: 30
    - type: anthropic
      api_key: sk-2
      enabled: false
rate_limit:
  backend: Redis
  endpoints:
    prayer: { max: 3 }
    custom: { window: 30s, max: 2 }
cache:
  backend: sqlite
  audio_ttl: 2h
speech:
  provider: OpenAI
  default_voice: Alloy
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "America/New_York", cfg.Location().String())
	assert.Equal(t, []string{"*.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, "legacy-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://cache.internal:6379/3", cfg.RedisURL)

	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	require.Len(t, cfg.AI.Providers, 2)
	assert.Equal(t, "primary", cfg.AI.Providers[0].ID)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Providers[0].DefaultModel)
	assert.Equal(t, 30, cfg.AI.Providers[0].RequestsPerMinute)
	assert.Zero(t, cfg.AI.Providers[1].RequestsPerMinute)
	assert.Equal(t, "provider-2", cfg.AI.Providers[1].ID)
	enabled := cfg.EnabledProviders()
	require.Len(t, enabled, 1)
	assert.Equal(t, "primary", enabled[0].ID)

	assert.Equal(t, BackendRedis, cfg.RateLimit.Backend)
	assert.Equal(t, RateLimitRule{Window: time.Minute, Max: 3}, cfg.RateLimitRule(EndpointPrayer))
	assert.Equal(t, RateLimitRule{Window: 30 * time.Second, Max: 2}, cfg.RateLimitRule("custom"))
	assert.Equal(t, cfg.RateLimitRule(EndpointDefault), cfg.RateLimitRule("unknown"))

	assert.Equal(t, BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Cache.AudioTTL)
	assert.Equal(t, "openai", cfg.Speech.Provider)
	assert.Equal(t, "alloy", cfg.Speech.DefaultVoice)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":          "port: 70000",
		"timezone":      "timezone: Mars/Olympus",
		"rate backend":  "rate_limit: { backend: etcd }",
		"cache backend": "cache: { backend: disk }",
		"speech":        "speech: { provider: polly }",
		"storage":       "storage: { backend: s3 }",
		"unknown field": "colour: blue",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("GRACEPATH_TEST_KEY", "sk-from-env")
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  providers:
    - type: openai
      api_key: ${GRACEPATH_TEST_KEY}
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "sk-from-env", cfg.AI.Providers[0].APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestDataPath(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "cache.db")
	assert.Equal(t, abs, cfg.DataPath(abs))

	cfg.Paths.Data = t.TempDir()
	assert.Equal(t, filepath.Join(cfg.Paths.Data, "cache.db"), cfg.DataPath("cache.db"))
}

func TestParseTimezone(t *testing.T) {
	loc, err := ParseTimezone("America/Mexico_City")
	require.NoError(t, err)
	assert.Equal(t, "America/Mexico_City", loc.String())

	loc, err = ParseTimezone("-06:00")
	require.NoError(t, err)
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -6*3600, offset)

	_, err = ParseTimezone("Mars/Olympus")
	assert.Error(t, err)

	cfg, err := Parse([]byte("timezone: \"+05:30\"\n"))
	require.NoError(t, err)
	_, offset = time.Date(2026, 1, 1, 0, 0, 0, 0, cfg.Location()).Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}
