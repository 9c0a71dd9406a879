package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath, expands ${ENV} references and
// applies it on top of the defaults.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Parse([]byte(os.ExpandEnv(string(content))))
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content into a validated AppConfig.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}

	applyRawAppConfig(&cfg, raw)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file overrides anything.
func Default() *AppConfig {
	cfg := defaultAppConfig()
	return &cfg
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		Timezone: defaultTimezone,
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		AI: AIConfig{
			Timeout:         defaultAITimeout,
			MaxOutputTokens: defaultAIMaxTokens,
		},
		RateLimit: RateLimitConfig{
			Backend:   BackendMemory,
			Endpoints: defaultRateLimitRules(),
		},
		Cache: CacheConfig{
			Backend:       defaultCacheBackend,
			SQLitePath:    defaultCacheSQLitePath,
			AudioTTL:      defaultAudioTTL,
			DailyTTL:      defaultDailyTTL,
			SweepInterval: defaultSweepInterval,
		},
		Speech: SpeechConfig{
			Model:        defaultSpeechModel,
			DefaultVoice: defaultSpeechVoice,
			Timeout:      defaultSpeechTimeout,
		},
		Storage: StorageConfig{
			Backend:       defaultStorageBackend,
			LocalDir:      defaultStorageLocalDir,
			PublicBaseURL: defaultStoragePublic,
		},
	}
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.RedisURL = cfg.Redis.URLValue()
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	cfg.Env = normalizeEnv(cfg.Env)

	for _, v := range []string{raw.Timezone, raw.TimeZone, raw.TZ} {
		if v = strings.TrimSpace(v); v != "" {
			cfg.Timezone = v
		}
	}

	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if len(raw.CORSAllowedOrigins) > 0 {
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}

	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.JWTSecretLegacy); v != "" && cfg.JWTSecret == "" {
		cfg.JWTSecret = v
	}

	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)
	cfg.RedisURL = cfg.Redis.URLValue()

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Data); v != "" {
		cfg.Paths.Data = v
	}

	cfg.AI = applyRawAIConfig(cfg.AI, raw.AI)
	cfg.RateLimit = applyRawRateLimitConfig(cfg.RateLimit, raw.RateLimit)
	cfg.Cache = applyCacheConfig(cfg.Cache, raw.Cache)
	cfg.Speech = applySpeechConfig(cfg.Speech, raw.Speech)
	cfg.Storage = applyStorageConfig(cfg.Storage, raw.Storage)
	cfg.Moderation = ModerationConfig{
		ForbiddenTopics: normalizeKeywords(raw.Moderation.ForbiddenTopics),
		WarningPhrases:  normalizeKeywords(raw.Moderation.WarningPhrases),
	}
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	cfg := current

	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(raw.RedisHost); v != "" {
		cfg.Host = v
	}
	if raw.Redis.Port != 0 {
		cfg.Port = raw.Redis.Port
	}
	if raw.RedisPort != 0 {
		cfg.Port = raw.RedisPort
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.RedisPassword); v != "" {
		cfg.Password = v
	}
	if raw.Redis.DB != nil {
		cfg.DB = *raw.Redis.DB
	}
	if raw.RedisDB != nil {
		cfg.DB = *raw.RedisDB
	}
	if raw.Redis.TLS != nil {
		cfg.TLS = *raw.Redis.TLS
	}

	return normalizeRedisConfig(cfg)
}

func applyRawAIConfig(current AIConfig, raw rawAIConfig) AIConfig {
	cfg := current
	if raw.Timeout > 0 {
		cfg.Timeout = raw.Timeout
	}
	if raw.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = raw.MaxOutputTokens
	}
	if len(raw.Providers) == 0 {
		return cfg
	}

	cfg.Providers = make([]AIProvider, 0, len(raw.Providers))
	for i, p := range raw.Providers {
		provider := AIProvider{
			ID:           strings.TrimSpace(p.ID),
			Name:         strings.TrimSpace(p.Name),
			Type:         strings.TrimSpace(p.Type),
			APIKey:       strings.TrimSpace(p.APIKey),
			Endpoint:     strings.TrimSpace(p.Endpoint),
			DefaultModel: strings.TrimSpace(p.DefaultModel),
			Enabled:      true,
		}
		if provider.DefaultModel == "" {
			provider.DefaultModel = strings.TrimSpace(p.Model)
		}
		if p.Enabled != nil {
			provider.Enabled = *p.Enabled
		}
		switch {
		case p.RequestsPerMinute > 0:
			provider.RequestsPerMinute = p.RequestsPerMinute
		case p.RPM > 0:
			provider.RequestsPerMinute = p.RPM
		}
		if provider.ID == "" {
			provider.ID = fmt.Sprintf("provider-%d", i+1)
		}
		if provider.Name == "" {
			provider.Name = provider.ID
		}
		cfg.Providers = append(cfg.Providers, provider)
	}
	return cfg
}

func applyRawRateLimitConfig(current RateLimitConfig, raw rawRateLimitConfig) RateLimitConfig {
	cfg := current
	if v := strings.ToLower(strings.TrimSpace(raw.Backend)); v != "" {
		cfg.Backend = v
	}
	cfg.FailClosed = raw.FailClosed

	rules := make(map[string]RateLimitRule, len(cfg.Endpoints)+len(raw.Endpoints))
	for name, rule := range cfg.Endpoints {
		rules[name] = rule
	}
	for name, rule := range raw.Endpoints {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		base := rules[key]
		if rule.Window > 0 {
			base.Window = rule.Window
		}
		if rule.Max != 0 {
			base.Max = rule.Max
		}
		rules[key] = base
	}
	cfg.Endpoints = rules
	return cfg
}

func applyCacheConfig(current, raw CacheConfig) CacheConfig {
	cfg := current
	if v := strings.ToLower(strings.TrimSpace(raw.Backend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(raw.SQLitePath); v != "" {
		cfg.SQLitePath = v
	}
	if raw.AudioTTL > 0 {
		cfg.AudioTTL = raw.AudioTTL
	}
	if raw.DailyTTL > 0 {
		cfg.DailyTTL = raw.DailyTTL
	}
	if raw.SweepInterval > 0 {
		cfg.SweepInterval = raw.SweepInterval
	}
	return cfg
}

func applySpeechConfig(current, raw SpeechConfig) SpeechConfig {
	cfg := current
	cfg.Provider = strings.ToLower(strings.TrimSpace(raw.Provider))
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.Endpoint = strings.TrimSpace(raw.Endpoint)
	if v := strings.TrimSpace(raw.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.DefaultVoice)); v != "" {
		cfg.DefaultVoice = v
	}
	if raw.Timeout > 0 {
		cfg.Timeout = raw.Timeout
	}
	return cfg
}

func applyStorageConfig(current, raw StorageConfig) StorageConfig {
	cfg := current
	if v := strings.ToLower(strings.TrimSpace(raw.Backend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(raw.LocalDir); v != "" {
		cfg.LocalDir = v
	}
	if v := strings.TrimSpace(raw.PublicBaseURL); v != "" {
		cfg.PublicBaseURL = strings.TrimRight(v, "/")
	}
	cfg.S3 = normalizeS3Options(raw.S3)
	return cfg
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if _, err := ParseTimezone(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	switch c.RateLimit.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid rate_limit.backend %q, expected memory or redis", c.RateLimit.Backend)
	}
	for name, rule := range c.RateLimit.Endpoints {
		if rule.Window <= 0 || rule.Max < 1 {
			return fmt.Errorf("invalid rate_limit.endpoints.%s: window and max must be positive", name)
		}
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("invalid cache.backend %q, expected memory, redis or sqlite", c.Cache.Backend)
	}
	switch c.Speech.Provider {
	case "", "openai":
	default:
		return fmt.Errorf("invalid speech.provider %q", c.Speech.Provider)
	}
	switch c.Storage.Backend {
	case "local":
	case "s3":
		s3 := c.Storage.S3
		if s3.Bucket == "" || s3.Region == "" || s3.AccessKeyID == "" || s3.SecretAccessKey == "" {
			return fmt.Errorf("incomplete storage.s3 config: bucket/region/access_key_id/secret_access_key are required")
		}
	default:
		return fmt.Errorf("invalid storage.backend %q, expected local or s3", c.Storage.Backend)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Location returns the timezone used to decide the calendar day.
func (c *AppConfig) Location() *time.Location {
	loc, err := ParseTimezone(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *AppConfig) LogDir() string {
	if c.Paths.Logs == "" {
		return ""
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// DataPath resolves a data-relative path such as the SQLite cache file.
func (c *AppConfig) DataPath(raw string) string {
	target := strings.TrimSpace(raw)
	if target != "" && !filepath.IsAbs(target) && c.Paths.Data != "" {
		target = filepath.Join(c.Paths.Data, target)
	}
	return ResolveRuntimePath(target, c.Paths.Data)
}

// RateLimitRule returns the rule for endpoint, falling back to the default rule.
func (c *AppConfig) RateLimitRule(endpoint string) RateLimitRule {
	if rule, ok := c.RateLimit.Endpoints[endpoint]; ok {
		return rule
	}
	return c.RateLimit.Endpoints[EndpointDefault]
}

// EnabledProviders returns the enabled AI providers in configured order.
func (c *AppConfig) EnabledProviders() []AIProvider {
	out := make([]AIProvider, 0, len(c.AI.Providers))
	for _, p := range c.AI.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// ParseTimezone accepts an IANA zone name or a fixed "+hh:mm" offset.
func ParseTimezone(raw string) (*time.Location, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" {
		return time.Local, nil
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}
	if len(tz) == 6 && (tz[0] == '+' || tz[0] == '-') && tz[3] == ':' {
		h, errH := strconv.Atoi(tz[1:3])
		m, errM := strconv.Atoi(tz[4:6])
		if errH == nil && errM == nil && h <= 23 && m <= 59 {
			offset := h*3600 + m*60
			if tz[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(tz, offset), nil
		}
	}
	return nil, fmt.Errorf("expect IANA zone (e.g. America/Mexico_City) or UTC offset (e.g. -06:00)")
}
