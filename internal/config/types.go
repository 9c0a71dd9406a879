package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	Timezone       string             `yaml:"timezone"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	JWTSecret      string             `yaml:"jwt_secret"`
	RedisURL       string             `yaml:"redis_url"`
	Redis          RedisRuntimeConfig `yaml:"redis"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	AI             AIConfig           `yaml:"ai"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	Cache          CacheConfig        `yaml:"cache"`
	Speech         SpeechConfig       `yaml:"speech"`
	Storage        StorageConfig      `yaml:"storage"`
	Moderation     ModerationConfig   `yaml:"moderation"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

// AIConfig lists the generative-text providers in fallback order.
type AIConfig struct {
	Providers       []AIProvider  `yaml:"providers"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // openai | openai-compatible | anthropic | openrouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
	// RequestsPerMinute throttles calls to this provider. Zero is unlimited.
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type RateLimitConfig struct {
	Backend    string                   `yaml:"backend"` // memory | redis
	FailClosed bool                     `yaml:"fail_closed"`
	Endpoints  map[string]RateLimitRule `yaml:"endpoints"`
}

type RateLimitRule struct {
	Window time.Duration `yaml:"window"`
	Max    int           `yaml:"max"`
}

type CacheConfig struct {
	Backend       string        `yaml:"backend"` // memory | redis | sqlite
	SQLitePath    string        `yaml:"sqlite_path"`
	AudioTTL      time.Duration `yaml:"audio_ttl"`
	DailyTTL      time.Duration `yaml:"daily_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// SpeechConfig configures the text-to-speech backend. An empty provider
// disables server-side synthesis.
type SpeechConfig struct {
	Provider     string        `yaml:"provider"` // openai | ""
	APIKey       string        `yaml:"api_key"`
	Endpoint     string        `yaml:"endpoint"`
	Model        string        `yaml:"model"`
	DefaultVoice string        `yaml:"default_voice"`
	Timeout      time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Backend       string    `yaml:"backend"` // local | s3
	LocalDir      string    `yaml:"local_dir"`
	PublicBaseURL string    `yaml:"public_base_url"`
	S3            S3Options `yaml:"s3"`
}

// ModerationConfig extends the built-in keyword lists.
type ModerationConfig struct {
	ForbiddenTopics []string `yaml:"forbidden_topics"`
	WarningPhrases  []string `yaml:"warning_phrases"`
}

type S3Options struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	Env                string             `yaml:"env"`
	NodeEnv            string             `yaml:"node_env"`
	Timezone           string             `yaml:"timezone"`
	TimeZone           string             `yaml:"time_zone"`
	TZ                 string             `yaml:"tz"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	JWTSecret          string             `yaml:"jwt_secret"`
	JWTSecretLegacy    string             `yaml:"jwtsecret"`
	RedisURL           string             `yaml:"redis_url"`
	Redis              rawRedisConfig     `yaml:"redis"`
	RedisHost          string             `yaml:"redis_host"`
	RedisPort          int                `yaml:"redis_port"`
	RedisPassword      string             `yaml:"redis_password"`
	RedisDB            *int               `yaml:"redis_db"`
	Paths              RuntimePathsConfig `yaml:"paths"`
	LogDir             string             `yaml:"log_dir"`
	AI                 rawAIConfig        `yaml:"ai"`
	RateLimit          rawRateLimitConfig `yaml:"rate_limit"`
	Cache              CacheConfig        `yaml:"cache"`
	Speech             SpeechConfig       `yaml:"speech"`
	Storage            StorageConfig      `yaml:"storage"`
	Moderation         ModerationConfig   `yaml:"moderation"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
}

type rawAIConfig struct {
	Providers       []rawAIProvider `yaml:"providers"`
	Timeout         time.Duration   `yaml:"timeout"`
	MaxOutputTokens int             `yaml:"max_output_tokens"`
}

type rawAIProvider struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Type              string `yaml:"type"`
	APIKey            string `yaml:"api_key"`
	Endpoint          string `yaml:"endpoint"`
	DefaultModel      string `yaml:"default_model"`
	Model             string `yaml:"model"`
	Enabled           *bool  `yaml:"enabled"`
	RPM               int    `yaml:"rpm"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

type rawRateLimitConfig struct {
	Backend    string                   `yaml:"backend"`
	FailClosed bool                     `yaml:"fail_closed"`
	Endpoints  map[string]RateLimitRule `yaml:"endpoints"`
}
