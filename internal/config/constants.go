package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2480
	defaultEnv        = "development"
	defaultTimezone   = "UTC"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultAITimeout       = 20 * time.Second
	defaultAIMaxTokens     = 600
	defaultCacheBackend    = BackendMemory
	defaultCacheSQLitePath = "data/cache.db"
	defaultAudioTTL        = 24 * time.Hour
	defaultDailyTTL        = 48 * time.Hour
	defaultSweepInterval   = 10 * time.Minute
	defaultSpeechModel     = "tts-1"
	defaultSpeechVoice     = "nova"
	defaultSpeechTimeout   = 30 * time.Second
	defaultStorageBackend  = "local"
	defaultStorageLocalDir = "data/audio"
	defaultStoragePublic   = "/audio"
)

// Store backends shared by the rate limiter and the response cache.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Rate limit endpoint names.
const (
	EndpointPrayer       = "prayer"
	EndpointGuidance     = "guidance"
	EndpointDailyMessage = "daily-message"
	EndpointSpeech       = "speech"
	EndpointDefault      = "default"
)

func defaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		EndpointPrayer:       {Window: time.Minute, Max: 10},
		EndpointGuidance:     {Window: time.Minute, Max: 20},
		EndpointDailyMessage: {Window: time.Minute, Max: 30},
		EndpointSpeech:       {Window: time.Minute, Max: 5},
		EndpointDefault:      {Window: time.Minute, Max: 60},
	}
}
