package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, DefaultMaxSlotsPerStudent, cfg.Scheduler.MaxSlotsPerStudent)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.CacheTTL)
	assert.False(t, cfg.Scheduler.CacheEnabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperFallbacks(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SCHEDULER_MAX_SLOTS_PER_STUDENT", 0)
	v.Set("SCHEDULER_CACHE_TTL", "soon")
	v.Set("CORS_ALLOWED_ORIGINS", " https://a.test, ,https://b.test ")

	cfg := fromViper(v)
	assert.Equal(t, DefaultMaxSlotsPerStudent, cfg.Scheduler.MaxSlotsPerStudent)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.CacheTTL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULER_MAX_SLOTS_PER_STUDENT", "1")
	t.Setenv("ENABLE_SCHEDULE_CACHE", "true")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1, cfg.Scheduler.MaxSlotsPerStudent)
	assert.True(t, cfg.Scheduler.CacheEnabled)
}

func TestFromViperMaxSlotsNeverExceedsTwo(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SCHEDULER_MAX_SLOTS_PER_STUDENT", 3)

	cfg := fromViper(v)
	assert.Equal(t, DefaultMaxSlotsPerStudent, cfg.Scheduler.MaxSlotsPerStudent)
}
