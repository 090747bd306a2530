package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "@every 1m", cfg.CacheRefreshSpec)
	assert.Equal(t, 64, cfg.WSBuffer)
	assert.Equal(t, zerolog.InfoLevel, cfg.ZerologLevel())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_REFRESH_SPEC", "*/5 * * * *")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, "*/5 * * * *", cfg.CacheRefreshSpec)
	assert.Equal(t, zerolog.DebugLevel, cfg.ZerologLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad refresh spec", "CACHE_REFRESH_SPEC", "every now and then"},
		{"negative buffer", "WS_BUFFER", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
