package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_TTL", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "menu")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("PORT", "9000")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "9000", cfg.Port)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DSN(), "dbname=menu")
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	_, err := Load(viper.New())
	assert.Error(t, err)
}

func TestDSN_PrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@h/db", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@h/db", cfg.DSN())
}

func TestNewLogger_Level(t *testing.T) {
	l := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.True(t, l.Enabled(t.Context(), slog.LevelDebug))

	l = NewLogger(&Config{LogLevel: "bogus"})
	assert.False(t, l.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, l.Enabled(t.Context(), slog.LevelInfo))
}
