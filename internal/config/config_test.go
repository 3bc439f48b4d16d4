package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DSN", "host=db user=pdv dbname=pdv")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pdv.example.com")

	cfg := Load()

	require.Equal(t, "9090", cfg.HTTPPort)
	require.Equal(t, "host=db user=pdv dbname=pdv", cfg.DatabaseDSN)
	require.Equal(t, "https://pdv.example.com", cfg.CORSOrigins)
	require.Len(t, cfg.JWTSecret, 32)
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("SOME_UNSET_KEY", "")
	require.Equal(t, "fallback", getEnv("SOME_UNSET_KEY", "fallback"))
}
