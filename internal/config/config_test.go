package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_CLEANUP_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "Authorization", cfg.Auth.HeaderName)
	require.Equal(t, "Bearer", cfg.Auth.TokenPrefix)
	require.Equal(t, "X-User-Id", cfg.Auth.PrincipalResponseHeader)
	require.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	require.Contains(t, cfg.Auth.PublicPaths, "/auth/*")
	require.Equal(t, time.Hour, cfg.Auth.TokenCleanupInterval())
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_HEADER_NAME", "X-Auth")
	t.Setenv("AUTH_TOKEN_PREFIX", "Token")
	t.Setenv("AUTH_PUBLIC_PATHS", " /login , /signup,, /assets/* ")
	t.Setenv("AUTH_ADMIN_CACHE_TTL_SECONDS", "0")
	t.Setenv("AUTH_TOKEN_CLEANUP_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, "X-Auth", cfg.Auth.HeaderName)
	require.Equal(t, "Token", cfg.Auth.TokenPrefix)
	require.Equal(t, []string{"/login", "/signup", "/assets/*"}, cfg.Auth.PublicPaths)
	require.Zero(t, cfg.Auth.AdminCacheTTL())
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenCleanupInterval())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")

	_, err := Load()
	require.ErrorContains(t, err, "REDIS_DB")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{
		JWTSecret:             "x",
		HeaderName:            " ",
		TokenPrefix:           "",
		AccessTokenTTLMinutes: 0,
	}}

	err := cfg.Validate()
	require.ErrorContains(t, err, "AUTH_HEADER_NAME")
	require.ErrorContains(t, err, "AUTH_TOKEN_PREFIX")
	require.ErrorContains(t, err, "AUTH_ACCESS_TOKEN_TTL_MINUTES")
}
