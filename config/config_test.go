package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSecret = "315742e55f9228cea7c3d52418bda5e3"

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", goodSecret)
	t.Setenv("SQLITE_DB", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_MODE", "")
	t.Setenv("POSTS_SOURCE", "")
	t.Setenv("DEBUG", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "site.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModePlaceholder, cfg.AuthMode)
	assert.Equal(t, PostsSourceStatic, cfg.PostsSource)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestFromEnv_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", goodSecret)
	t.Setenv("AUTH_MODE", "STORE")
	t.Setenv("POSTS_SOURCE", "db")
	t.Setenv("DEBUG", "true")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, AuthModeStore, cfg.AuthMode)
	assert.Equal(t, PostsSourceDB, cfg.PostsSource)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestFromEnv_UnknownAuthMode(t *testing.T) {
	t.Setenv("SECRET_KEY", goodSecret)
	t.Setenv("AUTH_MODE", "ldap")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidateSecret(t *testing.T) {
	tests := []struct {
		secret string
		ok     bool
	}{
		{"", false},
		{"short", false},
		{"very hard string", false},
		{"changeme12345678", false},
		{goodSecret, true},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			err := ValidateSecret(tt.secret)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsesPostgres(t *testing.T) {
	assert.True(t, Config{DatabaseURL: "postgres://u:p@localhost/db"}.UsesPostgres())
	assert.True(t, Config{DatabaseURL: "postgresql://localhost/db"}.UsesPostgres())
	assert.False(t, Config{DatabaseURL: ""}.UsesPostgres())
}
