package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "gemini")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "eventhive", cfg.MongoDBName)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, "simulated", cfg.PaymentProvider)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.HasSupabase())
}

func TestLoadConfigRequired(t *testing.T) {
	t.Run("mongo uri", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MONGODB_URI", "")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "MONGODB_URI")
	})

	t.Run("postgres dsn", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE", "postgres")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "DATABASE_DSN")
	})

	t.Run("memory store needs no database", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE", "memory")
		t.Setenv("MONGODB_URI", "")
		_, err := LoadConfig()
		require.NoError(t, err)
	})

	t.Run("cloudinary", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CLOUDINARY_API_SECRET", "")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "CLOUDINARY")
	})

	t.Run("gemini", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GEMINI_API_KEY", "")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "GEMINI_API_KEY")
	})

	t.Run("gateway url", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAYMENT_PROVIDER", "gateway")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "PAYMENT_GATEWAY_URL")
	})

	t.Run("unknown store", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE", "cassandra")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "unsupported STORE")
	})
}

func TestLoadConfigFile(t *testing.T) {
	setRequired(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: \"9090\"\nallow_origins: \"https://a.example, https://b.example\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("ALLOW_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}
