package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "blog-images", cfg.Storage.Bucket)
	assert.Equal(t, "uuid", cfg.Upload.Naming)
	assert.Equal(t, "max-age=3600", cfg.Upload.CacheControl)
	assert.Equal(t, 1000, cfg.Slug.MaxAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_AdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " a@example.com, ,b@example.com ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Auth.AdminEmails)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("UPLOAD_NAMING", "random")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("UPLOAD_NAMING", "timestamp")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestValidate_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "pw")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	t.Setenv("STORE_DRIVER", "memory")
	_, err = Load()
	assert.Error(t, err)
}
