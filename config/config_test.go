package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_ACQUIRE_TIMEOUT", "")
	t.Setenv("DB_IDLE_TIMEOUT", "")
	t.Setenv("STORAGE_DRIVER", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "mysql", env.DB_DRIVER)
	assert.Equal(t, "3306", env.DB_PORT)
	assert.Equal(t, 3022, env.PORT)
	assert.Equal(t, 5, env.DB_MAX_OPEN_CONNS)
	assert.Equal(t, 30*time.Second, env.DB_ACQUIRE_TIMEOUT)
	assert.Equal(t, 10*time.Second, env.DB_IDLE_TIMEOUT)
	assert.Equal(t, "local", env.STORAGE_DRIVER)
	assert.Equal(t, 20*1024*1024, env.MaxUploadBytes())
}

func TestGetPostgresPortAndNodeEnvFallback(t *testing.T) {
	t.Setenv("GO_ENV", "")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "postgres", env.DB_DRIVER)
	assert.Equal(t, "5432", env.DB_PORT)
	assert.True(t, env.IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     EnvironmentVariable
		wantErr error
	}{
		{
			name: "valid",
			env:  EnvironmentVariable{DB_DRIVER: "sqlite", STORAGE_DRIVER: "local", JWT_SECRET: "s"},
		},
		{
			name:    "unknown db driver",
			env:     EnvironmentVariable{DB_DRIVER: "oracle", STORAGE_DRIVER: "local", JWT_SECRET: "s"},
			wantErr: ErrUnknownDriver,
		},
		{
			name:    "unknown storage driver",
			env:     EnvironmentVariable{DB_DRIVER: "mysql", STORAGE_DRIVER: "cloudinary", JWT_SECRET: "s"},
			wantErr: ErrUnknownDriver,
		},
		{
			name:    "missing secret",
			env:     EnvironmentVariable{DB_DRIVER: "mysql", STORAGE_DRIVER: "minio"},
			wantErr: ErrMissingJWTSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
