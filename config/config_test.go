package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("SPORTS_AUTH_JWT_SECRET", "env-secret-at-least-16")
	t.Setenv("SPORTS_SERVER_PORT", "8081")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-secret-at-least-16", cfg.Auth.JWTSecret)
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 10, cfg.RateLimit.LoginLimit)
	require.Equal(t, time.Minute, cfg.RateLimit.LoginWindow)
	require.Equal(t, 60, cfg.Class.DefaultDuration)
	require.Equal(t, 20, cfg.Class.DefaultMaxCapacity)
	require.Equal(t, 50, cfg.Class.MaxCapacityLimit)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9000
auth:
  jwt_secret: file-secret-at-least-16
class:
  default_max_capacity: 30
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "file-secret-at-least-16", cfg.Auth.JWTSecret)
	require.Equal(t, 30, cfg.Class.DefaultMaxCapacity)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 3000},
			Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
			Class:  ClassConfig{DefaultMaxCapacity: 20, MaxCapacityLimit: 50},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"密钥为空", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"容量上限非法", func(c *Config) { c.Class.MaxCapacityLimit = 0 }, true},
		{"默认容量超过上限", func(c *Config) { c.Class.DefaultMaxCapacity = 60 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
