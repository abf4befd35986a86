package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_TRUSTED_PROXIES", "")
	t.Setenv("NOTIFY_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.Storage.Backend)
	require.Equal(t, "5001", cfg.Server.Port)
	require.True(t, cfg.RateLimit.Enabled)
	require.False(t, cfg.Auth.AllowAnonymousList)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Empty(t, cfg.Server.TrustedProxies, "no proxy is trusted unless configured")
	require.Equal(t, 5*time.Second, cfg.Notify.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_ProxiesAndTimeouts(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")
	t.Setenv("NOTIFY_TIMEOUT", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
	require.Equal(t, 2*time.Second, cfg.Notify.Timeout)
	require.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("NOTIFY_TIMEOUT", "-1")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "desuite_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("NOTIFY_TO", "sales@desuite.io, founders@desuite.io")
	t.Setenv("KEYCLOAK_URL", "http://kc:8080/")
	t.Setenv("KEYCLOAK_REALM", "desuite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMongo, cfg.Storage.Backend)
	require.Equal(t, "desuite_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, []string{"sales@desuite.io", "founders@desuite.io"}, cfg.Notify.To)
	require.Equal(t, "http://kc:8080/realms/desuite", cfg.Keycloak.Issuer())
}

func TestLoadConfig_BackendRequirements(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("MONGODB_URI", "")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "sql")
	t.Setenv("SQL_DRIVER", "mysql")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "carrier-pigeon")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_ShortJWTSecretRejected(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "short")
	_, err := LoadConfig()
	require.Error(t, err)
}
