package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8081"
database:
  driver: memory
session:
  token_secret: s3cret
  ttl_minutes: 7
kafka:
  brokers: ["k1:9092", "k2:9092"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 7*time.Minute, cfg.Session.TTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	// defaults
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 3, cfg.Store.RetryAttempts)
	assert.Equal(t, 3, cfg.Kafka.PublishRetries)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
session:
  token_secret: from-file
`)
	t.Setenv("SESSION_TOKEN_SECRET", "from-env")
	t.Setenv("DB_PORT", "6543")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.TokenSecret)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":8080\"\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.token_secret is required")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable", MaxConns: 4}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable pool_max_conns=4", d.DSN())
}
