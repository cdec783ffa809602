package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.HealthAddrGRPC)
	assert.Equal(t, "sqlite:solidarias.db", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, "exports", c.ExportDir)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.CookieSecure)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.False(t, c.S3Enabled())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Len(t, c.SecretKey, 64, "an empty secret is replaced by a random one")
}

func TestLoadConfig_LayersInOrder(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("SOLIDARIAS_HTTP_ADDR", ":7000")
	t.Setenv("SOLIDARIAS_EXPORT_DIR", "from-env")
	t.Setenv("SOLIDARIAS_SECRET_KEY", "env-secret")

	path := writeTempJSON(t, "", "", map[string]any{
		"export_dir": "from-json",
		"log_format": "text",
	})
	os.Args = []string{"testbin", "-c", path, "-l", "console"}

	c := LoadConfig()

	assert.Equal(t, ":7000", c.HTTPAddr, "env overrides defaults")
	assert.Equal(t, "from-json", c.ExportDir, "json overrides env")
	assert.Equal(t, "console", c.LogFormat, "flags override json")
	assert.Equal(t, "env-secret", c.SecretKey, "a configured secret is kept")
}

func TestS3Enabled(t *testing.T) {
	c := &Config{}
	assert.False(t, c.S3Enabled())
	c.S3Bucket = "exports"
	assert.True(t, c.S3Enabled())
}
