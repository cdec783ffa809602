// Package config handles configuration for the web server, layering
// defaults, the environment (optionally seeded from a .env file), a JSON
// file and command-line flags. Later layers win.
package config

import (
	"time"

	"github.com/dmitrijs2005/solidarias/internal/common"
)

// Config holds runtime settings for the solidarias server.
//
// Fields:
//   - HTTPAddr: bind address of the web surface.
//   - HealthAddrGRPC: bind address of the gRPC health service.
//   - DatabaseDSN: store DSN; the scheme selects PostgreSQL, MySQL or SQLite.
//   - SecretKey: HMAC secret for session tokens (HS256). A random one is
//     generated when left empty, which logs everybody out on restart.
//   - SessionValidityDuration: lifetime of a login session.
//   - ExportDir: directory receiving products.{txt,json,csv}.
//   - LogFormat / LogLevel: see logging.New.
//   - CookieSecure: mark session and flash cookies Secure.
//   - ShutdownTimeout: how long in-flight requests may finish on shutdown.
//   - S3*: object storage for exports; an empty S3Bucket disables upload.
type Config struct {
	HTTPAddr                string
	HealthAddrGRPC          string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	ExportDir               string
	LogFormat               string
	LogLevel                string
	CookieSecure            bool
	ShutdownTimeout         time.Duration
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.HealthAddrGRPC = ":50051"
	c.DatabaseDSN = "sqlite:solidarias.db"
	c.SecretKey = ""
	c.SessionValidityDuration = 24 * time.Hour
	c.ExportDir = "exports"
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.CookieSecure = false
	c.ShutdownTimeout = 10 * time.Second
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// S3Enabled reports whether exports should also be uploaded.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	ensureSecret(cfg)
	return cfg
}

func ensureSecret(cfg *Config) {
	if cfg.SecretKey != "" {
		return
	}
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}
	cfg.SecretKey = secret
}
