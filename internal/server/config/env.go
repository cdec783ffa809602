package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/solidarias/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "SOLIDARIAS"

// EnvConfig mirrors Config for envconfig. Variables are named
// SOLIDARIAS_<tag>, e.g. SOLIDARIAS_DATABASE_DSN.
type EnvConfig struct {
	HTTPAddr                string        `envconfig:"HTTP_ADDR"`
	HealthAddrGRPC          string        `envconfig:"HEALTH_ADDR_GRPC"`
	DatabaseDSN             string        `envconfig:"DATABASE_DSN"`
	SecretKey               string        `envconfig:"SECRET_KEY"`
	SessionValidityDuration time.Duration `envconfig:"SESSION_VALIDITY_DURATION"`
	ExportDir               string        `envconfig:"EXPORT_DIR"`
	LogFormat               string        `envconfig:"LOG_FORMAT"`
	LogLevel                string        `envconfig:"LOG_LEVEL"`
	CookieSecure            bool          `envconfig:"COOKIE_SECURE"`
	ShutdownTimeout         time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	S3RootUser              string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword          string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                string        `envconfig:"S3_BUCKET"`
	S3Region                string        `envconfig:"S3_REGION"`
	S3BaseEndpoint          string        `envconfig:"S3_BASE_ENDPOINT"`
}

// parseEnv loads a dotenv file into the process environment and overlays
// the SOLIDARIAS_* variables onto config. Variables that are not set leave
// the current value untouched.
//
// The dotenv file is the one given with -env, or .env in the working
// directory. A missing .env is fine; a missing -env file or a malformed
// variable panics.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	c := &EnvConfig{
		HTTPAddr:                config.HTTPAddr,
		HealthAddrGRPC:          config.HealthAddrGRPC,
		DatabaseDSN:             config.DatabaseDSN,
		SecretKey:               config.SecretKey,
		SessionValidityDuration: config.SessionValidityDuration,
		ExportDir:               config.ExportDir,
		LogFormat:               config.LogFormat,
		LogLevel:                config.LogLevel,
		CookieSecure:            config.CookieSecure,
		ShutdownTimeout:         config.ShutdownTimeout,
		S3RootUser:              config.S3RootUser,
		S3RootPassword:          config.S3RootPassword,
		S3Bucket:                config.S3Bucket,
		S3Region:                config.S3Region,
		S3BaseEndpoint:          config.S3BaseEndpoint,
	}

	if err := envconfig.Process(EnvPrefix, c); err != nil {
		panic(err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.HealthAddrGRPC = c.HealthAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = c.SessionValidityDuration
	config.ExportDir = c.ExportDir
	config.LogFormat = c.LogFormat
	config.LogLevel = c.LogLevel
	config.CookieSecure = c.CookieSecure
	config.ShutdownTimeout = c.ShutdownTimeout
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
