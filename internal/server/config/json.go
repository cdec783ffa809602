package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/solidarias/internal/flagx"
	"github.com/dmitrijs2005/solidarias/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Every field is a
// pointer so that keys absent from the file leave the earlier layers alone.
// Durations use timex.Duration and accept "90s" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                *string         `json:"http_addr"`
	HealthAddrGRPC          *string         `json:"health_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	ExportDir               *string         `json:"export_dir"`
	LogFormat               *string         `json:"log_format"`
	LogLevel                *string         `json:"log_level"`
	CookieSecure            *bool           `json:"cookie_secure"`
	ShutdownTimeout         *timex.Duration `json:"shutdown_timeout"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
}

// parseJson loads the JSON file named by -c or -config, if any, and copies
// the keys it contains into config. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.ExportDir, c.ExportDir)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
