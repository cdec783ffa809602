package config

// Config holds runtime settings for the inventory CLI.
//
// Fields:
//   - DatabaseDSN: store DSN, same schemes as the web server.
//   - LogFormat: "text", "json" or "console"; logs go to stderr.
type Config struct {
	DatabaseDSN string
	LogFormat   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "sqlite:inventory.db"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
