package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Sync       SyncConfig       `yaml:"sync" mapstructure:"sync"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend. Driver is "sqlite" or
// "postgres"; for sqlite DatabaseURL is a file path.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// SyncConfig tunes the external CRM push machinery. The CRM endpoint itself
// (URL, key, tags) lives in the store and is editable at runtime; these are
// process-level knobs.
type SyncConfig struct {
	QueueDepth  int     `yaml:"queue_depth" mapstructure:"queue_depth"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
	Backend     string  `yaml:"backend" mapstructure:"backend"`
	PushWorkers int     `yaml:"push_workers" mapstructure:"push_workers"`
}

// SalesforceConfig holds credentials for the optional Salesforce backend.
type SalesforceConfig struct {
	Domain         string `yaml:"domain" mapstructure:"domain"`
	ConsumerKey    string `yaml:"consumer_key" mapstructure:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret" mapstructure:"consumer_secret"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("QUIZCRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "quizcrm.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("sync.queue_depth", 64)
	v.SetDefault("sync.timeout_secs", 15)
	v.SetDefault("sync.rps", 0)
	v.SetDefault("sync.backend", "http")
	v.SetDefault("sync.push_workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields the given mode depends on. Modes: "serve" (HTTP
// API), "cli" (one-shot commands that only need the store).
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Sync.QueueDepth < 1 {
			problems = append(problems, "sync.queue_depth must be >= 1")
		}
		if c.Sync.TimeoutSecs < 1 {
			problems = append(problems, "sync.timeout_secs must be >= 1")
		}
		fallthrough
	case "cli":
		switch c.Sync.Backend {
		case "http", "salesforce":
		default:
			problems = append(problems, "sync.backend must be http or salesforce")
		}
		if c.Sync.PushWorkers < 1 || c.Sync.PushWorkers > 32 {
			problems = append(problems, "sync.push_workers must be between 1 and 32")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
