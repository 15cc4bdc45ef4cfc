package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"librisk/internal/artifact"
)

const envPrefix = "LIBRISK"

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		DSN    string `mapstructure:"dsn"`    // file path for sqlite, URL for postgres
	} `mapstructure:"database"`

	Model struct {
		Dir   string         `mapstructure:"dir"`
		Files artifact.Files `mapstructure:"files"`
		// DefaultConfidence is reported (0-100) when the classifier gives no
		// probability estimate.
		DefaultConfidence float64 `mapstructure:"default_confidence"`
	} `mapstructure:"model"`

	Prediction struct {
		MaxSolutions         int  `mapstructure:"max_solutions"`
		UnifyYa              bool `mapstructure:"unify_ya"`
		IncludeProbabilities bool `mapstructure:"include_probabilities"`
		HistoryLimit         int  `mapstructure:"history_limit"` // <= 0 lists everything
	} `mapstructure:"prediction"`

	Server struct {
		Addr        string `mapstructure:"addr"`
		Port        int    `mapstructure:"port"`
		CookieName  string `mapstructure:"cookie_name"`
		ReleaseMode bool   `mapstructure:"release_mode"`

		// TrustUserHeader honors X-User-ID. Enable only behind a proxy that
		// authenticates callers and sets the header itself.
		TrustUserHeader bool `mapstructure:"trust_user_header"`
	} `mapstructure:"server"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Addr, c.Server.Port)
}

func setDefaults(v *viper.Viper) {
	files := artifact.DefaultFiles()

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "librisk.db")

	v.SetDefault("model.dir", "model")
	v.SetDefault("model.files.vectorizer", files.Vectorizer)
	v.SetDefault("model.files.classifier", files.Classifier)
	v.SetDefault("model.files.labels", files.Labels)
	v.SetDefault("model.files.category_mapping", files.CategoryMapping)
	v.SetDefault("model.files.solutions", files.Solutions)
	v.SetDefault("model.files.info", files.Info)
	v.SetDefault("model.default_confidence", 100.0)

	v.SetDefault("prediction.max_solutions", 5)
	v.SetDefault("prediction.unify_ya", true)
	v.SetDefault("prediction.include_probabilities", true)
	v.SetDefault("prediction.history_limit", 0)

	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cookie_name", "librisk_uid")
	v.SetDefault("server.release_mode", false)
	v.SetDefault("server.trust_user_header", false)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.queues", map[string]int{"predictions": 1})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from the working directory, or the file at
// path when it is non-empty, then applies LIBRISK_* environment overrides
// (database.dsn -> LIBRISK_DATABASE_DSN).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".") // Look for config.yaml in the current directory
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; defaults and env vars apply.
		// An explicitly named file must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
