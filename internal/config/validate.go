package config

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Validate checks every section. It is run once after LoadConfig.
func (c *Config) Validate() error {
	// Database config
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	// Model config
	if c.Model.Dir == "" {
		return errors.New("model.dir is required")
	}
	files := map[string]string{
		"vectorizer":       c.Model.Files.Vectorizer,
		"classifier":       c.Model.Files.Classifier,
		"labels":           c.Model.Files.Labels,
		"category_mapping": c.Model.Files.CategoryMapping,
	}
	for key, name := range files {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("model.files.%s is required", key)
		}
	}
	if c.Model.DefaultConfidence < 0 || c.Model.DefaultConfidence > 100 {
		return fmt.Errorf("model.default_confidence must be within [0, 100], got %v", c.Model.DefaultConfidence)
	}

	// Prediction config
	if c.Prediction.MaxSolutions < 1 {
		return errors.New("prediction.max_solutions must be a positive integer")
	}

	// Server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1-65535, got %d", c.Server.Port)
	}
	if c.Server.CookieName == "" {
		return errors.New("server.cookie_name is required")
	}

	// Redis config
	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}

	// Worker config
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	if len(c.Worker.Queues) == 0 {
		return errors.New("worker.queues must define at least one queue")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}

	// Log config
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}
