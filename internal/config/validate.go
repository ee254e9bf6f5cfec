package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration values that cleanenv cannot.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}

	if c.Glossary.MinMarkedWords < 1 {
		errs = append(errs, fmt.Errorf("glossary.min_marked_words must be >= 1, got %d", c.Glossary.MinMarkedWords))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.PurgeInterval <= 0 {
		errs = append(errs, errors.New("session.purge_interval must be positive"))
	}
	if c.Session.MaxUploadBytes <= 0 || c.Session.MaxTextBytes <= 0 {
		errs = append(errs, errors.New("session size limits must be positive"))
	}

	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_bytes must be positive"))
	}

	return errors.Join(errs...)
}
