package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Glossary GlossaryConfig `yaml:"glossary"`
	Session  SessionConfig  `yaml:"session"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// GlossaryConfig holds the default generation options.
// Booleans default to false: cleanenv cannot tell an explicit false from a missing key.
type GlossaryConfig struct {
	NoDecompose    bool `yaml:"no_decompose"     env:"GLOSSARY_NO_DECOMPOSE"`
	KeepCompounds  bool `yaml:"keep_compounds"   env:"GLOSSARY_KEEP_COMPOUNDS"`
	Strict         bool `yaml:"strict"           env:"GLOSSARY_STRICT"`
	MinMarkedWords int  `yaml:"min_marked_words" env:"GLOSSARY_MIN_MARKED_WORDS" env-default:"1"`
	PreferBuiltin  bool `yaml:"prefer_builtin"   env:"GLOSSARY_PREFER_BUILTIN"`
}

// SessionConfig holds in-memory session settings.
type SessionConfig struct {
	TTL            time.Duration `yaml:"ttl"              env:"SESSION_TTL"              env-default:"2h"`
	PurgeInterval  time.Duration `yaml:"purge_interval"   env:"SESSION_PURGE_INTERVAL"   env-default:"5m"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"SESSION_MAX_UPLOAD_BYTES" env-default:"1048576"`
	MaxTextBytes   int64         `yaml:"max_text_bytes"   env:"SESSION_MAX_TEXT_BYTES"   env-default:"4194304"`
}

// FetchConfig holds settings for reading source text from a URL.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"    env:"FETCH_TIMEOUT"    env-default:"30s"`
	MaxBytes  int64         `yaml:"max_bytes"  env:"FETCH_MAX_BYTES"  env-default:"5242880"`
	UserAgent string        `yaml:"user_agent" env:"FETCH_USER_AGENT" env-default:"glossary/1.0"`
}

// AuthConfig holds the optional shared password.
type AuthConfig struct {
	Password string `yaml:"password" env:"APP_PASSWORD"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
