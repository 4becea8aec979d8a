// Package config loads application settings from configs/config.yml,
// an optional .env.local file and BLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"myblog/internal/logger"
)

const (
	envPrefix      = "BLOG"
	releaseGinMode = "release"
)

type Config struct {
	Port    string        `mapstructure:"port"`
	GinMode string        `mapstructure:"gin_mode"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Server  ServerConfig  `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Name   string `mapstructure:"name"`
	Secret string `mapstructure:"secret"`
	MaxAge int    `mapstructure:"max_age"` // seconds
	Secure bool   `mapstructure:"secure"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("db.path", "blog.db")
	v.SetDefault("session.name", "blog_session")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.max_age", 7*24*60*60)
	v.SetDefault("session.secure", false)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads config.yml from the given directories (configs/ when none are given).
// A missing file is not an error; defaults and environment still apply.
func Load(dirs ...string) (*Config, error) {
	// .env.local is optional
	_ = godotenv.Load(".env.local")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(dirs) == 0 {
		dirs = []string{"configs"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail late or insecurely.
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.DB.Path == "" {
		return errors.New("db.path is required")
	}
	if c.Session.Name == "" {
		return errors.New("session.name is required")
	}
	if c.Session.MaxAge < 0 {
		return errors.New("session.max_age must not be negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.GinMode == releaseGinMode && len(c.Session.Secret) < 32 {
		return errors.New("session.secret of at least 32 bytes is required in release mode")
	}
	return nil
}
