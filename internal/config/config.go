package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Auth    AuthConfig    `mapstructure:"auth"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Lessons LessonsConfig `mapstructure:"lessons"`
	Server  ServerConfig  `mapstructure:"server"`
}

type AuthConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Retries    int           `mapstructure:"retries" validate:"gte=0,lte=5"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
}

type StoreConfig struct {
	// Path is the SQLite file. Empty means the XDG data directory.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	// File is the log file. Empty means the XDG state directory.
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gt=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

type LessonsConfig struct {
	// Catalog is an optional YAML catalog replacing the built-in lessons.
	Catalog string `mapstructure:"catalog" validate:"omitempty,file"`
}

type ServerConfig struct {
	Addr     string        `mapstructure:"addr" validate:"required,hostname_port"`
	Secret   string        `mapstructure:"secret" validate:"omitempty,min=16"`
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stocklearn")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stocklearn")
	}

	v.SetDefault("auth.base_url", "http://127.0.0.1:8080")
	v.SetDefault("auth.timeout", 10*time.Second)
	v.SetDefault("auth.retries", 2)
	v.SetDefault("auth.retry_delay", 500*time.Millisecond)
	v.SetDefault("store.path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("lessons.catalog", "")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.secret", "")
	v.SetDefault("server.token_ttl", 24*time.Hour)

	envBindings := map[string]string{
		"auth.base_url":   "STOCKLEARN_AUTH_BASE_URL",
		"store.path":      "STOCKLEARN_DB",
		"log.file":        "STOCKLEARN_LOG_FILE",
		"log.level":       "STOCKLEARN_LOG_LEVEL",
		"lessons.catalog": "STOCKLEARN_CATALOG",
		"server.addr":     "STOCKLEARN_SERVER_ADDR",
		"server.secret":   "STOCKLEARN_AUTH_SECRET",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration and returns every problem in one error.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	err = validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
