// Package config loads readable's configuration from defaults, an optional
// config file, READABLE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tsawler/readable"
)

// EnvPrefix is prepended to every environment variable, e.g. READABLE_ASSETS.
const EnvPrefix = "READABLE"

// Default values.
const (
	DefaultURL          = "https://webscrapingzone.com"
	DefaultAssets       = "assets"
	DefaultTimeout      = 30 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultLanguage     = "en"
)

// Config is the resolved configuration.
type Config struct {
	URL           string        `mapstructure:"url"`
	Assets        string        `mapstructure:"assets"`
	Positive      string        `mapstructure:"positive"`
	Negative      string        `mapstructure:"negative"`
	CaseSensitive bool          `mapstructure:"case_sensitive"`
	WholeWord     bool          `mapstructure:"whole_word"`
	Freshness     string        `mapstructure:"freshness"`
	Timeout       time.Duration `mapstructure:"timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	Save          bool          `mapstructure:"save"`
	Language      string        `mapstructure:"language"`
	Redis         RedisConfig   `mapstructure:"redis"`
	Log           LogConfig     `mapstructure:"log"`
}

// RedisConfig enables the Redis artifact cache when Address is set.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("url", DefaultURL)
	v.SetDefault("assets", DefaultAssets)
	v.SetDefault("positive", readable.DefaultPositiveSource)
	v.SetDefault("negative", readable.DefaultNegativeSource)
	v.SetDefault("case_sensitive", false)
	v.SetDefault("whole_word", false)
	v.SetDefault("freshness", "existence")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("write_timeout", DefaultWriteTimeout)
	v.SetDefault("save", false)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
}

// Load reads configuration into v and decodes it. cfgFile may be empty, in
// which case ./config.yaml is used when present.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Assets == "" {
		return errors.New("assets directory is required")
	}
	if c.Positive == "" || c.Negative == "" {
		return errors.New("positive and negative lexicon sources are required")
	}
	if c.Positive == c.Negative {
		return fmt.Errorf("positive and negative lexicon sources must differ, both are %q", c.Positive)
	}
	if c.Timeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
