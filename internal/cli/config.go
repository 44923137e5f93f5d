package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/ZaguanLabs/readlai/cache"
	"github.com/ZaguanLabs/readlai/keystore"
	"github.com/spf13/viper"
)

// Configuration defaults
const (
	DefaultModel       = "openai/gpt-4o-mini"
	DefaultTemperature = 0.3
	DefaultTransport   = "openai"
	DefaultStore       = "file"
	DefaultTimeout     = 60 * time.Second
	DefaultSQLiteFile  = "translation_cache.db"

	// KeyEnvVar overrides the key file when set.
	KeyEnvVar = "OPENROUTER_API_KEY"

	envPrefix = "READLAI"
)

// Config is the resolved configuration for one command invocation.
type Config struct {
	Model       string
	Temperature float32
	Transport   string // "openai" or "http"
	BaseURL     string
	Timeout     time.Duration
	KeyFile     string

	Store      string // "file", "redis", "sqlite" or "memory"
	CacheDir   string
	RedisURL   string
	RedisKey   string
	SQLitePath string

	RateLimitRPM   int
	RateLimitBurst int
	Breaker        bool

	Verbose bool
	LogJSON bool
}

var (
	transports = []string{"openai", "http"}
	stores     = []string{"file", "redis", "sqlite", "memory"}
)

// DefaultConfigDir returns the per-user directory holding the key file and
// the cache snapshot.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", readlai.Name)
	}
	return filepath.Join(dir, readlai.Name)
}

// InitConfig initializes viper configuration and returns the config file in
// use, if any. A missing default config file is not an error; a missing
// explicitly requested one is.
func InitConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".readlai" (without extension)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + readlai.Name)
	}

	// Environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", &readlai.ConfigurationError{Message: "reading config file", Cause: err}
	}
	return v.ConfigFileUsed(), nil
}

// LoadConfig resolves and validates the configuration from v.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Model:          strings.TrimSpace(v.GetString("model")),
		Temperature:    float32(v.GetFloat64("temperature")),
		Transport:      strings.ToLower(strings.TrimSpace(v.GetString("transport"))),
		BaseURL:        strings.TrimSpace(v.GetString("base_url")),
		Timeout:        v.GetDuration("timeout"),
		KeyFile:        strings.TrimSpace(v.GetString("key_file")),
		Store:          strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		CacheDir:       strings.TrimSpace(v.GetString("cache_dir")),
		RedisURL:       strings.TrimSpace(v.GetString("redis_url")),
		RedisKey:       strings.TrimSpace(v.GetString("redis_key")),
		SQLitePath:     strings.TrimSpace(v.GetString("sqlite_path")),
		RateLimitRPM:   v.GetInt("rate_limit.rpm"),
		RateLimitBurst: v.GetInt("rate_limit.burst"),
		Breaker:        v.GetBool("breaker.enabled"),
		Verbose:        v.GetBool("verbose"),
		LogJSON:        v.GetBool("log_json"),
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultConfigDir()
	}
	if cfg.KeyFile == "" {
		cfg.KeyFile = filepath.Join(DefaultConfigDir(), keystore.DefaultFileName)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.CacheDir, DefaultSQLiteFile)
	}
	if cfg.RedisKey == "" {
		cfg.RedisKey = cache.DefaultRedisKey
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged settings.
func (c Config) Validate() error {
	if c.Model == "" {
		return &readlai.ConfigurationError{Message: "model is required"}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return &readlai.ConfigurationError{Message: fmt.Sprintf("temperature %.2f out of range [0, 2]", c.Temperature)}
	}
	if !oneOf(c.Transport, transports) {
		return &readlai.ConfigurationError{Message: fmt.Sprintf("unknown transport %q (want one of %s)", c.Transport, strings.Join(transports, ", "))}
	}
	if !oneOf(c.Store, stores) {
		return &readlai.ConfigurationError{Message: fmt.Sprintf("unknown store %q (want one of %s)", c.Store, strings.Join(stores, ", "))}
	}
	if c.Store == "redis" && c.RedisURL == "" {
		return &readlai.ConfigurationError{Message: "redis_url is required for the redis store"}
	}
	if c.RateLimitRPM < 0 || c.RateLimitBurst < 0 {
		return &readlai.ConfigurationError{Message: "rate limit values must not be negative"}
	}
	return nil
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
