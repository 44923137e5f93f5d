package cli

import (
	"context"

	"github.com/ZaguanLabs/readlai"
	"github.com/ZaguanLabs/readlai/cache"
	"github.com/ZaguanLabs/readlai/keystore"
	"github.com/ZaguanLabs/readlai/provider"
	"go.uber.org/zap"
)

// app holds the resolved configuration and builds the components a command
// needs.
type app struct {
	cfg    Config
	logger *zap.Logger
}

// credentials returns the key source: KeyEnvVar first, then the key file.
func (a *app) credentials() readlai.CredentialSource {
	return keystore.Env{Name: KeyEnvVar, Fallback: a.keyFile()}
}

func (a *app) keyFile() *keystore.File {
	return keystore.NewFile(a.cfg.KeyFile)
}

// completer builds the endpoint client with the configured wrappers.
// Rate limiting sits outside the breaker so waiting requests do not count
// against the endpoint.
func (a *app) completer() readlai.Completer {
	var c readlai.Completer
	switch a.cfg.Transport {
	case "http":
		c = provider.NewHTTPProvider(provider.HTTPConfig{
			Credentials: a.credentials(),
			BaseURL:     a.cfg.BaseURL,
			Timeout:     a.cfg.Timeout,
			Referer:     readlai.Repository,
		})
	default:
		c = provider.NewOpenAIProvider(provider.OpenAIConfig{
			Credentials: a.credentials(),
			BaseURL:     a.cfg.BaseURL,
			Timeout:     a.cfg.Timeout,
		})
	}

	if a.cfg.Breaker {
		bc := provider.DefaultBreakerConfig()
		bc.Logger = a.logger
		c = provider.NewBreakerProvider(c, bc)
	}
	if a.cfg.RateLimitRPM > 0 {
		c = readlai.NewRateLimitedProvider(c, readlai.RateLimitConfig{
			RequestsPerMinute: a.cfg.RateLimitRPM,
			BurstSize:         a.cfg.RateLimitBurst,
		})
	}
	return c
}

// openStore opens the configured snapshot store. The returned closer must be
// called when the command is done.
func (a *app) openStore(ctx context.Context) (readlai.Store, func() error, error) {
	noop := func() error { return nil }

	switch a.cfg.Store {
	case "memory":
		return cache.NewMemoryStore(), noop, nil
	case "redis":
		s, err := cache.NewRedisStore(cache.RedisConfig{URL: a.cfg.RedisURL, Key: a.cfg.RedisKey})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "sqlite":
		s, err := cache.NewSQLiteStore(a.cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return cache.NewFileStore(a.cfg.CacheDir), noop, nil
	}
}

// translator builds a translator over the configured endpoint and store.
func (a *app) translator(ctx context.Context) (*readlai.Translator, func() error, error) {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return readlai.NewTranslator(a.completer(), store, readlai.WithLogger(a.logger)), closeStore, nil
}

// closeQuietly runs a closer, logging any failure.
func (a *app) closeQuietly(closer func() error) {
	if err := closer(); err != nil {
		a.logger.Warn("closing store", zap.Error(err))
	}
}
