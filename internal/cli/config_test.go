package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/ZaguanLabs/readlai/keystore"
	"github.com/spf13/viper"
)

// isolate points home and config directories at a temp dir and clears the
// key variable.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv(KeyEnvVar, "")
	return dir
}

// boundViper returns a viper instance with the root command's flags bound.
func boundViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	CreateRootCommand(NewFlags(), v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	v := boundViper(t)

	if _, err := InitConfig(v, ""); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.Temperature != float32(DefaultTemperature) {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if cfg.Transport != DefaultTransport || cfg.Store != DefaultStore {
		t.Errorf("Unexpected transport/store: %s/%s", cfg.Transport, cfg.Store)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.CacheDir != DefaultConfigDir() {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, DefaultConfigDir())
	}
	if cfg.KeyFile != filepath.Join(DefaultConfigDir(), keystore.DefaultFileName) {
		t.Errorf("Unexpected KeyFile: %s", cfg.KeyFile)
	}
	if cfg.SQLitePath != filepath.Join(cfg.CacheDir, DefaultSQLiteFile) {
		t.Errorf("Unexpected SQLitePath: %s", cfg.SQLitePath)
	}
	if cfg.Breaker || cfg.RateLimitRPM != 0 {
		t.Error("Breaker and rate limiting should be off by default")
	}
}

func TestInitConfig_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "readlai.yaml")
	content := `model: anthropic/claude-3-haiku
temperature: 0.7
store: sqlite
sqlite_path: /tmp/readlai-test.db
timeout: 15s
rate_limit:
  rpm: 30
  burst: 2
breaker:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := boundViper(t)
	used, err := InitConfig(v, path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if used != path {
		t.Errorf("Expected config file %s, got %s", path, used)
	}

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Model != "anthropic/claude-3-haiku" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Temperature != float32(0.7) {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.Store != "sqlite" || cfg.SQLitePath != "/tmp/readlai-test.db" {
		t.Errorf("Unexpected store config: %s %s", cfg.Store, cfg.SQLitePath)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.RateLimitRPM != 30 || cfg.RateLimitBurst != 2 {
		t.Errorf("Unexpected rate limit: %d/%d", cfg.RateLimitRPM, cfg.RateLimitBurst)
	}
	if !cfg.Breaker {
		t.Error("Breaker should be enabled")
	}
}

func TestInitConfig_HomeFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".readlai.yaml"), []byte("model: home/model\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := boundViper(t)
	if _, err := InitConfig(v, ""); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Model != "home/model" {
		t.Errorf("Model = %q, want home/model", cfg.Model)
	}
}

func TestInitConfig_Env(t *testing.T) {
	isolate(t)
	t.Setenv("READLAI_MODEL", "env/model")
	t.Setenv("READLAI_RATE_LIMIT_RPM", "12")
	t.Setenv("READLAI_STORE", "memory")

	v := boundViper(t)
	if _, err := InitConfig(v, ""); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Model != "env/model" {
		t.Errorf("Model = %q, want env/model", cfg.Model)
	}
	if cfg.RateLimitRPM != 12 {
		t.Errorf("RateLimitRPM = %d, want 12", cfg.RateLimitRPM)
	}
	if cfg.Store != "memory" {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
}

func TestInitConfig_FlagWinsOverFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "readlai.yaml")
	if err := os.WriteFile(path, []byte("model: file/model\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := viper.New()
	cmd := CreateRootCommand(NewFlags(), v)
	if err := cmd.PersistentFlags().Set("model", "flag/model"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	if _, err := InitConfig(v, path); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Model != "flag/model" {
		t.Errorf("Model = %q, want flag/model", cfg.Model)
	}
}

func TestInitConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := InitConfig(viper.New(), filepath.Join(dir, "missing.yaml"))
	if !readlai.IsConfigurationError(err) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown transport", "transport", "grpc"},
		{"unknown store", "store", "postgres"},
		{"redis without url", "store", "redis"},
		{"temperature too high", "temperature", 3.5},
		{"negative temperature", "temperature", -0.1},
		{"empty model", "model", "  "},
		{"negative rate limit", "rate_limit.rpm", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			v := boundViper(t)
			v.Set(tt.key, tt.value)

			if _, err := LoadConfig(v); !readlai.IsConfigurationError(err) {
				t.Errorf("Expected ConfigurationError, got %v", err)
			}
		})
	}
}
