// Package keystore stores the remote endpoint API key on disk.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/readlai"
)

// DefaultFileName is the key file name inside the config directory.
const DefaultFileName = "openrouter_key.txt"

// File is a CredentialSource backed by a plain-text key file.
// The key is re-read on every call so a key saved by another process is
// picked up without a restart.
type File struct {
	path string
}

// NewFile creates a key store for the given file path.
func NewFile(path string) *File {
	return &File{path: path}
}

// NewFileInDir creates a key store for DefaultFileName inside dir.
func NewFileInDir(dir string) *File {
	return NewFile(filepath.Join(dir, DefaultFileName))
}

// Path returns the key file path.
func (f *File) Path() string {
	return f.path
}

// APIKey reads and trims the key. A missing or blank file is a
// ConfigurationError.
func (f *File) APIKey(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &readlai.ConfigurationError{Message: fmt.Sprintf("missing API key at %s", f.path)}
		}
		return "", &readlai.ConfigurationError{Message: "reading API key", Cause: err}
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", &readlai.ConfigurationError{Message: fmt.Sprintf("API key file %s is empty", f.path)}
	}
	return key, nil
}

// Save writes the key, creating the directory if needed. The file is only
// readable by the current user.
func (f *File) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &readlai.ConfigurationError{Message: "refusing to save an empty API key"}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// Env is a CredentialSource reading the key from an environment variable,
// falling back to another source when the variable is unset or blank.
type Env struct {
	Name     string
	Fallback readlai.CredentialSource
}

// APIKey returns the environment value or the fallback's key.
func (e Env) APIKey(ctx context.Context) (string, error) {
	if key := strings.TrimSpace(os.Getenv(e.Name)); key != "" {
		return key, nil
	}
	if e.Fallback != nil {
		return e.Fallback.APIKey(ctx)
	}
	return "", &readlai.ConfigurationError{Message: fmt.Sprintf("%s is not set", e.Name)}
}

// Verify implementations satisfy CredentialSource
var (
	_ readlai.CredentialSource = (*File)(nil)
	_ readlai.CredentialSource = Env{}
)
