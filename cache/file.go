package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZaguanLabs/readlai"
)

// DefaultFileName is the snapshot file name inside the cache directory.
const DefaultFileName = "translation_cache.json"

// FileStore persists the snapshot as a pretty-printed JSON document:
//
//	{ "entries": { "<fingerprint>": "<translated text>", ... } }
type FileStore struct {
	path string
}

// NewFileStore creates a store writing DefaultFileName inside dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, DefaultFileName)}
}

// NewFileStoreAt creates a store writing exactly the given file.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return readlai.NewSnapshot(), nil
		}
		return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
	}
	return snap, nil
}

// Save atomically replaces the snapshot file, creating its directory if needed.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return &readlai.PersistenceError{Op: "save", Path: s.path, Cause: err}
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &readlai.PersistenceError{Op: "save", Path: s.path, Cause: err}
	}
	return nil
}

// encodeSnapshot renders the persisted JSON document.
func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	if snap == nil || snap.Entries == nil {
		snap = readlai.NewSnapshot()
	}
	return json.MarshalIndent(snap, "", "  ")
}

// decodeSnapshot parses the persisted JSON document.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	snap := readlai.NewSnapshot()
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, err
	}
	if snap.Entries == nil {
		snap.Entries = make(map[string]string)
	}
	return snap, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a partial snapshot.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// Verify FileStore implements Store
var _ Store = (*FileStore)(nil)
