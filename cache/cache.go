// Package cache provides durable snapshot stores for the translation cache.
//
// Every store has whole-snapshot semantics: Load returns the complete
// fingerprint map (empty when nothing was saved yet) and Save replaces it.
// Concurrent writers are not serialized; the last Save wins.
package cache

import "github.com/ZaguanLabs/readlai"

// Store is an alias to the main package interface for convenience.
type Store = readlai.Store

// Snapshot is an alias to the main package type.
type Snapshot = readlai.Snapshot
