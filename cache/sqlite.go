package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/ZaguanLabs/readlai"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteTable = "translation_cache"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS translation_cache (
	fingerprint TEXT PRIMARY KEY,
	translation TEXT NOT NULL
)`

// SQLiteStore keeps the snapshot as rows of a SQLite table.
// Save rewrites the whole table in one transaction, matching the
// whole-snapshot contract of the other stores.
type SQLiteStore struct {
	db   *sql.DB
	path string
	sq   sq.StatementBuilderType
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &readlai.PersistenceError{Op: "open", Path: path, Cause: err}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "open", Path: path, Cause: err}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, &readlai.PersistenceError{Op: "open", Path: path, Cause: fmt.Errorf("creating schema: %w", err)}
	}

	return &SQLiteStore{
		db:   db,
		path: path,
		sq:   sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Load reads every row into a snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	query, args, err := s.sq.Select("fingerprint", "translation").From(sqliteTable).ToSql()
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
	}
	defer rows.Close()

	snap := readlai.NewSnapshot()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
		}
		snap.Entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.path, Cause: err}
	}
	return snap, nil
}

// Save replaces all rows with the snapshot entries.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := s.replaceAll(ctx, snap); err != nil {
		return &readlai.PersistenceError{Op: "save", Path: s.path, Cause: err}
	}
	return nil
}

func (s *SQLiteStore) replaceAll(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	del, args, err := s.sq.Delete(sqliteTable).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, del, args...); err != nil {
		return err
	}

	if snap.Len() > 0 {
		ins, _, err := s.sq.Insert(sqliteTable).Columns("fingerprint", "translation").Values("", "").ToSql()
		if err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, ins)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for key, value := range snap.Entries {
			if _, err := stmt.ExecContext(ctx, key, value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Verify SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
