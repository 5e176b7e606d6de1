package kv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	sqlStore
	Path string
}

// OpenSQLite opens (creating if needed) the board database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite backend: missing path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is locked" when a
	// second kaiser process touches the same file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	if err := execAll(ctx, db, pragmas); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := execAll(ctx, db, []string{
		`CREATE TABLE IF NOT EXISTS board_snapshots (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{
		Path: path,
		sqlStore: sqlStore{
			db:      db,
			getQ:    `SELECT v FROM board_snapshots WHERE k = ?`,
			putQ:    `INSERT OR REPLACE INTO board_snapshots(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
			deleteQ: `DELETE FROM board_snapshots WHERE k = ?`,
			keysQ:   `SELECT k FROM board_snapshots ORDER BY k`,
		},
	}, nil
}
