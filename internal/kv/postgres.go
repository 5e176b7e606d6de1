package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Postgres struct {
	sqlStore
}

// OpenPostgres connects through the pgx stdlib driver and ensures the snapshot table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("postgres backend: missing database url")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(4)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := execAll(ctx, db, []string{
		`CREATE TABLE IF NOT EXISTS board_snapshots (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms BIGINT NOT NULL
		)`,
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Postgres{sqlStore: sqlStore{
		db:   db,
		getQ: `SELECT v FROM board_snapshots WHERE k = $1`,
		putQ: `INSERT INTO board_snapshots(k, v, updated_at_unixms) VALUES($1, $2, $3)
			ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at_unixms = EXCLUDED.updated_at_unixms`,
		deleteQ: `DELETE FROM board_snapshots WHERE k = $1`,
		keysQ:   `SELECT k FROM board_snapshots ORDER BY k`,
	}}, nil
}
