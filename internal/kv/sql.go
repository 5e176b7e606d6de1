package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// sqlStore is the shared database/sql implementation behind the SQLite and Postgres backends.
// Both use a single table of (k, v) rows; only placeholders and the upsert syntax differ.
type sqlStore struct {
	db *sql.DB

	getQ    string
	putQ    string
	deleteQ string
	keysQ   string
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.getQ, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *sqlStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.putQ, key, string(value), time.Now().UTC().UnixMilli())
	return err
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, s.deleteQ, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.keysQ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		// Prefix filtering happens here rather than with LIKE so '_' and '%' in keys stay literal.
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func execAll(ctx context.Context, db *sql.DB, stmts []string) error {
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
