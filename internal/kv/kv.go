// Package kv holds the key-value backends board snapshots are persisted to.
//
// Keys are opaque strings such as "kaiser/my-board"; values are whole JSON documents.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get and Delete when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Kind names a backend implementation for configuration.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindFile     Kind = "file"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindS3       Kind = "s3"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMemory, KindFile, KindSQLite, KindPostgres, KindRedis, KindS3:
		return k, nil
	case "":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (expected memory|file|sqlite|postgres|redis|s3)", s)
	}
}

// Open connects to the backend of the given kind. dsn is a directory for file, a database path
// for sqlite, a connection URL for postgres, redis and s3, and ignored for memory.
func Open(ctx context.Context, kind Kind, dsn string) (Backend, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return NewFile(dsn)
	case KindSQLite:
		return OpenSQLite(ctx, dsn)
	case KindPostgres:
		return OpenPostgres(ctx, dsn)
	case KindRedis:
		return OpenRedis(ctx, dsn)
	case KindS3:
		return OpenS3(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown backend: %s", kind)
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: empty key")
	}
	return nil
}
