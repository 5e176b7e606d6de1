package kv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// exerciseBackend runs the contract every backend must satisfy.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, "kaiser/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err=%v, want ErrNotFound", err)
	}
	if err := b.Delete(ctx, "kaiser/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) err=%v, want ErrNotFound", err)
	}
	if err := b.Put(ctx, "", []byte("x")); err == nil {
		t.Fatalf("expected error for empty key")
	}

	if err := b.Put(ctx, "kaiser/default", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Put(ctx, "kaiser/team-a", []byte(`{"b":2}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Put(ctx, "other/default", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Overwrite.
	if err := b.Put(ctx, "kaiser/default", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, err := b.Get(ctx, "kaiser/default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("Get=%q", got)
	}

	keys, err := b.Keys(ctx, "kaiser/")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if want := []string{"kaiser/default", "kaiser/team-a"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys=%v, want %v", keys, want)
	}

	if err := b.Delete(ctx, "kaiser/team-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := b.Get(ctx, "kaiser/team-a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err=%v", err)
	}
	all, err := b.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys(all): %v", err)
	}
	if want := []string{"kaiser/default", "other/default"}; !reflect.DeepEqual(all, want) {
		t.Fatalf("Keys(all)=%v, want %v", all, want)
	}
}

func TestMemoryBackend(t *testing.T) {
	t.Parallel()
	exerciseBackend(t, NewMemory())
}

func TestMemoryBackend_ValuesAreCopied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")
	if err := m.Put(ctx, "k", v); err != nil {
		t.Fatal(err)
	}
	v[0] = 'z'
	got, _ := m.Get(ctx, "k")
	got[1] = 'z'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated: %q", again)
	}
}

func TestFileBackend(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	exerciseBackend(t, f)

	if _, err := os.Stat(filepath.Join(dir, "kaiser", "default.json")); err != nil {
		t.Fatalf("expected snapshot file on disk: %v", err)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "kaiser", "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestFileBackend_RejectsEscapingKeys(t *testing.T) {
	t.Parallel()
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"../x", "a//b", "a/./b"} {
		if err := f.Put(context.Background(), k, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", k)
		}
	}
}

func TestSQLiteBackend(t *testing.T) {
	t.Parallel()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kaiser.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	exerciseBackend(t, s)
}

func TestSQLiteBackend_ReopenKeepsData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kaiser.db")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "kaiser/default", []byte(`{"x":true}`)); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	got, err := s2.Get(ctx, "kaiser/default")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != `{"x":true}` {
		t.Fatalf("got %q", got)
	}
}

func TestSQLiteBackend_LiteralPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "kaiser.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	_ = s.Put(ctx, "a_b/x", []byte("1"))
	_ = s.Put(ctx, "axb/x", []byte("2"))
	keys, err := s.Keys(ctx, "a_b/")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(keys, []string{"a_b/x"}) {
		t.Fatalf("keys=%v", keys)
	}
}

func TestRedisBackend(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	r, err := OpenRedis(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	exerciseBackend(t, r)

	if mr.TTL("kaiser/default") != 0 {
		t.Fatalf("snapshots must not expire")
	}
}

func TestRedisBackend_BadURL(t *testing.T) {
	t.Parallel()
	if _, err := OpenRedis(context.Background(), "not-a-url"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	url := os.Getenv("KAISER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("KAISER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	p, err := OpenPostgres(ctx, url)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range []string{"kaiser/default", "kaiser/team-a", "other/default"} {
			_ = p.Delete(ctx, k)
		}
		_ = p.Close()
	})
	exerciseBackend(t, p)
}

func TestS3Backend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping s3 test in short mode")
	}
	url := os.Getenv("KAISER_TEST_S3_URL")
	if url == "" {
		t.Skip("KAISER_TEST_S3_URL not set")
	}
	ctx := context.Background()
	s, err := OpenS3(ctx, url)
	if err != nil {
		t.Fatalf("OpenS3: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range []string{"kaiser/default", "kaiser/team-a", "other/default"} {
			_ = s.Delete(ctx, k)
		}
	})
	exerciseBackend(t, s)
}

func TestParseS3URL(t *testing.T) {
	t.Parallel()

	cfg, err := parseS3URL("s3://AKID:s3cr3t@localhost:9000/boards?secure=false&region=eu-west-1")
	if err != nil {
		t.Fatalf("parseS3URL: %v", err)
	}
	want := s3Config{Endpoint: "localhost:9000", AccessKey: "AKID", SecretKey: "s3cr3t", Bucket: "boards", Region: "eu-west-1", Secure: false}
	if cfg != want {
		t.Fatalf("parseS3URL = %+v, want %+v", cfg, want)
	}

	cfg, err = parseS3URL("s3://s3.amazonaws.com/kaiser-boards/")
	if err != nil || !cfg.Secure || cfg.Bucket != "kaiser-boards" {
		t.Fatalf("expected TLS default and trimmed bucket; got %+v err=%v", cfg, err)
	}

	for _, bad := range []string{
		"http://localhost:9000/boards",
		"s3://localhost:9000",
		"s3://localhost:9000/a/b",
		"s3:///boards",
		"s3://localhost/boards?secure=maybe",
	} {
		if _, err := parseS3URL(bad); err == nil {
			t.Fatalf("parseS3URL(%q): expected error", bad)
		}
	}
}

func TestS3Err(t *testing.T) {
	t.Parallel()

	if err := s3Err("get", "kaiser/a", minio.ErrorResponse{Code: minio.NoSuchKey}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("NoSuchKey: err=%v, want ErrNotFound", err)
	}
	denied := minio.ErrorResponse{Code: minio.AccessDenied}
	err := s3Err("stat", "kaiser/a", denied)
	if errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), "s3 stat kaiser/a") {
		t.Fatalf("AccessDenied: err=%v", err)
	}
	if minio.ToErrorResponse(errors.Unwrap(err)).Code != minio.AccessDenied {
		t.Fatalf("expected wrapped minio error; got %v", err)
	}
	if err := s3Err("get", "kaiser/a", errors.New("boom")); errors.Is(err, ErrNotFound) {
		t.Fatalf("plain error mapped to ErrNotFound")
	}
}

// TestS3Backend_MissingAndDeniedKeys points the client at a server that answers 404 for
// kaiser/missing and 403 for everything else, covering the lazy GetObject read and StatObject.
func TestS3Backend_MissingAndDeniedKeys(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/kaiser/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("AKID", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatalf("minio.New: %v", err)
	}
	b := &S3{client: client, bucket: "boards"}
	ctx := context.Background()

	if _, err := b.Get(ctx, "kaiser/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err=%v, want ErrNotFound", err)
	}
	if err := b.Delete(ctx, "kaiser/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) err=%v, want ErrNotFound", err)
	}
	if _, err := b.Get(ctx, "kaiser/locked"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(locked) err=%v, want access error", err)
	}
	if err := b.Delete(ctx, "kaiser/locked"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(locked) err=%v, want access error", err)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	cases := map[string]Kind{
		"":         KindSQLite,
		"memory":   KindMemory,
		" Redis ":  KindRedis,
		"postgres": KindPostgres,
		"FILE":     KindFile,
		"sqlite":   KindSQLite,
		"S3":       KindS3,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("mongo"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestOpen_Memory(t *testing.T) {
	t.Parallel()
	b, err := Open(context.Background(), KindMemory, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Fatalf("Open(memory) = %T", b)
	}
}
