package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 stores each snapshot as one object in a bucket of any S3-compatible service.
type S3 struct {
	client *minio.Client
	bucket string
}

type s3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

// parseS3URL reads s3://ACCESS:SECRET@host[:port]/bucket[?secure=false&region=...].
// TLS is on unless secure=false.
func parseS3URL(raw string) (s3Config, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return s3Config{}, fmt.Errorf("parse s3 url: %w", err)
	}
	if u.Scheme != "s3" {
		return s3Config{}, fmt.Errorf("parse s3 url: scheme must be s3, got %q", u.Scheme)
	}
	cfg := s3Config{
		Endpoint: u.Host,
		Bucket:   strings.Trim(u.Path, "/"),
		Region:   u.Query().Get("region"),
		Secure:   true,
	}
	if cfg.Endpoint == "" {
		return s3Config{}, errors.New("parse s3 url: missing host")
	}
	if cfg.Bucket == "" || strings.Contains(cfg.Bucket, "/") {
		return s3Config{}, fmt.Errorf("parse s3 url: expected exactly one bucket path segment, got %q", u.Path)
	}
	if u.User != nil {
		cfg.AccessKey = u.User.Username()
		cfg.SecretKey, _ = u.User.Password()
	}
	if v := u.Query().Get("secure"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s3Config{}, fmt.Errorf("parse s3 url: secure=%q: %w", v, err)
		}
		cfg.Secure = b
	}
	return cfg, nil
}

// OpenS3 connects and creates the bucket when it does not exist yet.
func OpenS3(ctx context.Context, rawURL string) (*S3, error) {
	cfg, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	ok, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("s3 bucket %s: %w", cfg.Bucket, err)
	}
	if !ok {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("s3 create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// s3Err maps a missing object to ErrNotFound and wraps everything else with op and key.
func s3Err(op, key string, err error) error {
	if minio.ToErrorResponse(err).Code == minio.NoSuchKey {
		return ErrNotFound
	}
	return fmt.Errorf("s3 %s %s: %w", op, key, err)
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s3Err("get", key, err)
	}
	defer func() { _ = obj.Close() }()

	// GetObject is lazy; a missing key surfaces on the first read.
	b, err := io.ReadAll(obj)
	if err != nil {
		return nil, s3Err("get", key, err)
	}
	return b, nil
}

func (s *S3) Put(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// Delete stats first: RemoveObject succeeds for missing keys.
func (s *S3) Delete(ctx context.Context, key string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return s3Err("stat", key, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (s *S3) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; the client holds no connection that needs releasing.
func (s *S3) Close() error { return nil }
