// Package storage keeps synthesized audio in a local directory or an S3
// compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcfg "github.com/gracepath/core/internal/config"
)

var (
	ErrNotFound   = errors.New("storage: object not found")
	ErrInvalidKey = errors.New("storage: invalid object key")
)

// Storage is the put/get capability used for audio artifacts.
type Storage interface {
	// Put writes data under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	URL(key string) string
}

// New builds the configured backend. resolve maps a relative local directory
// to an absolute one.
func New(cfg appcfg.StorageConfig, resolve func(string) string) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		dir := cfg.LocalDir
		if resolve != nil {
			dir = resolve(dir)
		}
		return NewLocal(dir, cfg.PublicBaseURL)
	case "s3":
		return NewS3(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

func normalizeObjectKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

func validObjectKey(key string) bool {
	if key == "" {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
