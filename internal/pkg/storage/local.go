package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects as files under a directory. The HTTP layer serves the
// directory under the public base path.
type Local struct {
	dir        string
	publicBase string
}

// NewLocal creates the directory if needed.
func NewLocal(dir, publicBase string) (*Local, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: local dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir returns the root directory.
func (l *Local) Dir() string { return l.dir }

// Put writes to a temporary file and renames it, so readers never see a
// partial object.
func (l *Local) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	key = normalizeObjectKey(key)
	if !validObjectKey(key) {
		return "", ErrInvalidKey
	}
	target := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("commit object: %w", err)
	}
	return l.URL(key), nil
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	key = normalizeObjectKey(key)
	if !validObjectKey(key) {
		return nil, ErrInvalidKey
	}
	data, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (l *Local) URL(key string) string {
	return l.publicBase + "/" + normalizeObjectKey(key)
}
