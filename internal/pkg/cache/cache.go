// Package cache stores generated payloads under deterministic keys.
//
// Entries are never returned once expired. Backends evict lazily on Get and
// optionally in bulk through Sweep.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrInvalidTTL is returned by Put for a non-positive ttl.
var ErrInvalidTTL = errors.New("cache: ttl must be positive")

// Entry is one cached payload.
type Entry struct {
	Key       string
	Payload   []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry must no longer be served at now.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store is the narrow cache contract. Get returns a nil entry and a nil error
// when the key is absent or expired. Put is an upsert.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Sweeper is implemented by stores that can drop expired entries in bulk.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Option configures the in-process and SQLite stores.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Key derives a cache key from a namespace and named parameters. Parameter
// order does not matter and runs of whitespace inside values collapse to one
// space, so equivalent requests share a key. Names and values are
// length-prefixed before hashing, so no value can forge another parameter set.
func Key(namespace string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	var size [binary.MaxVarintLen64]byte
	field := func(s string) {
		n := binary.PutUvarint(size[:], uint64(len(s)))
		h.Write(size[:n])
		h.Write([]byte(s))
	}
	for _, name := range names {
		field(name)
		field(normalizeValue(params[name]))
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// DailyKey derives the key of content that is shared by everyone on a
// calendar day, e.g. "daily:2026-04-05:en".
func DailyKey(namespace string, date time.Time, language string) string {
	return namespace + ":" + date.Format(time.DateOnly) + ":" + language
}

func normalizeValue(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func newEntry(key string, payload []byte, ttl time.Duration, now time.Time) *Entry {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return &Entry{
		Key:       key,
		Payload:   cp,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
