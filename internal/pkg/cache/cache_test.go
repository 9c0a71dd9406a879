package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func newSQLite(t *testing.T, clock *testClock) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache_test.db"), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeyIgnoresParamOrderAndWhitespace(t *testing.T) {
	a := Key("speech", map[string]string{"text": "Lord,  hear\n our prayer", "voice": "nova"})
	b := Key("speech", map[string]string{"voice": "nova", "text": " Lord, hear our prayer "})
	c := Key("speech", map[string]string{"voice": "alloy", "text": "Lord, hear our prayer"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^speech:[0-9a-f]{64}$`, a)
}

func TestKeySeparatesNameValueBoundaries(t *testing.T) {
	a := Key("ns", map[string]string{"a": "b=c"})
	b := Key("ns", map[string]string{"a=b": "c"})
	assert.NotEqual(t, a, b)
}

func TestKeyValueCannotForgeParams(t *testing.T) {
	forged := Key("tts", map[string]string{"text": "Amen\x1fvoice=nova"})
	genuine := Key("tts", map[string]string{"text": "Amen", "voice": "nova"})
	assert.NotEqual(t, forged, genuine)
}

func newRedis(t *testing.T, clock *testClock) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, WithClock(clock.Now)), mr
}

func TestDailyKey(t *testing.T) {
	date := time.Date(2026, 4, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "daily:2026-04-05:es", DailyKey("daily", date, "es"))
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T, clock *testClock) Store{
		"memory": func(_ *testing.T, clock *testClock) Store { return NewMemory(WithClock(clock.Now)) },
		"sqlite": func(t *testing.T, clock *testClock) Store { return newSQLite(t, clock) },
		"redis": func(t *testing.T, clock *testClock) Store {
			s, _ := newRedis(t, clock)
			return s
		},
	}

	for name, build := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("get after put returns identical bytes", func(t *testing.T) {
				clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
				s := build(t, clock)
				payload := []byte{0x00, 0xff, 'm', 'p', '3'}

				require.NoError(t, s.Put(ctx, "k", payload, time.Hour))
				e, err := s.Get(ctx, "k")
				require.NoError(t, err)
				require.NotNil(t, e)
				assert.Equal(t, payload, e.Payload)
				assert.True(t, e.CreatedAt.Equal(clock.t))
				assert.True(t, e.ExpiresAt.Equal(clock.t.Add(time.Hour)))
			})

			t.Run("absent after ttl", func(t *testing.T) {
				clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
				s := build(t, clock)
				require.NoError(t, s.Put(ctx, "k", []byte("x"), time.Minute))

				clock.t = clock.t.Add(time.Minute)
				e, err := s.Get(ctx, "k")
				require.NoError(t, err)
				assert.NotNil(t, e, "entry is still valid at its expiry instant")

				clock.t = clock.t.Add(time.Millisecond)
				e, err = s.Get(ctx, "k")
				require.NoError(t, err)
				assert.Nil(t, e)
			})

			t.Run("missing key", func(t *testing.T) {
				s := build(t, &testClock{t: time.Now()})
				e, err := s.Get(ctx, "nope")
				require.NoError(t, err)
				assert.Nil(t, e)
			})

			t.Run("put replaces", func(t *testing.T) {
				s := build(t, &testClock{t: time.Now()})
				require.NoError(t, s.Put(ctx, "k", []byte("one"), time.Hour))
				require.NoError(t, s.Put(ctx, "k", []byte("two"), time.Hour))
				e, err := s.Get(ctx, "k")
				require.NoError(t, err)
				require.NotNil(t, e)
				assert.Equal(t, "two", string(e.Payload))
			})

			t.Run("invalid ttl", func(t *testing.T) {
				s := build(t, &testClock{t: time.Now()})
				assert.ErrorIs(t, s.Put(ctx, "k", []byte("x"), 0), ErrInvalidTTL)
			})

			t.Run("sweep", func(t *testing.T) {
				clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
				s := build(t, clock)
				sweeper, ok := s.(Sweeper)
				if !ok {
					t.Skip("store expires entries natively")
				}
				require.NoError(t, s.Put(ctx, "short", []byte("x"), time.Minute))
				require.NoError(t, s.Put(ctx, "long", []byte("y"), time.Hour))

				n, err := sweeper.Sweep(ctx, clock.t.Add(2*time.Minute))
				require.NoError(t, err)
				assert.Equal(t, 1, n)

				e, err := s.Get(ctx, "long")
				require.NoError(t, err)
				assert.NotNil(t, e)
			})
		})
	}
}

func TestRedisStoreNativeExpiry(t *testing.T) {
	clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s, mr := newRedis(t, clock)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tts:abc", []byte("ID3"), time.Minute))
	assert.True(t, mr.Exists(RedisPrefix+"tts:abc"))
	assert.Equal(t, time.Minute, mr.TTL(RedisPrefix+"tts:abc"))

	mr.FastForward(time.Minute)
	e, err := s.Get(ctx, "tts:abc")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRedisStoreErrors(t *testing.T) {
	clock := &testClock{t: time.Now()}
	s, mr := newRedis(t, clock)
	ctx := context.Background()

	require.NoError(t, mr.Set(RedisPrefix+"broken", "not json"))
	_, err := s.Get(ctx, "broken")
	assert.Error(t, err)

	mr.Close()
	_, err = s.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, s.Put(ctx, "k", []byte("x"), time.Minute))
}

func TestMemoryPayloadIsCopied(t *testing.T) {
	m := NewMemory()
	payload := []byte("amen")
	require.NoError(t, m.Put(context.Background(), "k", payload, time.Hour))
	payload[0] = 'X'

	e, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	e.Payload[1] = 'Y'

	again, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "amen", string(again.Payload))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	clock := &testClock{t: time.Now()}

	s, err := OpenSQLite(path, WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "k", []byte("kept"), time.Hour))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, WithClock(clock.Now))
	require.NoError(t, err)
	defer s.Close()
	e, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "kept", string(e.Payload))
}
