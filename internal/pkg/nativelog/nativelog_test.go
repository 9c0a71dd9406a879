package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDirPrefersExplicitThenEnv(t *testing.T) {
	t.Setenv(EnvLogDir, "/var/log/gracepath")
	assert.Equal(t, "/tmp/x", ResolveDir(" /tmp/x "))
	assert.Equal(t, "/var/log/gracepath", ResolveDir(""))
}

func TestWriterAppendsToDailyFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC) }

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "gracepath_2026-04-05.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
