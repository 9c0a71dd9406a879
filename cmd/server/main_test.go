package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gracepath/core/internal/modules/processing/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScriptureCommand(t *testing.T) {
	out, err := execute(t, "", "scripture", "hope", "--lang", "es", "--season", "lent", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Jeremías 29:11")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestModerateCommandReadsStdin(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")

	out, err := execute(t, "please pray for a guaranteed miracle", "moderate", "--config", missing)
	require.NoError(t, err)

	var verdict moderation.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &verdict))
	assert.False(t, verdict.Appropriate)
	assert.Equal(t, moderation.CodeWarningPhrase, verdict.Code)

	_, err = execute(t, "   ", "moderate", "--config", missing)
	assert.Error(t, err)
}

func TestCacheSweepRequiresSQLite(t *testing.T) {
	_, err := execute(t, "", "cache", "sweep", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
