package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// minimalConfigYAML returns the smallest config that passes validateConfig.
func minimalConfigYAML() string {
	return `project:
  name: demo
  version: 0.1.0
messages:
  welcome: hi
  error: oops
  success: done
features:
  logging: true
constants:
  max_buffer_size: 8
  default_timeout: 1
  pi: 3
`
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// loadTestdata decodes testdata/<name> through loadConfig.
func loadTestdata(t *testing.T, name string) (*Config, []byte) {
	t.Helper()
	p := filepath.Join("testdata", name)
	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	cfg, err := loadConfig(p, raw)
	require.NoError(t, err)
	return cfg, raw
}
