package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad(t *testing.T) {
	t.Run("defaults without environment", func(t *testing.T) {
		c := NewConfig()
		require.NoError(t, c.Load(filepath.Join(t.TempDir(), "missing.env")))
		assert.Equal(t, "https://versatileapi.herokuapp.com", c.API)
		assert.Equal(t, 100, c.Limit)
		assert.False(t, c.Offline)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("POSTBOARD_API", "http://localhost:9000")
		t.Setenv("POSTBOARD_LIMIT", "20")
		t.Setenv("POSTBOARD_OFFLINE", "true")
		t.Setenv("PORT", "9999")
		c := NewConfig()
		require.NoError(t, c.Load(filepath.Join(t.TempDir(), "missing.env")))
		assert.Equal(t, "http://localhost:9000", c.API)
		assert.Equal(t, 20, c.Limit)
		assert.True(t, c.Offline)
		assert.Equal(t, ":9999", c.Server)
	})

	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("POSTBOARD_LANGUAGE=ja\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("POSTBOARD_LANGUAGE") })
		c := NewConfig()
		require.NoError(t, c.Load(path))
		assert.Equal(t, "ja", c.Language)
	})
}
