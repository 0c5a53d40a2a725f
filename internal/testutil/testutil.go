// Package testutil provides shared test helpers for config files and the process environment.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DashScopeEnvKeys are the environment variables read by the config loader.
var DashScopeEnvKeys = []string{"DASHSCOPE_API_KEY", "DASHSCOPE_MODEL"}

// SetupTestConfig writes content as config.yml under dir and returns its path.
func SetupTestConfig(t *testing.T, dir, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// UnsetEnv removes the variables for the duration of the test and restores them afterwards.
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// Chdir switches the working directory until the test ends.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}
