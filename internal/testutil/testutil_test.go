package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tests := []struct {
		name    string
		subdir  string
		content string
	}{
		{
			name:    "empty config",
			content: "",
		},
		{
			name:    "nested directory is created",
			subdir:  filepath.Join("a", "b"),
			content: "dashscope:\n  model: qwen-plus\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.subdir)
			got := SetupTestConfig(t, dir, tt.content)

			assert.Equal(t, filepath.Join(dir, "config.yml"), got)
			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(content))
		})
	}
}

func TestUnsetEnv(t *testing.T) {
	const key = "AGRICHAT_TESTUTIL_UNSET"
	t.Setenv(key, "value")

	t.Run("unset", func(t *testing.T) {
		UnsetEnv(t, key)
		_, ok := os.LookupEnv(key)
		assert.False(t, ok)
	})

	assert.Equal(t, "value", os.Getenv(key))
}

func TestChdir(t *testing.T) {
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()

	t.Run("chdir", func(t *testing.T) {
		Chdir(t, dir)
		got, err := os.Getwd()
		require.NoError(t, err)
		wantDir, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		gotDir, err := filepath.EvalSymlinks(got)
		require.NoError(t, err)
		assert.Equal(t, wantDir, gotDir)
	})

	got, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, originalDir, got)
}
