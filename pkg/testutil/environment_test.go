package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEnvironment(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly).WithFiles(map[string]string{
		"package.json":            `{}`,
		".vscode/extensions.json": `{"recommendations": []}`,
	})

	assert.Equal(t, MemoryRoot, env.Root)
	assert.True(t, env.Exists(".vscode/extensions.json"))
	assert.False(t, env.Exists("tslint.json"))
	assert.Equal(t, `{}`, env.ReadFile("package.json"))
	assert.Equal(t, map[string]string{"package.json": `{}`}, env.Snapshot("package.json"))
}

func TestIsolatedEnvironment(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated)
	env.WriteFile("nested/dir/file.txt", "hello")

	data, err := os.ReadFile(filepath.Join(env.Root, "nested", "dir", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "1", os.Getenv("NO_COLOR"))

	env.UserConfig("[options]\nx = 1\n")
	_, err = os.Stat(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "projsync", "config.toml"))
	assert.NoError(t, err)
}
