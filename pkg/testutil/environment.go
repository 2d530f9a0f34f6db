// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test projects with proper isolation

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/projsync/pkg/filesystem"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// MemoryRoot is the project root used by memory environments.
const MemoryRoot = "/project"

// TestEnvironment is a project directory plus the filesystem it lives on.
type TestEnvironment struct {
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Isolated environments
// also point XDG_CONFIG_HOME and XDG_STATE_HOME at temp directories and set
// NO_COLOR, so nothing from the developer's machine leaks in.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = MemoryRoot
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		base := t.TempDir()
		env.Root = filepath.Join(base, "project")
		env.FS = filesystem.NewOS()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
		t.Setenv("NO_COLOR", "1")
	default:
		t.Fatalf("unknown environment type %d", envType)
	}
	require.NoError(t, env.FS.MkdirAll(env.Root, 0755))
	return env
}

// WithFiles writes every file in files, relative to Root.
func (e *TestEnvironment) WithFiles(files map[string]string) *TestEnvironment {
	e.t.Helper()
	for name, content := range files {
		e.WriteFile(name, content)
	}
	return e
}

// Path returns the absolute path of name inside the project.
func (e *TestEnvironment) Path(name string) string {
	return filepath.Join(e.Root, name)
}

// WriteFile writes content to name, creating parent directories.
func (e *TestEnvironment) WriteFile(name, content string) {
	e.t.Helper()
	p := e.Path(name)
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, e.FS.WriteFile(p, []byte(content), 0644))
}

// ReadFile returns the content of name and fails the test if it is missing.
func (e *TestEnvironment) ReadFile(name string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Path(name))
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether name exists in the project.
func (e *TestEnvironment) Exists(name string) bool {
	_, err := e.FS.Stat(e.Path(name))
	return err == nil
}

// Snapshot returns the content of every named file.
func (e *TestEnvironment) Snapshot(names ...string) map[string]string {
	e.t.Helper()
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = e.ReadFile(name)
	}
	return out
}

// UserConfig writes the user-level config file of an isolated environment.
func (e *TestEnvironment) UserConfig(content string) {
	e.t.Helper()
	require.Equal(e.t, EnvIsolated, e.Type, "user config needs an isolated environment")
	p := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "projsync", "config.toml")
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}
