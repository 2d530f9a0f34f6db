// TEST TYPE: Unit Tests
// DEPENDENCIES: afero memory filesystem, temp dir for the user config
// PURPOSE: Verify configuration layering and option accessors

package options

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadInput{FS: filesystem.NewMemory(), ProjectDir: "/p"})
	require.NoError(t, err)
	assert.True(t, cfg.Install.Enabled)
	assert.Equal(t, "auto", cfg.Install.Manager)
	assert.Equal(t, 10*time.Minute, cfg.Install.Timeout)
	assert.NotNil(t, cfg.Options)
	assert.Empty(t, cfg.Options)
}

func TestLoadLayerPrecedence(t *testing.T) {
	configHome := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "projsync"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "projsync", "config.toml"), []byte(`
[install]
manager = "yarn"

[options]
eslint_preset = "user"
editor = "vscode"
`), 0644))

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/p", 0755))
	require.NoError(t, fsys.WriteFile("/p/.projsync.toml", []byte(`
[options]
eslint_preset = "project"
indent = 4
`), 0644))

	t.Setenv("PROJSYNC_OPTIONS_EDITOR", "vim")

	cfg, err := Load(LoadInput{
		FS:         fsys,
		ProjectDir: "/p",
		TaskDefaults: map[string]interface{}{
			"eslint_preset": "airbnb",
			"eslint_peer":   "eslint-config-airbnb",
			"indent":        2,
		},
		Overrides: map[string]interface{}{"indent": "8"},
	})
	require.NoError(t, err)

	assert.Equal(t, "yarn", cfg.Install.Manager, "user config overrides embedded defaults")
	assert.Equal(t, "project", cfg.Options.String("eslint_preset"), "project config overrides user config")
	assert.Equal(t, "eslint-config-airbnb", cfg.Options.String("eslint_peer"), "task defaults survive")
	assert.Equal(t, "vim", cfg.Options.String("editor"), "environment overrides files")
	assert.Equal(t, "8", cfg.Options.String("indent"), "command line wins")
}

func TestLoadEnvInstallSection(t *testing.T) {
	isolate(t)
	t.Setenv("PROJSYNC_INSTALL_ENABLED", "false")

	cfg, err := Load(LoadInput{FS: filesystem.NewMemory(), ProjectDir: "/p"})
	require.NoError(t, err)
	assert.False(t, cfg.Install.Enabled)
}

func TestLoadMalformedProjectConfig(t *testing.T) {
	isolate(t)
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/p", 0755))
	require.NoError(t, fsys.WriteFile("/p/.projsync.toml", []byte("[options\nbroken"), 0644))

	_, err := Load(LoadInput{FS: fsys, ProjectDir: "/p"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	path, ok := errors.GetPath(err)
	assert.True(t, ok)
	assert.Equal(t, "/p/.projsync.toml", path)
}

func TestOptionsAccessors(t *testing.T) {
	o := Options{
		"preset":  "airbnb",
		"blank":   "  ",
		"flag":    true,
		"flagStr": "true",
		"count":   int64(3),
		"zero":    int64(0),
		"nothing": nil,
	}

	assert.True(t, o.Has("preset"))
	assert.False(t, o.Has("blank"))
	assert.False(t, o.Has("nothing"))
	assert.False(t, o.Has("absent"))

	assert.Equal(t, "airbnb", o.String("preset"))
	assert.Equal(t, "3", o.String("count"))
	assert.Equal(t, "", o.String("absent"))

	assert.True(t, o.Bool("flag"))
	assert.True(t, o.Bool("flagStr"))
	assert.True(t, o.Bool("count"))
	assert.False(t, o.Bool("zero"))
	assert.False(t, o.Bool("preset"))

	v, ok := o.Lookup("preset")
	assert.True(t, ok)
	assert.Equal(t, "airbnb", v)

	all := o.All()
	all["preset"] = "changed"
	assert.Equal(t, "airbnb", o.String("preset"), "All returns a copy")
}

func TestRequire(t *testing.T) {
	o := Options{"preset": "airbnb", "blank": ""}

	assert.NoError(t, o.Require("preset"))
	assert.NoError(t, o.Require())

	err := o.Require("preset", "blank", "peer", "peer")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingOption))
	assert.Equal(t, []string{"blank", "peer"}, errors.GetErrorDetails(err)["options"])
	assert.Contains(t, err.Error(), "blank, peer")
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides([]string{"preset=airbnb", "strict=true", "loose=false", "expr=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"preset": "airbnb",
		"strict": true,
		"loose":  false,
		"expr":   "a=b",
	}, got)

	_, err = ParseOverrides([]string{"novalue"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = ParseOverrides([]string{"=x"})
	assert.Error(t, err)
}
