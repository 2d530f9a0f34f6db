// TEST TYPE: Integration Test
// DEPENDENCIES: temp directories on the real filesystem
// PURPOSE: Drive the CLI end to end without installing packages

package projsync

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	return testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithFiles(files).Root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunEslint(t *testing.T) {
	isolateEnv(t)
	dir := newProject(t, map[string]string{
		"package.json": `{"name": "pizza", "scripts": {"test": "jest"}}`,
	})

	out, err := execute(t, "run", "eslint", "--project", dir, "--opt", "name=pizza", "--skip-install")
	require.NoError(t, err)
	assert.Contains(t, out, "Changed")
	assert.Contains(t, out, ".eslintrc (created)")
	assert.Contains(t, out, "Packages (not installed)")

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{
  "name": "pizza",
  "scripts": {
    "test": "jest",
    "lint": "eslint . --cache --fix",
    "pretest": "npm run lint"
  }
}
`, string(pkg))

	out, err = execute(t, "run", "eslint", "--project", dir, "--opt", "name=pizza", "--skip-install")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to do, project is up to date")
}

func TestRunMissingOption(t *testing.T) {
	isolateEnv(t)
	dir := newProject(t, map[string]string{"package.json": `{}`})

	_, err := execute(t, "run", "eslint", "--project", dir, "--skip-install")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingOption))

	_, statErr := os.Stat(filepath.Join(dir, ".eslintrc"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunJSONWithMalformedDocument(t *testing.T) {
	isolateEnv(t)
	dir := newProject(t, map[string]string{
		"package.json": `{"devDependencies": {"tslint": "5"}}`,
		"tslint.json":  `{"extends": `,
	})

	out, err := execute(t, "run", "prettier-tslint", "--project", dir, "--json", "--dry-run")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStepExecute))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["dry_run"])
	failed := got["failed"].([]interface{})
	require.Len(t, failed, 1)
	assert.Equal(t, "tslint.json", failed[0].(map[string]interface{})["path"])

	_, statErr := os.Stat(filepath.Join(dir, ".prettierrc"))
	assert.True(t, os.IsNotExist(statErr), "dry run writes nothing")
}

func TestRunUnknownTask(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "run", "webpack", "--project", newProject(t, nil))
	assert.True(t, errors.IsErrorCode(err, errors.ErrTaskNotFound))
}

func TestRunBadProjectDir(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "run", "eslint", "--project", filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestListIncludesLocalTasks(t *testing.T) {
	isolateEnv(t)
	dir := newProject(t, map[string]string{
		".projsync/tasks/house.yaml": "name: house\ndescription: House style\nsteps:\n  - packages: [eslint]\n",
	})

	out, err := execute(t, "list", "--project", dir, "--json")
	require.NoError(t, err)

	var got struct {
		Tasks []struct {
			Name   string `json:"name"`
			Source string `json:"source"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	var names []string
	for _, tk := range got.Tasks {
		names = append(names, tk.Name)
		if tk.Name == "house" {
			assert.Equal(t, filepath.Join(".projsync", "tasks", "house.yaml"), tk.Source)
		}
	}
	assert.Equal(t, []string{"angular", "eslint", "house", "prettier-tslint"}, names)
}

func TestConfigShowsLayers(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithFiles(map[string]string{
		".projsync.toml": "[install]\nmanager = \"yarn\"\n",
	})
	env.UserConfig("[install]\nmanager = \"npm\"\ntimeout = \"2m\"\n")

	out, err := execute(t, "config", "eslint", "--project", env.Root, "--opt", "eslint_preset=airbnb")
	require.NoError(t, err)
	assert.Contains(t, out, "# effective configuration for eslint")
	assert.Contains(t, out, "manager = 'yarn'", "project config beats user config")
	assert.Contains(t, out, "eslint_preset = 'airbnb'")
	assert.Contains(t, out, "timeout = '2m0s'", "user config beats defaults")
}

func TestVersionAndCompletion(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "projsync version")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "projsync")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestManWritesPages(t *testing.T) {
	isolateEnv(t)
	dir := filepath.Join(t.TempDir(), "man")

	_, err := execute(t, "man", "--dir", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "projsync-run.1"))
	assert.NoError(t, err)
}

func TestNoCommand(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
