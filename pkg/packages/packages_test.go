package packages

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeduplicates(t *testing.T) {
	var r Request
	r.Add("eslint", "babel-eslint")
	r.Add("eslint", " ", "eslint-config-airbnb")
	r.Add("babel-eslint")

	assert.Equal(t, []string{"eslint", "babel-eslint", "eslint-config-airbnb"}, r.ToOrderedList())
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("babel-eslint"))
	assert.False(t, r.Contains("prettier"))

	list := r.ToOrderedList()
	list[0] = "mutated"
	assert.Equal(t, "eslint", r.ToOrderedList()[0], "returned slice is a copy")
}

type call struct {
	dir  string
	name string
	args []string
}

func recordingRunner(calls *[]call, out []byte, err error) CommandRunner {
	return func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{dir: dir, name: name, args: args})
		return out, err
	}
}

func TestNodeInstallerCommand(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/p", 0755))

	n := NewNodeInstaller(fsys, "/p", ManagerAuto)
	name, args := n.Command([]string{"eslint"}, true)
	assert.Equal(t, "npm", name)
	assert.Equal(t, []string{"install", "--save-dev", "eslint"}, args)

	name, args = n.Command([]string{"angular-unit-test-helper"}, false)
	assert.Equal(t, "npm", name)
	assert.Equal(t, []string{"install", "--save", "angular-unit-test-helper"}, args)

	require.NoError(t, fsys.WriteFile("/p/yarn.lock", nil, 0644))
	name, args = n.Command([]string{"eslint", "prettier"}, true)
	assert.Equal(t, "yarn", name)
	assert.Equal(t, []string{"add", "--dev", "eslint", "prettier"}, args)

	n.Manager = ManagerNpm
	name, _ = n.Command([]string{"eslint"}, true)
	assert.Equal(t, "npm", name, "explicit manager wins over yarn.lock")
}

func TestNodeInstallerInstall(t *testing.T) {
	var calls []call
	n := NewNodeInstaller(filesystem.NewMemory(), "/p", ManagerNpm)
	n.Run = recordingRunner(&calls, []byte("added 2 packages"), nil)

	require.NoError(t, n.Install(context.Background(), []string{"eslint", "babel-eslint"}, true))
	require.Len(t, calls, 1)
	assert.Equal(t, "/p", calls[0].dir)
	assert.Equal(t, []string{"install", "--save-dev", "eslint", "babel-eslint"}, calls[0].args)

	require.NoError(t, n.Install(context.Background(), nil, true))
	assert.Len(t, calls, 1, "empty request does not invoke the package manager")
}

func TestNodeInstallerFailure(t *testing.T) {
	var calls []call
	n := NewNodeInstaller(filesystem.NewMemory(), "/p", ManagerYarn)
	n.Run = recordingRunner(&calls, []byte("network down\n"), stderrors.New("exit status 1"))

	err := n.Install(context.Background(), []string{"prettier"}, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallFailure))
	assert.Equal(t, "network down", errors.GetErrorDetails(err)["output"])
	assert.Len(t, calls, 1, "installs are not retried")
}
