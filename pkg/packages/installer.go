package packages

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/rs/zerolog"
)

// Installer installs a set of packages as one unit.
type Installer interface {
	Install(ctx context.Context, names []string, dev bool) error
}

// Package manager names accepted by NodeInstaller.
const (
	ManagerAuto = "auto"
	ManagerNpm  = "npm"
	ManagerYarn = "yarn"
)

// DefaultTimeout bounds a single install invocation.
const DefaultTimeout = 10 * time.Minute

// CommandRunner runs name with args in dir and returns combined output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// NodeInstaller installs packages with npm or yarn inside a project directory.
type NodeInstaller struct {
	Dir     string
	Manager string
	FS      types.FS
	Run     CommandRunner
	Timeout time.Duration

	logger zerolog.Logger
}

// NewNodeInstaller creates an installer for the project at dir. manager is
// "auto", "npm" or "yarn"; auto picks yarn when yarn.lock exists.
func NewNodeInstaller(fsys types.FS, dir, manager string) *NodeInstaller {
	return &NodeInstaller{
		Dir:     dir,
		Manager: manager,
		FS:      fsys,
		Run:     execRunner,
		Timeout: DefaultTimeout,
		logger:  logging.GetLogger("packages.installer"),
	}
}

// ResolveManager returns the concrete package manager to use.
func (n *NodeInstaller) ResolveManager() string {
	switch n.Manager {
	case ManagerNpm, ManagerYarn:
		return n.Manager
	}
	if n.FS != nil {
		if _, err := n.FS.Stat(filepath.Join(n.Dir, "yarn.lock")); err == nil {
			return ManagerYarn
		}
	}
	return ManagerNpm
}

// Command returns the program and arguments that install names.
func (n *NodeInstaller) Command(names []string, dev bool) (string, []string) {
	manager := n.ResolveManager()
	var args []string
	if manager == ManagerYarn {
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	} else {
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		} else {
			args = append(args, "--save")
		}
	}
	return manager, append(args, names...)
}

// Install runs the package manager once for all names. Any failure fails
// the whole set; nothing is retried.
func (n *NodeInstaller) Install(ctx context.Context, names []string, dev bool) error {
	if len(names) == 0 {
		return nil
	}

	name, args := n.Command(names, dev)
	logging.LogCommand(n.Dir, name, args)
	n.logger.Info().
		Str("manager", name).
		Strs("packages", names).
		Bool("dev", dev).
		Msg("Installing packages")

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := n.Run
	if run == nil {
		run = execRunner
	}
	output, err := run(ctx, n.Dir, name, args...)
	if len(output) > 0 {
		n.logger.Debug().Str("output", string(output)).Msg("Package manager output")
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailure, "%s failed to install %d package(s)", name, len(names)).
			WithDetail("manager", name).
			WithDetail("packages", names).
			WithDetail("output", string(bytes.TrimSpace(output)))
	}
	return nil
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
