package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/types"
)

const (
	// EnvProjectRoot overrides project discovery
	EnvProjectRoot = "PROJSYNC_PROJECT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// ManifestFile marks a project root during discovery
	ManifestFile = "package.json"
)

// Root is a resolved project directory.
type Root struct {
	Path string
	// Source is one of "flag", "env", "manifest" or "cwd".
	Source string
	// UsedFallback is true when no project marker was found and the
	// working directory was used as is.
	UsedFallback bool
}

// FindProjectRoot resolves the project directory. explicit is the value of
// the --project flag (may be empty) and start is the directory discovery
// walks up from, normally the working directory.
func FindProjectRoot(fsys types.FS, explicit, start string) (Root, error) {
	logger := logging.GetLogger("paths")

	var root Root
	switch {
	case explicit != "":
		root = Root{Path: ExpandHome(explicit), Source: "flag"}
	case os.Getenv(EnvProjectRoot) != "":
		root = Root{Path: ExpandHome(os.Getenv(EnvProjectRoot)), Source: "env"}
	default:
		abs, err := filepath.Abs(start)
		if err != nil {
			return Root{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", start)
		}
		if dir, ok := findManifestDir(fsys, abs); ok {
			root = Root{Path: dir, Source: "manifest"}
		} else {
			root = Root{Path: abs, Source: "cwd", UsedFallback: true}
		}
	}

	abs, err := filepath.Abs(root.Path)
	if err != nil {
		return Root{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", root.Path)
	}
	root.Path = abs

	if err := validateDir(fsys, root.Path); err != nil {
		return Root{}, err
	}

	logger.Debug().
		Str("root", root.Path).
		Str("source", root.Source).
		Bool("fallback", root.UsedFallback).
		Msg("Resolved project root")
	return root, nil
}

// findManifestDir walks up from dir looking for ManifestFile.
func findManifestDir(fsys types.FS, dir string) (string, bool) {
	for {
		if _, err := fsys.Stat(filepath.Join(dir, ManifestFile)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func validateDir(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "project directory %s does not exist", path).WithPath(path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "project directory %s is not a directory", path).WithPath(path)
	}
	return nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
