package catalog

import (
	"embed"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/types"
)

// LocalDir holds project-local catalogs, relative to the project root.
const LocalDir = ".projsync/tasks"

//go:embed builtin/*.yaml
var builtin embed.FS

// Registry maps task names to catalogs.
type Registry struct {
	catalogs map[string]*Catalog
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{catalogs: make(map[string]*Catalog)}
}

// Builtin returns a registry holding the embedded catalogs.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	entries, err := fs.ReadDir(builtin, "builtin")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot list embedded catalogs")
	}
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "cannot read embedded catalog %s", name)
		}
		c, err := Parse(data, "builtin:"+e.Name())
		if err != nil {
			return nil, err
		}
		r.Add(c)
	}
	return r, nil
}

// Add registers c, replacing any catalog with the same name.
func (r *Registry) Add(c *Catalog) {
	if prev, ok := r.catalogs[c.Name]; ok {
		logger := logging.GetLogger("catalog.registry")
		logger.Debug().
			Str("task", c.Name).
			Str("replaced", prev.Source).
			Str("by", c.Source).
			Msg("Catalog overridden")
	}
	r.catalogs[c.Name] = c
}

// LoadDir adds every *.yaml and *.yml catalog in dir. A missing directory is
// not an error.
func (r *Registry) LoadDir(fsys types.FS, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if _, statErr := fsys.Stat(dir); statErr != nil {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir).WithPath(dir)
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		data, err := fsys.ReadFile(p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", p).WithPath(p)
		}
		c, err := Parse(data, p)
		if err != nil {
			return err
		}
		r.Add(c)
	}
	return nil
}

// Lookup returns the catalog called name.
func (r *Registry) Lookup(name string) (*Catalog, error) {
	c, ok := r.catalogs[name]
	if !ok {
		return nil, errors.Newf(errors.ErrTaskNotFound, "unknown task %q (available: %s)", name, strings.Join(r.Names(), ", ")).
			WithDetail("task", name)
	}
	return c, nil
}

// Names returns every task name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForProject returns the built-in catalogs overlaid with the ones found in
// the project's LocalDir.
func ForProject(fsys types.FS, root string) (*Registry, error) {
	r, err := Builtin()
	if err != nil {
		return nil, err
	}
	if err := r.LoadDir(fsys, filepath.Join(root, LocalDir)); err != nil {
		return nil, err
	}
	return r, nil
}
