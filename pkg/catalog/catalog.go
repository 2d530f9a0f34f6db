package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arthur-debert/projsync/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Catalog is one task definition.
type Catalog struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Defaults    map[string]interface{} `yaml:"defaults"`
	Required    []string               `yaml:"required"`
	Install     InstallSpec            `yaml:"install"`
	Steps       []StepSpec             `yaml:"steps"`

	// Source is where the catalog was loaded from.
	Source string `yaml:"-"`
}

// InstallSpec configures the install at the end of the run.
type InstallSpec struct {
	// Dev defaults to true.
	Dev *bool `yaml:"dev"`
}

// StepSpec is one step as written in YAML. Exactly one of JSON, Lines,
// Script, Packages, Require, When or DependsOn selects its kind.
type StepSpec struct {
	JSON     string    `yaml:"json"`
	Path     string    `yaml:"path"`
	Strategy string    `yaml:"strategy"`
	Value    yaml.Node `yaml:"value"`

	Lines string   `yaml:"lines"`
	Add   []string `yaml:"add"`

	Script    string `yaml:"script"`
	Command   string `yaml:"command"`
	Position  string `yaml:"position"`
	Separator string `yaml:"separator"`

	Packages []string `yaml:"packages"`
	Require  []string `yaml:"require"`

	When      string     `yaml:"when"`
	DependsOn string     `yaml:"dependsOn"`
	Steps     []StepSpec `yaml:"steps"`
}

// Kind names the step form, or "" when none is set.
func (s *StepSpec) Kind() string {
	switch {
	case s.JSON != "":
		return "json"
	case s.Lines != "":
		return "lines"
	case s.Script != "":
		return "script"
	case len(s.Packages) > 0:
		return "packages"
	case len(s.Require) > 0:
		return "require"
	case s.When != "":
		return "when"
	case s.DependsOn != "":
		return "dependsOn"
	}
	return ""
}

func (s *StepSpec) kinds() int {
	n := 0
	for _, set := range []bool{
		s.JSON != "", s.Lines != "", s.Script != "", len(s.Packages) > 0,
		len(s.Require) > 0, s.When != "", s.DependsOn != "",
	} {
		if set {
			n++
		}
	}
	return n
}

// Dev reports whether packages install as development dependencies.
func (c *Catalog) Dev() bool {
	return c.Install.Dev == nil || *c.Install.Dev
}

// Parse decodes and validates a catalog. source names it in errors.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Newf(errors.ErrTaskInvalid, "catalog %s is empty", source).WithPath(source)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTaskInvalid, "cannot decode catalog %s", source).WithPath(source)
	}
	c.Source = source
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.Newf(errors.ErrTaskInvalid, "catalog %s has no name", c.Source).WithPath(c.Source)
	}
	if len(c.Steps) == 0 {
		return errors.Newf(errors.ErrTaskInvalid, "catalog %s has no steps", c.Name).WithPath(c.Source)
	}
	return validateSteps(c, c.Steps, "steps")
}

func validateSteps(c *Catalog, list []StepSpec, at string) error {
	for i := range list {
		s := &list[i]
		where := fmt.Sprintf("%s[%d]", at, i)
		fail := func(format string, args ...interface{}) error {
			return errors.Newf(errors.ErrTaskInvalid, "catalog %s: %s: %s", c.Name, where, fmt.Sprintf(format, args...)).
				WithPath(c.Source)
		}

		switch s.kinds() {
		case 0:
			return fail("step has no kind")
		case 1:
		default:
			return fail("step sets more than one of json, lines, script, packages, require, when, dependsOn")
		}

		switch s.Kind() {
		case "json":
			if s.Value.Kind == 0 {
				return fail("json step needs a value")
			}
			switch s.Strategy {
			case "", "merge", "set", "overwrite", "union":
			default:
				return fail("unknown strategy %q", s.Strategy)
			}
		case "lines":
			if len(s.Add) == 0 {
				return fail("lines step needs add")
			}
		case "script":
			if s.Command == "" {
				return fail("script step needs a command")
			}
			switch s.Position {
			case "", "before", "after":
			default:
				return fail("unknown position %q", s.Position)
			}
		case "when", "dependsOn":
			if len(s.Steps) == 0 {
				return fail("%s needs nested steps", s.Kind())
			}
			if err := validateSteps(c, s.Steps, where+".steps"); err != nil {
				return err
			}
		}
	}
	return nil
}
