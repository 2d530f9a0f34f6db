package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/arthur-debert/projsync/pkg/conditions"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/arthur-debert/projsync/pkg/merge"
	"github.com/arthur-debert/projsync/pkg/options"
	"github.com/arthur-debert/projsync/pkg/steps"
	"github.com/arthur-debert/projsync/pkg/task"
	"gopkg.in/yaml.v3"
)

// Build renders the catalog against opts and returns its steps. Required
// options are checked before any template is rendered and also become a
// leading Require step.
func (c *Catalog) Build(opts options.Options) ([]steps.Step, error) {
	if err := opts.Require(c.Required...); err != nil {
		return nil, err
	}
	r := &renderer{catalog: c, data: opts.All()}
	var out []steps.Step
	if len(c.Required) > 0 {
		out = append(out, steps.Require(c.Required...))
	}
	built, err := r.steps(c.Steps)
	if err != nil {
		return nil, err
	}
	return append(out, built...), nil
}

// Task builds a runnable task.
func (c *Catalog) Task(opts options.Options) (task.Task, error) {
	list, err := c.Build(opts)
	if err != nil {
		return task.Task{}, err
	}
	return task.Task{Name: c.Name, Description: c.Description, Steps: list, Dev: c.Dev()}, nil
}

type renderer struct {
	catalog *Catalog
	data    map[string]interface{}
}

func (r *renderer) steps(list []StepSpec) ([]steps.Step, error) {
	out := make([]steps.Step, 0, len(list))
	for i := range list {
		s, err := r.step(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *renderer) step(s *StepSpec) (steps.Step, error) {
	switch s.Kind() {
	case "json":
		value, err := r.node(&s.Value)
		if err != nil {
			return nil, err
		}
		path, err := r.text(s.Path)
		if err != nil {
			return nil, err
		}
		kind, err := merge.ParseStrategy(s.Strategy)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrTaskInvalid, "invalid strategy").WithPath(r.catalog.Source)
		}
		switch kind {
		case merge.Overwrite:
			return steps.SetJSON(s.JSON, path, value), nil
		case merge.UnionAppend:
			entries, ok := value.([]interface{})
			if !ok {
				entries = []interface{}{value}
			}
			return steps.UnionJSON(s.JSON, path, entries...), nil
		default:
			return steps.MergeJSON(s.JSON, path, value), nil
		}

	case "lines":
		entries, err := r.texts(s.Add)
		if err != nil {
			return nil, err
		}
		return steps.AddLines(s.Lines, entries...), nil

	case "script":
		command, err := r.text(s.Command)
		if err != nil {
			return nil, err
		}
		if s.Position == "" {
			return steps.SetScript(s.Script, command), nil
		}
		return steps.ComposeScript(s.Script, command, merge.Position(s.Position), s.Separator), nil

	case "packages":
		names, err := r.texts(s.Packages)
		if err != nil {
			return nil, err
		}
		return steps.Install(names...), nil

	case "require":
		return steps.Require(s.Require...), nil

	case "when", "dependsOn":
		nested, err := r.steps(s.Steps)
		if err != nil {
			return nil, err
		}
		if s.DependsOn != "" {
			return steps.When(steps.Rule(conditions.DependsOn(s.DependsOn)), nested...), nil
		}
		return steps.When(steps.Expr(s.When), nested...), nil
	}
	return nil, errors.Newf(errors.ErrTaskInvalid, "catalog %s: step has no kind", r.catalog.Name).WithPath(r.catalog.Source)
}

func (r *renderer) texts(in []string) ([]string, error) {
	out := make([]string, len(in))
	for i, s := range in {
		v, err := r.text(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// text renders a template string. Strings without an action are returned
// untouched; a reference to an unset option is an error.
func (r *renderer) text(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	tmpl, err := template.New(r.catalog.Name).Option("missingkey=error").Parse(s)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTaskInvalid, "catalog %s: bad template %q", r.catalog.Name, s).
			WithPath(r.catalog.Source)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, r.data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTaskInvalid, "catalog %s: cannot render %q", r.catalog.Name, s).
			WithPath(r.catalog.Source)
	}
	return b.String(), nil
}

// node converts a YAML value into a document value, keeping mapping order
// and number literals.
func (r *renderer) node(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.node(n.Content[0])

	case yaml.AliasNode:
		return r.node(n.Alias)

	case yaml.MappingNode:
		obj := jsondoc.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := r.text(n.Content[i].Value)
			if err != nil {
				return nil, err
			}
			v, err := r.node(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil

	case yaml.SequenceNode:
		list := make([]interface{}, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := r.node(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.ScalarNode:
		return r.scalar(n)
	}
	return nil, errors.Newf(errors.ErrTaskInvalid, "catalog %s: unsupported YAML value at line %d", r.catalog.Name, n.Line).
		WithPath(r.catalog.Source)
}

func (r *renderer) scalar(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.Wrap(err, errors.ErrTaskInvalid, "bad boolean").WithPath(r.catalog.Source)
		}
		return b, nil
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, errors.Wrap(err, errors.ErrTaskInvalid, "bad integer").WithPath(r.catalog.Source)
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.ErrTaskInvalid, "bad number").WithPath(r.catalog.Source)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.Newf(errors.ErrTaskInvalid, "catalog %s: %s has no JSON form", r.catalog.Name, n.Value).
				WithPath(r.catalog.Source)
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return r.text(n.Value)
	}
}
