package steps

import (
	"fmt"

	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/arthur-debert/projsync/pkg/merge"
)

// JSONMutation applies a merge request to one JSON document.
type JSONMutation struct {
	File    string
	Request merge.Request
	Label   string
}

// MergeJSON deep-merges value into file at path. An empty path merges into
// the document root.
func MergeJSON(file, path string, value interface{}) *JSONMutation {
	return newJSON(file, path, value, merge.Strategy{Kind: merge.DeepMerge})
}

// SetJSON overwrites the value at path.
func SetJSON(file, path string, value interface{}) *JSONMutation {
	return newJSON(file, path, value, merge.Strategy{Kind: merge.Overwrite})
}

// UnionJSON appends the entries missing from the array at path.
func UnionJSON(file, path string, entries ...interface{}) *JSONMutation {
	return newJSON(file, path, entries, merge.Strategy{Kind: merge.UnionAppend})
}

func newJSON(file, path string, value interface{}, strategy merge.Strategy) *JSONMutation {
	return &JSONMutation{
		File: file,
		Request: merge.Request{
			Path:     jsondoc.ParsePath(path),
			Desired:  value,
			Strategy: strategy,
		},
	}
}

// Name implements Step.
func (j *JSONMutation) Name() string {
	if j.Label != "" {
		return j.Label
	}
	if len(j.Request.Path) == 0 {
		return fmt.Sprintf("%s %s", j.Request.Strategy.Kind, j.File)
	}
	return fmt.Sprintf("%s %s:%s", j.Request.Strategy.Kind, j.File, j.Request.Path)
}

// Apply implements Step.
func (j *JSONMutation) Apply(rc *RunContext) error {
	doc, err := rc.Store.Get(j.File, document.JSONObject)
	if err != nil {
		return err
	}

	desired, err := jsondoc.FromGo(j.Request.Desired)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "%s: unsupported value", j.Name())
	}
	req := j.Request
	req.Desired = desired

	current, present := doc.Get(req.Path)
	next, err := merge.Apply(current, req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "%s", j.Name()).WithPath(doc.Path)
	}
	if !present && next == "" {
		// An empty fragment composed onto nothing must not create a script.
		return nil
	}

	changed, err := rc.Store.Set(doc, req.Path, next)
	if err != nil {
		return err
	}
	rc.Logger.Debug().
		Str("step", j.Name()).
		Bool("changed", changed).
		Msg("Applied JSON mutation")
	return nil
}
