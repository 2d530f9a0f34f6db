package merge

import (
	"fmt"

	"github.com/arthur-debert/projsync/pkg/jsondoc"
)

// StrategyKind selects how a desired value is combined with the existing one.
type StrategyKind string

const (
	Overwrite     StrategyKind = "overwrite"
	DeepMerge     StrategyKind = "merge"
	UnionAppend   StrategyKind = "union"
	ComposeScript StrategyKind = "compose"
)

// Strategy is a StrategyKind plus the parameters ScriptCompose needs.
type Strategy struct {
	Kind      StrategyKind
	Position  Position
	Separator string
}

// ParseStrategy maps a catalog name to a StrategyKind. Empty means DeepMerge.
func ParseStrategy(name string) (StrategyKind, error) {
	switch StrategyKind(name) {
	case "":
		return DeepMerge, nil
	case Overwrite, DeepMerge, UnionAppend, ComposeScript:
		return StrategyKind(name), nil
	case "set":
		return Overwrite, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q", name)
	}
}

// Request is one desired change at Path inside a document.
type Request struct {
	Path     jsondoc.Path
	Desired  interface{}
	Strategy Strategy
}

// Apply combines existing (nil when absent) with r.Desired. Absent or
// mistyped existing values are treated as the empty value of the strategy:
// an empty object, an empty list or an empty command.
func Apply(existing interface{}, r Request) (interface{}, error) {
	switch r.Strategy.Kind {
	case Overwrite:
		return jsondoc.Clone(r.Desired), nil

	case DeepMerge, "":
		desired, ok := r.Desired.(*jsondoc.Object)
		if !ok {
			// Scalars and lists cannot be merged into; they replace.
			return jsondoc.Clone(r.Desired), nil
		}
		current, _ := existing.(*jsondoc.Object)
		return DeepMergeObject(current, desired), nil

	case UnionAppend:
		entries, err := asList(r.Desired)
		if err != nil {
			return nil, err
		}
		current, _ := existing.([]interface{})
		return UnionAppendUnique(current, entries), nil

	case ComposeScript:
		fragment, ok := r.Desired.(string)
		if !ok {
			return nil, fmt.Errorf("script fragment must be a string, got %T", r.Desired)
		}
		current, _ := existing.(string)
		sep := r.Strategy.Separator
		if sep == "" {
			sep = DefaultSeparator
		}
		pos := r.Strategy.Position
		if pos == "" {
			pos = Before
		}
		return ScriptCompose(current, fragment, pos, sep), nil

	default:
		return nil, fmt.Errorf("unknown merge strategy %q", r.Strategy.Kind)
	}
}

func asList(v interface{}) ([]interface{}, error) {
	switch t := v.(type) {
	case []interface{}:
		return t, nil
	case nil:
		return nil, nil
	case *jsondoc.Object:
		return nil, fmt.Errorf("cannot union an object into a list")
	default:
		return []interface{}{t}, nil
	}
}
