// Package conditions decides whether gated mutations fire.
//
// Rules are data: a source document, a path inside it and a predicate.
// Evaluation always goes back to the document store so a rule sees the
// values earlier steps of the same run produced.
package conditions

import (
	"strings"

	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
)

// Manifest is the project manifest rules about dependencies read from.
const Manifest = "package.json"

// PredicateKind tags the test a Predicate applies.
type PredicateKind string

const (
	// Exists holds when the path is present, whatever its value.
	Exists PredicateKind = "exists"
	// Truthy holds when the path is present and truthy.
	Truthy PredicateKind = "truthy"
	// Equals holds when the value is structurally equal to Predicate.Value.
	Equals PredicateKind = "equals"
	// Contains holds when a list contains Value, a string contains Value as
	// a substring or an object has Value as a key.
	Contains PredicateKind = "contains"
)

// Predicate is a tagged test applied to the value found at a rule's path.
type Predicate struct {
	Kind  PredicateKind
	Value interface{}
}

// Rule is a boolean question about the current state of one document, or a
// composition of rules through Any and All.
type Rule struct {
	Source    string
	Kind      document.Kind
	Path      jsondoc.Path
	Predicate Predicate
	Negate    bool

	Any []Rule
	All []Rule
}

// PathRule builds a rule on a JSON document path.
func PathRule(source, path string, pred Predicate) Rule {
	return Rule{Source: source, Kind: document.JSONObject, Path: jsondoc.ParsePath(path), Predicate: pred}
}

// DependsOn holds when the manifest declares name in dependencies or
// devDependencies.
func DependsOn(name string) Rule {
	return Rule{Any: []Rule{
		{Source: Manifest, Path: jsondoc.Path{"dependencies", name}, Predicate: Predicate{Kind: Exists}},
		{Source: Manifest, Path: jsondoc.Path{"devDependencies", name}, Predicate: Predicate{Kind: Exists}},
	}}
}

// Not negates a rule.
func Not(r Rule) Rule {
	r.Negate = !r.Negate
	return r
}

func (p Predicate) test(value interface{}, present bool) bool {
	switch p.Kind {
	case Exists, "":
		return present
	case Truthy:
		return present && jsondoc.Truthy(value)
	case Equals:
		want, err := jsondoc.FromGo(p.Value)
		return present && err == nil && jsondoc.Equal(value, want)
	case Contains:
		return present && contains(value, p.Value)
	default:
		return false
	}
}

func contains(value, needle interface{}) bool {
	switch v := value.(type) {
	case []interface{}:
		want, err := jsondoc.FromGo(needle)
		if err != nil {
			return false
		}
		for _, item := range v {
			if jsondoc.Equal(item, want) {
				return true
			}
		}
	case string:
		s, ok := needle.(string)
		return ok && s != "" && strings.Contains(v, s)
	case *jsondoc.Object:
		s, ok := needle.(string)
		if !ok {
			return false
		}
		_, has := v.Get(s)
		return has
	}
	return false
}
