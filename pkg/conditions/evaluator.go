package conditions

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/expr-lang/expr"
	"github.com/rs/zerolog"
)

// OptionSource exposes resolved task options to expressions.
type OptionSource interface {
	Lookup(name string) (interface{}, bool)
	All() map[string]interface{}
}

// Evaluator answers rules against the current contents of a Store.
// It holds no cache: every call reads through the store.
type Evaluator struct {
	store   *document.Store
	options OptionSource
	logger  zerolog.Logger
}

// NewEvaluator creates an evaluator. options may be nil.
func NewEvaluator(store *document.Store, options OptionSource) *Evaluator {
	return &Evaluator{
		store:   store,
		options: options,
		logger:  logging.GetLogger("conditions.evaluator"),
	}
}

// Evaluate resolves r's source document through the store and applies its
// predicate. Document load failures are returned unchanged so callers can
// attribute them to the document.
func (e *Evaluator) Evaluate(r Rule) (bool, error) {
	result, err := e.evaluate(r)
	if err != nil {
		return false, err
	}
	if r.Negate {
		result = !result
	}
	return result, nil
}

func (e *Evaluator) evaluate(r Rule) (bool, error) {
	switch {
	case len(r.Any) > 0:
		for _, sub := range r.Any {
			ok, err := e.Evaluate(sub)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case len(r.All) > 0:
		for _, sub := range r.All {
			ok, err := e.Evaluate(sub)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}

	if r.Source == "" {
		return false, errors.New(errors.ErrCondition, "rule has no source document")
	}
	doc, err := e.store.Get(r.Source, r.Kind)
	if err != nil {
		return false, err
	}
	value, present := doc.Get(r.Path)
	result := r.Predicate.test(value, present)

	e.logger.Trace().
		Str("source", r.Source).
		Str("path", r.Path.String()).
		Str("predicate", string(r.Predicate.Kind)).
		Bool("result", result).
		Msg("Evaluated rule")
	return result, nil
}

// EvaluateExpr evaluates a boolean expr-lang expression. Available functions:
//
//	dependsOn(name)    manifest declares name in dependencies or devDependencies
//	has(file, path)    path exists in the JSON document file
//	truthy(file, path) path exists and is truthy
//	get(file, path)    value at path, or nil
//	option(name)       resolved task option, or nil
//
// The variable options holds every task option. An empty expression is true.
func (e *Evaluator) EvaluateExpr(src string) (bool, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return true, nil
	}

	// Functions report document errors here; expr would otherwise flatten them.
	var docErr error
	record := func(err error) {
		if docErr == nil {
			docErr = err
		}
	}

	lookup := func(file, path string) (interface{}, bool) {
		doc, err := e.store.Get(file, document.JSONObject)
		if err != nil {
			record(err)
			return nil, false
		}
		return doc.Get(jsondoc.ParsePath(path))
	}

	env := map[string]interface{}{
		"options": e.optionMap(),
	}

	opts := []expr.Option{
		expr.Env(env),
		expr.AsBool(),
		expr.Function("dependsOn", func(params ...interface{}) (interface{}, error) {
			ok, err := e.Evaluate(DependsOn(params[0].(string)))
			if err != nil {
				record(err)
				return false, err
			}
			return ok, nil
		}, new(func(string) bool)),
		expr.Function("has", func(params ...interface{}) (interface{}, error) {
			_, ok := lookup(params[0].(string), params[1].(string))
			return ok, docErr
		}, new(func(string, string) bool)),
		expr.Function("truthy", func(params ...interface{}) (interface{}, error) {
			v, ok := lookup(params[0].(string), params[1].(string))
			return ok && jsondoc.Truthy(v), docErr
		}, new(func(string, string) bool)),
		expr.Function("get", func(params ...interface{}) (interface{}, error) {
			v, ok := lookup(params[0].(string), params[1].(string))
			if !ok {
				return nil, docErr
			}
			return jsondoc.ToGo(v), nil
		}, new(func(string, string) interface{})),
		expr.Function("option", func(params ...interface{}) (interface{}, error) {
			if e.options == nil {
				return nil, nil
			}
			v, _ := e.options.Lookup(params[0].(string))
			return v, nil
		}, new(func(string) interface{})),
	}

	program, err := expr.Compile(src, opts...)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCondition, "compile condition %q", src)
	}
	output, err := expr.Run(program, env)
	if docErr != nil {
		return false, docErr
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCondition, "evaluate condition %q", src)
	}
	result, ok := output.(bool)
	if !ok {
		return false, errors.Newf(errors.ErrCondition, "condition %q did not return bool (got %T)", src, output)
	}

	e.logger.Debug().Str("expr", src).Bool("result", result).Msg("Evaluated condition")
	return result, nil
}

func (e *Evaluator) optionMap() map[string]interface{} {
	if e.options == nil {
		return map[string]interface{}{}
	}
	return e.options.All()
}

// String renders a rule for logs.
func (r Rule) String() string {
	switch {
	case len(r.Any) > 0:
		return joinRules("any", r.Any, r.Negate)
	case len(r.All) > 0:
		return joinRules("all", r.All, r.Negate)
	}
	s := fmt.Sprintf("%s:%s %s", r.Source, r.Path, r.Predicate.Kind)
	if r.Predicate.Value != nil {
		s += fmt.Sprintf(" %v", r.Predicate.Value)
	}
	if r.Negate {
		s = "not " + s
	}
	return s
}

func joinRules(op string, rules []Rule, negate bool) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	s := op + "(" + strings.Join(parts, ", ") + ")"
	if negate {
		s = "not " + s
	}
	return s
}
