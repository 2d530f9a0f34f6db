package steps

import (
	"context"

	"github.com/arthur-debert/projsync/pkg/conditions"
	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/options"
	"github.com/arthur-debert/projsync/pkg/packages"
	"github.com/rs/zerolog"
)

// RunContext is the state shared by every step of one run.
type RunContext struct {
	Ctx      context.Context
	Store    *document.Store
	Eval     *conditions.Evaluator
	Options  options.Options
	Packages *packages.Request
	Logger   zerolog.Logger
}

// Step is one ordered mutation.
type Step interface {
	Name() string
	Apply(rc *RunContext) error
}

// Requirer is implemented by steps that need options to be set before the
// run starts.
type Requirer interface {
	RequiredOptions() []string
}

// RequiredOptions collects the options every step in list asks for,
// descending into conditional groups. Names appear once, in first-seen
// order.
func RequiredOptions(list []Step) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func([]Step)
	walk = func(list []Step) {
		for _, s := range list {
			if r, ok := s.(Requirer); ok {
				for _, name := range r.RequiredOptions() {
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
			if g, ok := s.(*Conditional); ok {
				walk(g.Steps)
			}
		}
	}
	walk(list)
	return names
}
