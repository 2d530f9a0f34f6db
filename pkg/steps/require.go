package steps

import "strings"

// RequireOptions fails unless every named option has a value. Composers
// check these before the first step runs.
type RequireOptions struct {
	Names []string
}

// Require returns a step that demands names.
func Require(names ...string) *RequireOptions {
	return &RequireOptions{Names: names}
}

// Name implements Step.
func (r *RequireOptions) Name() string {
	return "require " + strings.Join(r.Names, ", ")
}

// RequiredOptions implements Requirer.
func (r *RequireOptions) RequiredOptions() []string {
	return r.Names
}

// Apply implements Step.
func (r *RequireOptions) Apply(rc *RunContext) error {
	return rc.Options.Require(r.Names...)
}
