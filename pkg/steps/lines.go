package steps

import (
	"fmt"

	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/merge"
)

// LinesMutation appends missing entries to a newline-delimited list file
// such as .eslintignore.
type LinesMutation struct {
	File    string
	Entries []string
}

// AddLines returns a step that unions entries into file.
func AddLines(file string, entries ...string) *LinesMutation {
	return &LinesMutation{File: file, Entries: entries}
}

// Name implements Step.
func (l *LinesMutation) Name() string {
	return fmt.Sprintf("lines %s", l.File)
}

// Apply implements Step.
func (l *LinesMutation) Apply(rc *RunContext) error {
	doc, err := rc.Store.Get(l.File, document.StringList)
	if err != nil {
		return err
	}
	changed, err := rc.Store.SetLines(doc, merge.UnionStrings(doc.Lines(), l.Entries))
	if err != nil {
		return err
	}
	rc.Logger.Debug().
		Str("step", l.Name()).
		Bool("changed", changed).
		Msg("Applied list mutation")
	return nil
}
