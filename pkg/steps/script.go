package steps

import (
	"fmt"

	"github.com/arthur-debert/projsync/pkg/conditions"
	"github.com/arthur-debert/projsync/pkg/jsondoc"
	"github.com/arthur-debert/projsync/pkg/merge"
)

// SetScript sets the manifest script name to command, replacing any
// previous command.
func SetScript(name, command string) *JSONMutation {
	return scriptMutation(name, command, merge.Strategy{Kind: merge.Overwrite}, "set script "+name)
}

// ComposeScript adds fragment to the manifest script name before or after
// the existing command. Nothing changes when fragment is already part of it.
func ComposeScript(name, fragment string, position merge.Position, separator string) *JSONMutation {
	strategy := merge.Strategy{Kind: merge.ComposeScript, Position: position, Separator: separator}
	return scriptMutation(name, fragment, strategy, fmt.Sprintf("compose script %s (%s)", name, position))
}

func scriptMutation(name, value string, strategy merge.Strategy, label string) *JSONMutation {
	return &JSONMutation{
		File: conditions.Manifest,
		Request: merge.Request{
			// Script names may contain dots, so the path is built directly.
			Path:     jsondoc.Path{"scripts", name},
			Desired:  value,
			Strategy: strategy,
		},
		Label: label,
	}
}
