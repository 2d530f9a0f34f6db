// Package ui renders run summaries and task listings as styled terminal
// output, plain text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/task"
)

// TaskInfo describes one available task for listings.
type TaskInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders the summary of one run.
	RenderResult(result *task.Result) error

	// RenderTasks renders the available tasks.
	RenderTasks(tasks []TaskInfo) error

	// RenderError renders an error that stopped the command.
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newSummaryRenderer(output, true), nil
	case FormatText:
		return newSummaryRenderer(output, false), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
