package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/task"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(output io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &jsonRenderer{encoder: encoder}
}

type documentView struct {
	Path    string `json:"path"`
	Created bool   `json:"created,omitempty"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type stepFailureView struct {
	Step   string `json:"step"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}

type resultView struct {
	RunID        string            `json:"run_id"`
	Task         string            `json:"task"`
	DryRun       bool              `json:"dry_run"`
	Changed      []documentView    `json:"changed"`
	Unchanged    []documentView    `json:"unchanged"`
	Failed       []documentView    `json:"failed"`
	StepFailures []stepFailureView `json:"step_failures"`
	Packages     []string          `json:"packages"`
	Installed    bool              `json:"installed"`
	InstallError string            `json:"install_error,omitempty"`
}

func documentViews(docs []task.DocumentResult) []documentView {
	out := make([]documentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentView{Path: d.Path, Created: d.Created, Code: string(d.Code), Reason: d.Reason})
	}
	return out
}

// RenderResult implements Renderer.
func (r *jsonRenderer) RenderResult(result *task.Result) error {
	view := resultView{
		RunID:        result.RunID,
		Task:         result.Task,
		DryRun:       result.DryRun,
		Changed:      documentViews(result.Changed),
		Unchanged:    documentViews(result.Unchanged),
		Failed:       documentViews(result.Failed),
		StepFailures: make([]stepFailureView, 0, len(result.StepFailures)),
		Packages:     result.Packages,
		Installed:    result.Installed,
	}
	for _, s := range result.StepFailures {
		view.StepFailures = append(view.StepFailures, stepFailureView{Step: s.Step, Code: string(s.Code), Reason: s.Reason})
	}
	if view.Packages == nil {
		view.Packages = []string{}
	}
	if result.InstallError != nil {
		view.InstallError = result.InstallError.Error()
	}
	return r.encoder.Encode(view)
}

// RenderTasks implements Renderer.
func (r *jsonRenderer) RenderTasks(tasks []TaskInfo) error {
	if tasks == nil {
		tasks = []TaskInfo{}
	}
	return r.encoder.Encode(map[string]interface{}{"tasks": tasks})
}

// RenderError implements Renderer.
func (r *jsonRenderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != "" {
		errorObj["code"] = string(code)
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}
