package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/projsync/pkg/task"
	"github.com/charmbracelet/lipgloss"
)

// summaryRenderer writes human readable output, coloured or plain.
type summaryRenderer struct {
	output io.Writer
	st     styles
}

func newSummaryRenderer(w io.Writer, colored bool) *summaryRenderer {
	return &summaryRenderer{
		output: w,
		st:     newStyles(lipgloss.NewRenderer(w), colored),
	}
}

// RenderResult implements Renderer.
func (r *summaryRenderer) RenderResult(result *task.Result) error {
	var b strings.Builder
	st := r.st

	title := st.title.Render(result.Task)
	if result.DryRun {
		title += " " + st.warning.Render("(dry run)")
	}
	b.WriteString(title + " " + st.muted.Render("run "+shortID(result.RunID)) + "\n")

	if len(result.Changed) > 0 {
		heading := "Changed"
		if result.DryRun {
			heading = "Would change"
		}
		b.WriteString("\n" + st.section.Render(heading) + "\n")
		for _, d := range result.Changed {
			line := "  " + st.changed.Render(ChangedIndicator) + " " + st.path.Render(d.Path)
			if d.Created {
				line += " " + st.muted.Render("(created)")
			}
			b.WriteString(line + "\n")
		}
	}

	if len(result.Unchanged) > 0 {
		b.WriteString("\n" + st.section.Render("Up to date") + "\n")
		for _, d := range result.Unchanged {
			b.WriteString("  " + st.muted.Render(UnchangedIndicator) + " " + st.path.Render(d.Path) + "\n")
		}
	}

	if len(result.Failed) > 0 {
		b.WriteString("\n" + st.section.Render("Failed") + "\n")
		for _, d := range result.Failed {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", st.failed.Render(FailedIndicator), st.path.Render(d.Path), d.Reason))
		}
	}

	if len(result.StepFailures) > 0 {
		b.WriteString("\n" + st.section.Render("Step failures") + "\n")
		for _, s := range result.StepFailures {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", st.failed.Render(FailedIndicator), s.Step, s.Reason))
		}
	}

	if len(result.Packages) > 0 {
		b.WriteString("\n" + st.section.Render("Packages") + " " + st.muted.Render(installState(result)) + "\n")
		b.WriteString("  " + st.info.Render(strings.Join(result.Packages, " ")) + "\n")
	}

	if result.InstallError != nil {
		b.WriteString(fmt.Sprintf("\n%s %s\n", st.warning.Render(WarningIndicator),
			st.warning.Render("install failed, configuration changes were kept: ")+result.InstallError.Error()))
	}

	if len(result.Changed) == 0 && len(result.Failed) == 0 && len(result.StepFailures) == 0 {
		b.WriteString("\n" + st.changed.Render("Nothing to do, project is up to date") + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderTasks implements Renderer.
func (r *summaryRenderer) RenderTasks(tasks []TaskInfo) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(r.output, r.st.muted.Render("No tasks found"))
		return err
	}

	width := 0
	for _, t := range tasks {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}

	var b strings.Builder
	b.WriteString(r.st.title.Render("Available tasks") + "\n\n")
	for _, t := range tasks {
		name := r.st.info.Render(t.Name) + strings.Repeat(" ", width-len(t.Name))
		line := "  " + name + "  " + t.Description
		if !strings.HasPrefix(t.Source, "builtin:") {
			line += " " + r.st.muted.Render("("+t.Source+")")
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError implements Renderer.
func (r *summaryRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %s\n", r.st.failed.Render("Error:"), err.Error())
	return werr
}

func installState(result *task.Result) string {
	switch {
	case result.Installed:
		return "(installed)"
	case result.InstallError != nil:
		return "(install failed)"
	case result.DryRun:
		return "(would install)"
	default:
		return "(not installed)"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
