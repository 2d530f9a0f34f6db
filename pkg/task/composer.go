package task

import (
	"context"

	"github.com/arthur-debert/projsync/pkg/conditions"
	"github.com/arthur-debert/projsync/pkg/document"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/options"
	"github.com/arthur-debert/projsync/pkg/packages"
	"github.com/arthur-debert/projsync/pkg/steps"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Task is a named, ordered list of steps.
type Task struct {
	Name        string
	Description string
	Steps       []steps.Step
	// Dev installs requested packages as development dependencies.
	Dev bool
}

// Composer runs tasks against the project at Root.
type Composer struct {
	FS        types.FS
	Root      string
	Options   options.Options
	Installer packages.Installer

	// DryRun computes every change without writing or installing.
	DryRun bool
	// SkipInstall collects packages but never calls the installer.
	SkipInstall bool

	logger zerolog.Logger
}

// NewComposer creates a composer. installer may be nil, which behaves like
// SkipInstall.
func NewComposer(fsys types.FS, root string, opts options.Options, installer packages.Installer) *Composer {
	return &Composer{
		FS:        fsys,
		Root:      root,
		Options:   opts,
		Installer: installer,
		logger:    logging.GetLogger("task.composer"),
	}
}

// Run applies t. The returned error is reserved for problems that stop the
// run before any file is touched, such as a missing required option.
// Everything else is reported in the Result.
func (c *Composer) Run(ctx context.Context, t Task) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.ForRun(c.logger, runID, t.Name)
	done := logging.LogOperationStart(logger, "run "+t.Name)
	defer done()

	if required := steps.RequiredOptions(t.Steps); len(required) > 0 {
		if err := c.Options.Require(required...); err != nil {
			logger.Error().Err(err).Msg("Required options missing, nothing was changed")
			return nil, err
		}
	}

	store := document.NewStore(c.FS, c.Root)
	rc := &steps.RunContext{
		Ctx:      ctx,
		Store:    store,
		Eval:     conditions.NewEvaluator(store, c.Options),
		Options:  c.Options,
		Packages: packages.NewRequest(),
		Logger:   logger,
	}
	result := &Result{RunID: runID, Task: t.Name, DryRun: c.DryRun}

	logger.Info().Int("steps", len(t.Steps)).Bool("dry_run", c.DryRun).Msg("Running task")
	c.runSteps(rc, t.Steps, result)

	for _, st := range store.FlushAll(c.DryRun) {
		dr := DocumentResult{Path: st.Rel, Created: st.Created, Err: st.Err}
		switch st.Status {
		case document.StatusChanged:
			result.Changed = append(result.Changed, dr)
		case document.StatusUnchanged:
			result.Unchanged = append(result.Unchanged, dr)
		case document.StatusFailed:
			dr.Code, dr.Reason = reason(st.Err)
			result.Failed = append(result.Failed, dr)
		}
	}

	result.Packages = rc.Packages.ToOrderedList()
	c.install(ctx, logger, t, result)

	logger.Info().
		Int("changed", len(result.Changed)).
		Int("unchanged", len(result.Unchanged)).
		Int("failed", len(result.Failed)).
		Int("step_failures", len(result.StepFailures)).
		Strs("packages", result.Packages).
		Msg("Task finished")
	return result, nil
}

// runSteps applies list in order. Errors tied to a document that the store
// marked failed are already accounted for; anything else becomes a step
// failure. Either way the next step runs.
func (c *Composer) runSteps(rc *steps.RunContext, list []steps.Step, result *Result) {
	for _, s := range list {
		if group, ok := s.(*steps.Conditional); ok {
			matched, err := group.Matches(rc)
			if err != nil {
				c.recordFailure(rc, s, err, result)
				continue
			}
			if matched {
				c.runSteps(rc, group.Steps, result)
			}
			continue
		}

		if err := s.Apply(rc); err != nil {
			c.recordFailure(rc, s, err, result)
		}
	}
}

func (c *Composer) recordFailure(rc *steps.RunContext, s steps.Step, err error, result *Result) {
	if path, ok := errors.GetPath(err); ok && rc.Store.Failed(path) != nil {
		rc.Logger.Debug().Str("step", s.Name()).Str("path", path).Msg("Skipped step on failed document")
		return
	}
	code, msg := reason(err)
	rc.Logger.Warn().Err(err).Str("step", s.Name()).Msg("Step failed")
	result.StepFailures = append(result.StepFailures, StepFailure{Step: s.Name(), Code: code, Reason: msg, Err: err})
}

func (c *Composer) install(ctx context.Context, logger zerolog.Logger, t Task, result *Result) {
	switch {
	case len(result.Packages) == 0:
		return
	case c.DryRun:
		logger.Info().Strs("packages", result.Packages).Msg("Dry run, not installing")
		return
	case c.SkipInstall || c.Installer == nil:
		logger.Info().Strs("packages", result.Packages).Msg("Install skipped")
		return
	}

	if err := c.Installer.Install(ctx, result.Packages, t.Dev); err != nil {
		logger.Warn().Err(err).Msg("Install failed, configuration changes were kept")
		result.InstallError = err
		return
	}
	result.Installed = true
}
