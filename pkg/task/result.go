package task

import (
	"github.com/arthur-debert/projsync/pkg/errors"
)

// DocumentResult describes one document touched by a run.
type DocumentResult struct {
	Path    string
	Created bool
	Code    errors.ErrorCode
	Reason  string
	Err     error
}

// StepFailure is a step error that could not be attributed to a document.
type StepFailure struct {
	Step   string
	Code   errors.ErrorCode
	Reason string
	Err    error
}

// Result is the outcome of one run.
type Result struct {
	RunID  string
	Task   string
	DryRun bool

	Changed   []DocumentResult
	Unchanged []DocumentResult
	Failed    []DocumentResult

	StepFailures []StepFailure

	// Packages lists every requested package in request order.
	Packages []string
	// Installed is true when the package manager ran and succeeded.
	Installed    bool
	InstallError error
}

// Errors returns every error of the run: failed documents, step failures
// and the install error, in that order.
func (r *Result) Errors() []error {
	var errs []error
	for _, d := range r.Failed {
		errs = append(errs, d.Err)
	}
	for _, s := range r.StepFailures {
		errs = append(errs, s.Err)
	}
	if r.InstallError != nil {
		errs = append(errs, r.InstallError)
	}
	return errs
}

// HasFailures reports whether any document or step failed. Install errors
// are warnings and do not count.
func (r *Result) HasFailures() bool {
	return len(r.Failed) > 0 || len(r.StepFailures) > 0
}

func reason(err error) (errors.ErrorCode, string) {
	if err == nil {
		return "", ""
	}
	return errors.GetErrorCode(err), err.Error()
}
