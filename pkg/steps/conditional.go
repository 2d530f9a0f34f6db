package steps

import (
	"fmt"

	"github.com/arthur-debert/projsync/pkg/conditions"
)

// Condition decides whether a conditional group runs.
type Condition interface {
	Check(rc *RunContext) (bool, error)
	String() string
}

type ruleCondition struct{ rule conditions.Rule }

// Rule wraps a structured rule as a Condition.
func Rule(r conditions.Rule) Condition { return ruleCondition{rule: r} }

func (c ruleCondition) Check(rc *RunContext) (bool, error) { return rc.Eval.Evaluate(c.rule) }
func (c ruleCondition) String() string                     { return c.rule.String() }

type exprCondition struct{ src string }

// Expr wraps an expression such as `dependsOn("tslint")` as a Condition.
func Expr(src string) Condition { return exprCondition{src: src} }

func (c exprCondition) Check(rc *RunContext) (bool, error) { return rc.Eval.EvaluateExpr(c.src) }
func (c exprCondition) String() string                     { return c.src }

// Conditional runs Steps only when Cond holds at the moment it is reached,
// so earlier steps of the same run are visible to it.
type Conditional struct {
	Cond  Condition
	Steps []Step
}

// When returns a group gated by cond.
func When(cond Condition, steps ...Step) *Conditional {
	return &Conditional{Cond: cond, Steps: steps}
}

// Name implements Step.
func (c *Conditional) Name() string {
	return fmt.Sprintf("when %s", c.Cond)
}

// Matches evaluates the condition against the current state of the run.
func (c *Conditional) Matches(rc *RunContext) (bool, error) {
	ok, err := c.Cond.Check(rc)
	if err != nil {
		return false, err
	}
	rc.Logger.Debug().Str("condition", c.Cond.String()).Bool("matched", ok).Msg("Evaluated condition")
	return ok, nil
}

// Apply runs the nested steps in order when the condition matches. The
// first nested failure stops the group.
func (c *Conditional) Apply(rc *RunContext) error {
	ok, err := c.Matches(rc)
	if err != nil || !ok {
		return err
	}
	for _, s := range c.Steps {
		if err := s.Apply(rc); err != nil {
			return err
		}
	}
	return nil
}
