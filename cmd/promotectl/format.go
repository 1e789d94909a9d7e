package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beldeveloper/app-promoter/model"
)

func printOutcome(cmd *cobra.Command, res model.DeployOutcome) {
	out := cmd.OutOrStderr()
	if res.Pending != nil {
		p := res.Pending
		fmt.Fprintf(out, "Confirmation required for %s on %s.\n", p.Action, p.Environment)
		if p.Commit != "" {
			fmt.Fprintf(out, "Commit: %s\n", p.Commit)
		}
		fmt.Fprintf(out, "Token:  %s (expires %s)\n", p.Token, p.ExpiresAt.Format("15:04:05"))
		fmt.Fprintf(out, "Run: promotectl confirm %s\n", p.Token)
		return
	}
	if res.Attempt == nil {
		return
	}
	a := res.Attempt
	for _, s := range a.Steps {
		line := fmt.Sprintf("%s: %s", s.Step, s.Outcome)
		if s.Detail != "" {
			line += " (" + s.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Attempt %s on %s finished: %s\n", a.CorrelationID, a.Environment, a.Status)
}

// attemptError maps the finished attempt to the process exit status. A healthy
// deployment exits 0. A requested reversal that completed also exits 0; it
// carries the rolled_back status without any failed pipeline step. A
// deployment that had to be reverted carries the same status plus the failed
// step, and exits 1.
func attemptError(a *model.DeploymentAttempt) error {
	if a == nil {
		return nil
	}
	if a.Status == model.AttemptStatusSuccess {
		return nil
	}
	if a.Status == model.AttemptStatusRolledBack && !anyStepFailed(a.Steps) {
		return nil
	}
	return fmt.Errorf("attempt finished with status %q", a.Status)
}

func anyStepFailed(steps []model.StepOutcome) bool {
	for _, s := range steps {
		if s.Outcome == model.StepOutcomeFailed {
			return true
		}
	}
	return false
}
