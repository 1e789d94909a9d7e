package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/beldeveloper/app-promoter/model"
)

// commitRx matches a short or full commit SHA: 4-40 hex characters.
var commitRx = regexp.MustCompile("^[0-9a-f]{4,40}$")

// NewValidation creates a new instance of the validation service.
func NewValidation() Service {
	return Validation{}
}

// Validation implements the validation service.
type Validation struct {
}

// Deploy validates the input for the deploy request.
// An empty commit is allowed and means the latest commit of the environment branch.
func (v Validation) Deploy(ctx context.Context, f model.FormDeploy) (model.FormDeploy, error) {
	f.Environment = strings.TrimSpace(f.Environment)
	f.Commit = strings.ToLower(strings.TrimSpace(f.Commit))
	if !model.Environment(f.Environment).Valid() {
		return f, fmt.Errorf("%w: unknown environment %q", model.ErrBadInput, f.Environment)
	}
	if f.Commit != "" && !commitRx.MatchString(f.Commit) {
		return f, fmt.Errorf("%w: suspicious commit hash %q", model.ErrBadInput, f.Commit)
	}
	return f, nil
}

// Rollback validates the input for the rollback request.
func (v Validation) Rollback(ctx context.Context, f model.FormRollback) (model.FormRollback, error) {
	f.Environment = strings.TrimSpace(f.Environment)
	if !model.Environment(f.Environment).Valid() {
		return f, fmt.Errorf("%w: unknown environment %q", model.ErrBadInput, f.Environment)
	}
	return f, nil
}

// Commit validates a resolved commit hash.
func (v Validation) Commit(ctx context.Context, commit string) (string, error) {
	commit = strings.ToLower(strings.TrimSpace(commit))
	if !commitRx.MatchString(commit) {
		return commit, fmt.Errorf("%w: suspicious commit hash %q", model.ErrBadInput, commit)
	}
	return commit, nil
}
