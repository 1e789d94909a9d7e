package validation

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the validation service interface.
type Service interface {
	Deploy(ctx context.Context, f model.FormDeploy) (model.FormDeploy, error)
	Rollback(ctx context.Context, f model.FormRollback) (model.FormRollback, error)
	Commit(ctx context.Context, commit string) (string, error)
}
