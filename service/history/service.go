package history

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the attempts history interface.
type Service interface {
	FindAll(ctx context.Context, limit int) ([]model.DeploymentAttempt, error)
	FindByEnvironment(ctx context.Context, env model.Environment, limit int) ([]model.DeploymentAttempt, error)
	FindByID(ctx context.Context, id uint64) (model.DeploymentAttempt, error)
	Add(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error)
	Update(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error)
}
