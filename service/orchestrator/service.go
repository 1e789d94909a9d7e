package orchestrator

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the deployment orchestrator interface.
type Service interface {
	Deploy(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error)
	Rollback(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error)
}
