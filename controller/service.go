package controller

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the controller interface.
type Service interface {
	Deploy(ctx context.Context, identity string, f model.FormDeploy) (model.DeployOutcome, error)
	Rollback(ctx context.Context, identity string, f model.FormRollback) (model.DeployOutcome, error)
	Confirm(ctx context.Context, identity, token string) (model.DeployOutcome, error)
	Cancel(ctx context.Context, identity, token string) error
	Status(ctx context.Context, identity string) ([]model.EnvironmentStatus, error)
	History(ctx context.Context, identity string) (model.HistoryReport, error)
	SweepConfirmationsJob(ctx context.Context)
}
