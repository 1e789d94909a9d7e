package target

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the deploy-target service interface.
type Service interface {
	Deploy(ctx context.Context, env model.Environment, ref model.ImageReference) error
}
