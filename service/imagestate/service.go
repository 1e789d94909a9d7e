package imagestate

import (
	"context"
	"time"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the image state store interface.
type Service interface {
	Read(ctx context.Context, env model.Environment) (model.ImageState, error)
	RecordDeploy(ctx context.Context, env model.Environment, image model.ImageReference, at time.Time) error
	Rollback(ctx context.Context, env model.Environment) (model.ImageReference, error)
}
