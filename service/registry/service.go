package registry

import (
	"context"
	"time"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the registry service interface.
type Service interface {
	Build(ctx context.Context, env model.Environment, commit string, at time.Time) (model.ImageReference, error)
	Push(ctx context.Context, ref model.ImageReference) error
}
