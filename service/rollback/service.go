package rollback

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the rollback controller interface.
type Service interface {
	Execute(ctx context.Context, env model.Environment) (model.ImageReference, error)
}
