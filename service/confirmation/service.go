package confirmation

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the confirmation flow interface.
type Service interface {
	Propose(ctx context.Context, req model.ActionRequest) (model.ConfirmationToken, error)
	Confirm(ctx context.Context, id, identity string) (model.ActionRequest, error)
	Cancel(ctx context.Context, id, identity string) error
	SweepExpired(ctx context.Context) []model.ConfirmationToken
}
