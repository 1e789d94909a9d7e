package rbac

import (
	"context"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the authorization gate interface.
type Service interface {
	RoleOf(identity string) (model.Role, bool)
	Check(ctx context.Context, identity string, action model.Action, env model.Environment) error
}
