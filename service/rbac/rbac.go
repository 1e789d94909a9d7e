package rbac

import (
	"context"
	"fmt"

	"github.com/beldeveloper/app-promoter/model"
)

// NewRBAC creates a new instance of the authorization gate over the static role table.
func NewRBAC(table model.RoleTable) Service {
	admins := make(map[string]bool, len(table.Admins))
	for _, id := range table.Admins {
		admins[id] = true
	}
	operators := make(map[string]bool, len(table.StagingOperators))
	for _, id := range table.StagingOperators {
		operators[id] = true
	}
	return RBAC{admins: admins, operators: operators}
}

// RBAC implements the authorization gate. Check is a pure function over the
// role table; callers must invoke it before every independently triggered
// transition, including confirmation of a previously proposed action.
type RBAC struct {
	admins    map[string]bool
	operators map[string]bool
}

// RoleOf resolves the identity to its assigned role.
func (s RBAC) RoleOf(identity string) (model.Role, bool) {
	if s.admins[identity] {
		return model.RoleAdmin, true
	}
	if s.operators[identity] {
		return model.RoleStagingOperator, true
	}
	return "", false
}

// Check decides whether the identity may perform the action on the environment.
// Admins are permitted everything; staging operators may deploy and check
// status on staging only; anyone else is denied.
func (s RBAC) Check(ctx context.Context, identity string, action model.Action, env model.Environment) error {
	role, ok := s.RoleOf(identity)
	if !ok {
		return fmt.Errorf("%w: no role assigned to %q", model.ErrDenied, identity)
	}
	if role == model.RoleAdmin {
		return nil
	}
	if env == model.EnvironmentStaging && (action == model.ActionDeploy || action == model.ActionStatus) {
		return nil
	}
	return fmt.Errorf("%w: %s on %s requires the %s role", model.ErrDenied, action, env, model.RoleAdmin)
}
