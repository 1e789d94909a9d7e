package service

import (
	"github.com/beldeveloper/app-promoter/service/audit"
	"github.com/beldeveloper/app-promoter/service/confirmation"
	"github.com/beldeveloper/app-promoter/service/healthcheck"
	"github.com/beldeveloper/app-promoter/service/history"
	"github.com/beldeveloper/app-promoter/service/imagestate"
	"github.com/beldeveloper/app-promoter/service/orchestrator"
	"github.com/beldeveloper/app-promoter/service/rbac"
	"github.com/beldeveloper/app-promoter/service/validation"
)

// Container keeps all services in one place.
type Container struct {
	Orchestrator orchestrator.Service
	RBAC         rbac.Service
	Confirmation confirmation.Service
	States       imagestate.Service
	Health       healthcheck.Service
	Audit        audit.Service
	History      history.Service
	Validation   validation.Service
}

// NewContainer assembles the service container.
func NewContainer(
	orchestrator orchestrator.Service,
	rbac rbac.Service,
	confirmation confirmation.Service,
	states imagestate.Service,
	health healthcheck.Service,
	audit audit.Service,
	history history.Service,
	validation validation.Service,
) Container {
	return Container{
		Orchestrator: orchestrator,
		RBAC:         rbac,
		Confirmation: confirmation,
		States:       states,
		Health:       health,
		Audit:        audit,
		History:      history,
		Validation:   validation,
	}
}
