//+build wireinject

package main

import (
	"github.com/beldeveloper/app-promoter/controller"
	"github.com/beldeveloper/app-promoter/service"
	"github.com/beldeveloper/app-promoter/service/audit"
	"github.com/beldeveloper/app-promoter/service/confirmation"
	"github.com/beldeveloper/app-promoter/service/healthcheck"
	"github.com/beldeveloper/app-promoter/service/history"
	"github.com/beldeveloper/app-promoter/service/imagestate"
	"github.com/beldeveloper/app-promoter/service/marshaller"
	"github.com/beldeveloper/app-promoter/service/orchestrator"
	"github.com/beldeveloper/app-promoter/service/os"
	"github.com/beldeveloper/app-promoter/service/rbac"
	"github.com/beldeveloper/app-promoter/service/registry"
	"github.com/beldeveloper/app-promoter/service/rollback"
	"github.com/beldeveloper/app-promoter/service/target"
	"github.com/beldeveloper/app-promoter/service/validation"
	"github.com/beldeveloper/app-promoter/service/vcs"
	"github.com/google/wire"
)

func InitializeController() (controller.Service, error) {
	wire.Build(
		os.NewOS,
		marshaller.NewYaml,
		validation.NewValidation,
		rbac.NewRBAC,
		confirmation.NewMemory,
		imagestate.NewFile,
		healthcheck.NewHTTP,
		audit.NewFile,
		history.NewPostgres,
		vcs.NewGit,
		registry.NewDocker,
		target.NewTarget,
		rollback.NewController,
		orchestrator.NewOrchestrator,
		service.NewContainer,
		controller.NewController,
		postgresConn,
		postgresSchema,
		stateDir,
		auditLogPath,
		repoDir,
		loadSettings,
		roleTable,
		confirmationTTL,
	)
	return controller.Controller{}, nil
}
