// Code generated by Wire. DO NOT EDIT.

//go:generate go run github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

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
)

// Injectors from wire.go:

func InitializeController() (controller.Service, error) {
	modelRepoDir := repoDir()
	osService := os.NewOS()
	vcsService := vcs.NewGit(modelRepoDir, osService)
	validationService := validation.NewValidation()
	marshallerService := marshaller.NewYaml()
	settings, err := loadSettings(marshallerService)
	if err != nil {
		return nil, err
	}
	registryService := registry.NewDocker(settings, modelRepoDir, osService)
	targetService := target.NewTarget(settings, osService)
	healthcheckService := healthcheck.NewHTTP()
	modelStateDir := stateDir()
	imagestateService := imagestate.NewFile(modelStateDir)
	modelAuditLogPath := auditLogPath()
	auditService, err := audit.NewFile(modelAuditLogPath)
	if err != nil {
		return nil, err
	}
	pool, err := postgresConn()
	if err != nil {
		return nil, err
	}
	pgSchema := postgresSchema()
	historyService := history.NewPostgres(pool, pgSchema)
	rollbackService := rollback.NewController(imagestateService, targetService, healthcheckService, settings)
	orchestratorService := orchestrator.NewOrchestrator(vcsService, validationService, registryService, targetService, healthcheckService, imagestateService, auditService, historyService, rollbackService, settings)
	modelRoleTable := roleTable(settings)
	rbacService := rbac.NewRBAC(modelRoleTable)
	duration := confirmationTTL(settings)
	confirmationService := confirmation.NewMemory(rbacService, duration)
	container := service.NewContainer(orchestratorService, rbacService, confirmationService, imagestateService, healthcheckService, auditService, historyService, validationService)
	controllerService := controller.NewController(container, settings)
	return controllerService, nil
}
