package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/service"
)

const (
	// SweepConfirmationsFrequency defines the frequency of the confirmation expiry job.
	SweepConfirmationsFrequency = time.Second * 30
	// HistoryLimit defines how many records the history report returns.
	HistoryLimit = 20
)

// NewController creates a new instance of the application controller.
func NewController(services service.Container, settings model.Settings) Service {
	return Controller{services: services, settings: settings}
}

// Controller implements the application controller.
type Controller struct {
	services service.Container
	settings model.Settings
}

// Deploy handles a deployment request. The authorization gate runs before any
// side effect; a production deploy is not executed directly but proposed for
// explicit confirmation.
func (c Controller) Deploy(ctx context.Context, identity string, f model.FormDeploy) (model.DeployOutcome, error) {
	f, err := c.services.Validation.Deploy(ctx, f)
	if err != nil {
		if errors.Is(err, model.ErrBadInput) {
			return model.DeployOutcome{}, err
		}
		return model.DeployOutcome{}, fmt.Errorf("controller.Deploy: error during validation: %w", err)
	}
	env := model.Environment(f.Environment)
	err = c.services.RBAC.Check(ctx, identity, model.ActionDeploy, env)
	if err != nil {
		c.auditEntry(ctx, model.AuditEntry{
			Timestamp:   time.Now(),
			Requester:   identity,
			Action:      model.AuditDeployDenied,
			Environment: env,
			Detail:      err.Error(),
		})
		return model.DeployOutcome{}, err
	}
	role, _ := c.services.RBAC.RoleOf(identity)
	req := model.ActionRequest{
		Requester:   identity,
		Role:        role,
		Environment: env,
		Action:      model.ActionDeploy,
		Commit:      f.Commit,
	}
	if env == model.EnvironmentProduction {
		return c.propose(ctx, req)
	}
	attempt, err := c.services.Orchestrator.Deploy(ctx, req)
	return model.DeployOutcome{Attempt: &attempt}, err
}

// Rollback handles a rollback request. Rollbacks are destructive on every
// environment, so they always go through the confirmation flow.
func (c Controller) Rollback(ctx context.Context, identity string, f model.FormRollback) (model.DeployOutcome, error) {
	f, err := c.services.Validation.Rollback(ctx, f)
	if err != nil {
		if errors.Is(err, model.ErrBadInput) {
			return model.DeployOutcome{}, err
		}
		return model.DeployOutcome{}, fmt.Errorf("controller.Rollback: error during validation: %w", err)
	}
	env := model.Environment(f.Environment)
	err = c.services.RBAC.Check(ctx, identity, model.ActionRollback, env)
	if err != nil {
		c.auditEntry(ctx, model.AuditEntry{
			Timestamp:   time.Now(),
			Requester:   identity,
			Action:      model.AuditRollbackDenied,
			Environment: env,
			Detail:      err.Error(),
		})
		return model.DeployOutcome{}, err
	}
	role, _ := c.services.RBAC.RoleOf(identity)
	req := model.ActionRequest{
		Requester:   identity,
		Role:        role,
		Environment: env,
		Action:      model.ActionRollback,
	}
	return c.propose(ctx, req)
}

// Confirm consumes the confirmation token and executes the confirmed action.
func (c Controller) Confirm(ctx context.Context, identity, token string) (model.DeployOutcome, error) {
	req, err := c.services.Confirmation.Confirm(ctx, token, identity)
	if err != nil {
		c.auditEntry(ctx, model.AuditEntry{
			Timestamp: time.Now(),
			Requester: identity,
			Action:    model.AuditConfirmationRejected,
			Detail:    err.Error(),
		})
		return model.DeployOutcome{}, err
	}
	c.auditEntry(ctx, model.AuditEntry{
		Timestamp:   time.Now(),
		Requester:   identity,
		Action:      model.AuditConfirmationAccepted,
		Environment: req.Environment,
		Detail:      string(req.Action),
	})
	var attempt model.DeploymentAttempt
	switch req.Action {
	case model.ActionDeploy:
		attempt, err = c.services.Orchestrator.Deploy(ctx, req)
	case model.ActionRollback:
		attempt, err = c.services.Orchestrator.Rollback(ctx, req)
	default:
		return model.DeployOutcome{}, fmt.Errorf("controller.Confirm: unexpected action %q", req.Action)
	}
	return model.DeployOutcome{Attempt: &attempt}, err
}

// Cancel invalidates a pending confirmation token.
func (c Controller) Cancel(ctx context.Context, identity, token string) error {
	err := c.services.Confirmation.Cancel(ctx, token, identity)
	if err != nil {
		return err
	}
	c.auditEntry(ctx, model.AuditEntry{
		Timestamp: time.Now(),
		Requester: identity,
		Action:    model.AuditConfirmationCancelled,
	})
	return nil
}

// Status reports the image state and an immediate health probe for every
// environment the requester is authorized to see.
func (c Controller) Status(ctx context.Context, identity string) ([]model.EnvironmentStatus, error) {
	res := make([]model.EnvironmentStatus, 0, len(model.Environments))
	var lastDenied error
	for _, env := range model.Environments {
		err := c.services.RBAC.Check(ctx, identity, model.ActionStatus, env)
		if err != nil {
			lastDenied = err
			continue
		}
		state, err := c.services.States.Read(ctx, env)
		if err != nil {
			return nil, fmt.Errorf("controller.Status: read state: %w", err)
		}
		status := model.EnvironmentStatus{
			Environment: env,
			Current:     state.Current,
			Previous:    state.Previous,
			DeployedAt:  state.DeployedAt,
		}
		cfg, ok := c.settings.Environments[env]
		if ok {
			probe, err := c.services.Health.Poll(ctx, cfg.HealthURL, 1, 0, c.settings.HealthCheck.AttemptTimeout())
			if err == nil {
				status.Healthy = probe.Healthy
			}
		}
		res = append(res, status)
	}
	if len(res) == 0 && lastDenied != nil {
		return nil, lastDenied
	}
	return res, nil
}

// History returns the recent attempts and audit events. The report spans both
// environments, so it is gated the same way as production visibility.
func (c Controller) History(ctx context.Context, identity string) (model.HistoryReport, error) {
	err := c.services.RBAC.Check(ctx, identity, model.ActionStatus, model.EnvironmentProduction)
	if err != nil {
		return model.HistoryReport{}, err
	}
	attempts, err := c.services.History.FindAll(ctx, HistoryLimit)
	if err != nil {
		return model.HistoryReport{}, fmt.Errorf("controller.History: find attempts: %w", err)
	}
	events, err := c.services.Audit.Recent(ctx, HistoryLimit)
	if err != nil {
		return model.HistoryReport{}, fmt.Errorf("controller.History: read audit: %w", err)
	}
	return model.HistoryReport{Attempts: attempts, Audit: events}, nil
}

// SweepConfirmationsJob is a job that expires the outdated confirmation tokens.
func (c Controller) SweepConfirmationsJob(ctx context.Context) {
	t := time.NewTicker(SweepConfirmationsFrequency)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			for _, token := range c.services.Confirmation.SweepExpired(ctx) {
				c.auditEntry(ctx, model.AuditEntry{
					Timestamp:   time.Now(),
					Requester:   token.Request.Requester,
					Action:      model.AuditConfirmationExpired,
					Environment: token.Request.Environment,
					Detail:      string(token.Request.Action),
				})
				log.Printf("The confirmation token for %s on %s is expired\n", token.Request.Action, token.Request.Environment)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c Controller) propose(ctx context.Context, req model.ActionRequest) (model.DeployOutcome, error) {
	token, err := c.services.Confirmation.Propose(ctx, req)
	if err != nil {
		return model.DeployOutcome{}, fmt.Errorf("controller.propose: %w", err)
	}
	c.auditEntry(ctx, model.AuditEntry{
		Timestamp:   time.Now(),
		Requester:   req.Requester,
		Action:      model.AuditConfirmationProposed,
		Environment: req.Environment,
		Detail:      string(req.Action),
	})
	log.Printf("The %s on %s awaits confirmation\n", req.Action, req.Environment)
	return model.DeployOutcome{Pending: &model.PendingConfirmation{
		Token:       token.ID,
		Action:      req.Action,
		Environment: req.Environment,
		Commit:      req.Commit,
		ExpiresAt:   token.ExpiresAt,
	}}, nil
}

func (c Controller) auditEntry(ctx context.Context, e model.AuditEntry) {
	err := c.services.Audit.Append(ctx, e)
	if err != nil {
		log.Printf("controller: audit write failed: %v; action = %s\n", err, e.Action)
	}
}
