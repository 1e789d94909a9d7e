package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/service/audit"
	"github.com/beldeveloper/app-promoter/service/healthcheck"
	"github.com/beldeveloper/app-promoter/service/history"
	"github.com/beldeveloper/app-promoter/service/imagestate"
	"github.com/beldeveloper/app-promoter/service/registry"
	"github.com/beldeveloper/app-promoter/service/rollback"
	"github.com/beldeveloper/app-promoter/service/target"
	"github.com/beldeveloper/app-promoter/service/validation"
	"github.com/beldeveloper/app-promoter/service/vcs"
	"github.com/beldeveloper/go-errors-context"
	"github.com/google/uuid"
)

// NewOrchestrator creates a new instance of the deployment orchestrator.
func NewOrchestrator(
	vcs vcs.Service,
	validation validation.Service,
	registry registry.Service,
	target target.Service,
	health healthcheck.Service,
	states imagestate.Service,
	auditLog audit.Service,
	history history.Service,
	rollback rollback.Service,
	settings model.Settings,
) Service {
	return Orchestrator{
		vcs:          vcs,
		validation:   validation,
		registry:     registry,
		target:       target,
		health:       health,
		states:       states,
		audit:        auditLog,
		history:      history,
		rollback:     rollback,
		environments: settings.Environments,
		healthCheck:  settings.HealthCheck,
		mux:          &sync.Mutex{},
		inFlight:     map[model.Environment]bool{},
		now:          time.Now,
	}
}

// Orchestrator owns the lifecycle of a single deployment attempt: it runs the
// pipeline steps in order, audits every transition before advancing, and
// drives the rollback controller when a failure happens at or after the state
// rotation. Exactly one attempt may be in flight per environment; a second
// request is rejected, not queued. Different environments proceed
// independently.
type Orchestrator struct {
	vcs          vcs.Service
	validation   validation.Service
	registry     registry.Service
	target       target.Service
	health       healthcheck.Service
	states       imagestate.Service
	audit        audit.Service
	history      history.Service
	rollback     rollback.Service
	environments map[model.Environment]model.EnvironmentConfig
	healthCheck  model.HealthCheckSettings
	mux          *sync.Mutex
	inFlight     map[model.Environment]bool
	now          func() time.Time
}

type pipelineRun struct {
	commit    string
	image     model.ImageReference
	rotated   bool
	startedAt time.Time
}

// Deploy runs the full pipeline for a confirmed request and returns the
// terminal attempt. The returned error carries the failure cause; the attempt
// status tells whether a rollback happened and whether it succeeded.
func (o Orchestrator) Deploy(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error) {
	err := o.acquire(req.Environment)
	if err != nil {
		return model.DeploymentAttempt{}, err
	}
	defer o.release(req.Environment)

	run := &pipelineRun{commit: req.Commit, startedAt: o.now()}
	attempt := model.DeploymentAttempt{
		Environment:   req.Environment,
		Commit:        req.Commit,
		Requester:     req.Requester,
		CorrelationID: uuid.NewString(),
		Status:        model.AttemptStatusRunning,
		CreatedAt:     run.startedAt,
	}
	attempt = o.persist(ctx, attempt)
	o.auditEntry(ctx, model.AuditEntry{
		Timestamp:     o.now(),
		Requester:     req.Requester,
		Action:        model.AuditDeployStarted,
		Environment:   req.Environment,
		CorrelationID: attempt.CorrelationID,
		Detail:        "commit " + req.Commit,
	})

	step := o.prepareSteps(ctx, req, run)
	for step != nil {
		err = ctx.Err()
		if err != nil {
			err = fmt.Errorf("attempt canceled before step %s: %w", step.name, err)
		} else {
			err = step.action()
		}
		outcome := model.StepOutcomeOK
		detail := ""
		if err != nil {
			outcome = model.StepOutcomeFailed
			detail = err.Error()
		}
		attempt.Steps = append(attempt.Steps, model.StepOutcome{
			Step:       step.name,
			Outcome:    outcome,
			Detail:     detail,
			FinishedAt: o.now(),
		})
		o.auditEntry(ctx, model.AuditEntry{
			Timestamp:     o.now(),
			Requester:     req.Requester,
			Action:        model.AuditDeployStep,
			Environment:   req.Environment,
			Outcome:       outcome,
			CorrelationID: attempt.CorrelationID,
			Detail:        step.name + detailSuffix(detail),
		})
		if err != nil {
			return o.fail(ctx, req, attempt, run, err)
		}
		step = step.next
	}

	attempt.Commit = run.commit
	attempt.Image = run.image
	attempt.Status = model.AttemptStatusSuccess
	attempt.FinishedAt = o.now()
	o.auditEntry(ctx, model.AuditEntry{
		Timestamp:     o.now(),
		Requester:     req.Requester,
		Action:        model.AuditDeploySuccess,
		Environment:   req.Environment,
		CorrelationID: attempt.CorrelationID,
		Detail:        string(run.image),
	})
	attempt = o.update(ctx, attempt)
	log.Printf("Deployment of %s to %s succeeded\n", run.image, req.Environment)
	return attempt, nil
}

// Rollback reverts the environment to its previous image as a standalone
// operation. It holds the same per-environment exclusion as a deploy so a
// rollback never races an in-flight rotation.
func (o Orchestrator) Rollback(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error) {
	err := o.acquire(req.Environment)
	if err != nil {
		return model.DeploymentAttempt{}, err
	}
	defer o.release(req.Environment)

	attempt := model.DeploymentAttempt{
		Environment:   req.Environment,
		Requester:     req.Requester,
		CorrelationID: uuid.NewString(),
		Status:        model.AttemptStatusRunning,
		CreatedAt:     o.now(),
	}
	attempt = o.persist(ctx, attempt)
	o.auditEntry(ctx, model.AuditEntry{
		Timestamp:     o.now(),
		Requester:     req.Requester,
		Action:        model.AuditRollbackStarted,
		Environment:   req.Environment,
		CorrelationID: attempt.CorrelationID,
	})

	previous, err := o.rollback.Execute(ctx, req.Environment)
	attempt.FinishedAt = o.now()
	if err != nil {
		action := model.AuditRollbackFailed
		attempt.Status = model.AttemptStatusRollbackFailed
		if errors.Is(err, model.ErrNoPreviousImage) {
			// Nothing was mutated; this is a denial, not a broken environment.
			action = model.AuditRollbackDenied
			attempt.Status = model.AttemptStatusFailed
		}
		o.auditEntry(ctx, model.AuditEntry{
			Timestamp:     o.now(),
			Requester:     req.Requester,
			Action:        action,
			Environment:   req.Environment,
			CorrelationID: attempt.CorrelationID,
			Detail:        err.Error(),
		})
		attempt = o.update(ctx, attempt)
		return attempt, err
	}
	attempt.Image = previous
	attempt.Status = model.AttemptStatusRolledBack
	o.auditEntry(ctx, model.AuditEntry{
		Timestamp:     o.now(),
		Requester:     req.Requester,
		Action:        model.AuditRollbackSuccess,
		Environment:   req.Environment,
		CorrelationID: attempt.CorrelationID,
		Detail:        string(previous),
	})
	attempt = o.update(ctx, attempt)
	log.Printf("Rollback of %s to %s succeeded\n", req.Environment, previous)
	return attempt, nil
}

func (o Orchestrator) prepareSteps(ctx context.Context, req model.ActionRequest, run *pipelineRun) *pipelineStep {
	env := req.Environment
	cfg, cfgOK := o.environments[env]

	validating := pipelineStep{
		name: model.StepValidating,
		action: func() (err error) {
			if !cfgOK {
				return errors.WrapContext(model.ErrNotFound, errors.Context{
					Path:   "service.orchestrator.validating",
					Params: errors.Params{"environment": env},
				})
			}
			if run.commit == "" {
				run.commit, err = o.vcs.ResolveCommit(ctx, cfg.Branch)
				if err != nil {
					return errors.WrapContext(err, errors.Context{
						Path:   "service.orchestrator.validating: resolve commit",
						Params: errors.Params{"branch": cfg.Branch},
					})
				}
			}
			run.commit, err = o.validation.Commit(ctx, run.commit)
			return err
		},
	}

	building := pipelineStep{
		name: model.StepBuilding,
		action: func() (err error) {
			run.image, err = o.registry.Build(ctx, env, run.commit, run.startedAt)
			return err
		},
	}

	pushing := pipelineStep{
		name: model.StepPushing,
		action: func() error {
			return o.registry.Push(ctx, run.image)
		},
	}

	recordingState := pipelineStep{
		name: model.StepRecordingState,
		action: func() error {
			err := o.states.RecordDeploy(ctx, env, run.image, o.now())
			if err != nil {
				return err
			}
			run.rotated = true
			return nil
		},
	}

	deployingTarget := pipelineStep{
		name: model.StepDeployingTarget,
		action: func() error {
			return o.target.Deploy(ctx, env, run.image)
		},
	}

	healthChecking := pipelineStep{
		name: model.StepHealthChecking,
		action: func() error {
			res, err := o.health.Poll(ctx, cfg.HealthURL, o.healthCheck.MaxAttempts, o.healthCheck.Interval(), o.healthCheck.AttemptTimeout())
			if err != nil {
				return err
			}
			if !res.Healthy {
				return fmt.Errorf("%w: %d attempts", model.ErrHealthCheckExhausted, res.Attempts)
			}
			return nil
		},
	}

	validating.next = &building
	building.next = &pushing
	pushing.next = &recordingState
	recordingState.next = &deployingTarget
	deployingTarget.next = &healthChecking

	return &validating
}

// fail finalizes a failed attempt. A failure before the state rotation has
// nothing durable to undo and terminates directly; a failure at or after the
// rotation, including a cancellation, must revert the state so current never
// points at an undeployed image.
func (o Orchestrator) fail(ctx context.Context, req model.ActionRequest, attempt model.DeploymentAttempt, run *pipelineRun, cause error) (model.DeploymentAttempt, error) {
	attempt.Commit = run.commit
	attempt.Image = run.image
	attempt.Status = model.AttemptStatusFailed
	o.auditEntry(ctx, model.AuditEntry{
		Timestamp:     o.now(),
		Requester:     req.Requester,
		Action:        model.AuditDeployFailed,
		Environment:   req.Environment,
		CorrelationID: attempt.CorrelationID,
		Detail:        cause.Error(),
	})
	if run.rotated {
		// The attempt context may already be canceled; the rollback still has
		// to run to completion.
		rbCtx := ctx
		if ctx.Err() != nil {
			rbCtx = context.Background()
		}
		o.auditEntry(rbCtx, model.AuditEntry{
			Timestamp:     o.now(),
			Requester:     req.Requester,
			Action:        model.AuditRollbackStarted,
			Environment:   req.Environment,
			CorrelationID: attempt.CorrelationID,
		})
		previous, rbErr := o.rollback.Execute(rbCtx, req.Environment)
		if rbErr != nil {
			attempt.Status = model.AttemptStatusRollbackFailed
			o.auditEntry(rbCtx, model.AuditEntry{
				Timestamp:     o.now(),
				Requester:     req.Requester,
				Action:        model.AuditRollbackFailed,
				Environment:   req.Environment,
				CorrelationID: attempt.CorrelationID,
				Detail:        rbErr.Error(),
			})
			// The caller must be able to tell this apart from a completed
			// rollback; only this outcome calls for urgent manual attention.
			cause = fmt.Errorf("%w; rollback also failed, manual intervention required: %v", cause, rbErr)
		} else {
			attempt.Status = model.AttemptStatusRolledBack
			o.auditEntry(rbCtx, model.AuditEntry{
				Timestamp:     o.now(),
				Requester:     req.Requester,
				Action:        model.AuditRollbackSuccess,
				Environment:   req.Environment,
				CorrelationID: attempt.CorrelationID,
				Detail:        string(previous),
			})
			cause = fmt.Errorf("%w; rolled back to %s", cause, previous)
		}
	}
	attempt.FinishedAt = o.now()
	attempt = o.update(ctx, attempt)
	return attempt, cause
}

func (o Orchestrator) acquire(env model.Environment) error {
	o.mux.Lock()
	defer o.mux.Unlock()
	if o.inFlight[env] {
		return fmt.Errorf("%w: %s", model.ErrDeploymentInProgress, env)
	}
	o.inFlight[env] = true
	return nil
}

func (o Orchestrator) release(env model.Environment) {
	o.mux.Lock()
	defer o.mux.Unlock()
	delete(o.inFlight, env)
}

// auditEntry appends synchronously; a failed audit write degrades the outcome
// with a logged warning but never blocks or fails the deployment itself.
func (o Orchestrator) auditEntry(ctx context.Context, e model.AuditEntry) {
	err := o.audit.Append(ctx, e)
	if err != nil {
		log.Printf("service.orchestrator: audit write failed: %v; action = %s\n", err, e.Action)
	}
}

func (o Orchestrator) persist(ctx context.Context, attempt model.DeploymentAttempt) model.DeploymentAttempt {
	saved, err := o.history.Add(ctx, attempt)
	if err != nil {
		log.Printf("service.orchestrator: persist attempt failed: %v\n", err)
		return attempt
	}
	return saved
}

func (o Orchestrator) update(ctx context.Context, attempt model.DeploymentAttempt) model.DeploymentAttempt {
	if attempt.ID == 0 {
		return attempt
	}
	saved, err := o.history.Update(ctx, attempt)
	if err != nil {
		log.Printf("service.orchestrator: update attempt failed: %v\n", err)
		return attempt
	}
	return saved
}

func detailSuffix(detail string) string {
	if detail == "" {
		return ""
	}
	return ": " + detail
}
