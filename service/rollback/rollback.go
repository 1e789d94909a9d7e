package rollback

import (
	"context"
	"fmt"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/service/healthcheck"
	"github.com/beldeveloper/app-promoter/service/imagestate"
	"github.com/beldeveloper/app-promoter/service/target"
	"github.com/beldeveloper/go-errors-context"
)

// NewController creates a new instance of the rollback controller.
func NewController(states imagestate.Service, target target.Service, health healthcheck.Service, settings model.Settings) Service {
	return Controller{
		states:       states,
		target:       target,
		health:       health,
		environments: settings.Environments,
		healthCheck:  settings.HealthCheck,
	}
}

// Controller reverts the image state and re-deploys the previous image. A
// rollback whose own deploy or health check fails is terminal; the controller
// never recurses into a second rollback to avoid flip-flopping.
type Controller struct {
	states       imagestate.Service
	target       target.Service
	health       healthcheck.Service
	environments map[model.Environment]model.EnvironmentConfig
	healthCheck  model.HealthCheckSettings
}

// Execute swaps the state back, re-runs the deploy-target step with the
// previous image and confirms it with one bounded health pass.
func (s Controller) Execute(ctx context.Context, env model.Environment) (model.ImageReference, error) {
	previous, err := s.states.Rollback(ctx, env)
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.rollback.Execute: revert state",
			Params: errors.Params{"environment": env},
		})
	}
	err = s.target.Deploy(ctx, env, previous)
	if err != nil {
		return previous, fmt.Errorf("%w: redeploy of %s: %v", model.ErrRollbackFailed, previous, err)
	}
	cfg, ok := s.environments[env]
	if !ok {
		return previous, fmt.Errorf("%w: no configuration for %s", model.ErrRollbackFailed, env)
	}
	res, err := s.health.Poll(ctx, cfg.HealthURL, s.healthCheck.MaxAttempts, s.healthCheck.Interval(), s.healthCheck.AttemptTimeout())
	if err != nil {
		return previous, fmt.Errorf("%w: health check: %v", model.ErrRollbackFailed, err)
	}
	if !res.Healthy {
		return previous, fmt.Errorf("%w: %s unhealthy after %d attempts", model.ErrRollbackFailed, env, res.Attempts)
	}
	return previous, nil
}
