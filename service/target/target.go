package target

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	appOs "github.com/beldeveloper/app-promoter/service/os"
	"github.com/beldeveloper/go-errors-context"
)

// NewTarget creates a new instance of the deploy-target service.
func NewTarget(settings model.Settings, os appOs.Service) Service {
	return Target{
		environments: settings.Environments,
		stepTimeout:  settings.StepTimeout(),
		os:           os,
	}
}

// Target implements the deploy-target capability: a clustered rollout for
// kubernetes environments, a remote host update over ssh otherwise. Both run
// as black-box CLI commands with a bounded wait.
type Target struct {
	environments map[model.Environment]model.EnvironmentConfig
	stepTimeout  time.Duration
	os           appOs.Service
}

// Deploy rolls the image out to the environment target.
func (s Target) Deploy(ctx context.Context, env model.Environment, ref model.ImageReference) error {
	cfg, ok := s.environments[env]
	if !ok {
		return errors.WrapContext(model.ErrNotFound, errors.Context{
			Path:   "service.target.Deploy",
			Params: errors.Params{"environment": env},
		})
	}
	if cfg.UseKubernetes {
		return s.deployKubernetes(ctx, env, cfg, ref)
	}
	return s.deployHost(ctx, env, cfg, ref)
}

func (s Target) deployKubernetes(ctx context.Context, env model.Environment, cfg model.EnvironmentConfig, ref model.ImageReference) error {
	_, err := s.os.RunCmd(ctx, model.Cmd{
		Name: "kubectl",
		Args: []string{
			"set", "image",
			"deployment/" + cfg.KubeDeployment,
			"app=" + string(ref),
			"-n", cfg.KubeNamespace,
		},
		Env:     appOs.SafeEnv(),
		Timeout: s.stepTimeout,
		Log:     true,
	})
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.target.deployKubernetes: set image",
			Params: errors.Params{"environment": env, "image": ref},
		})
	}
	_, err = s.os.RunCmd(ctx, model.Cmd{
		Name: "kubectl",
		Args: []string{
			"rollout", "status",
			"deployment/" + cfg.KubeDeployment,
			"-n", cfg.KubeNamespace,
			fmt.Sprintf("--timeout=%ds", int(s.stepTimeout.Seconds())),
		},
		Env:     appOs.SafeEnv(),
		Timeout: s.stepTimeout,
		Log:     true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.target.deployKubernetes: rollout status",
		Params: errors.Params{"environment": env, "image": ref},
	})
}

func (s Target) deployHost(ctx context.Context, env model.Environment, cfg model.EnvironmentConfig, ref model.ImageReference) error {
	sshArgs := []string{
		"-i", cfg.SSHKeyPath,
		"-o", "StrictHostKeyChecking=accept-new",
		cfg.DeployUser + "@" + cfg.Host,
	}
	_, err := s.os.RunCmd(ctx, model.Cmd{
		Name:    "ssh",
		Args:    append(sshArgs, "docker", "pull", string(ref)),
		Env:     appOs.SafeEnv(),
		Timeout: s.stepTimeout,
		Log:     true,
	})
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.target.deployHost: pull",
			Params: errors.Params{"environment": env, "image": ref},
		})
	}
	_, err = s.os.RunCmd(ctx, model.Cmd{
		Name:    "ssh",
		Args:    append(sshArgs, "env", "APP_IMAGE="+string(ref), "docker", "compose", "up", "-d", "--remove-orphans"),
		Env:     appOs.SafeEnv(),
		Timeout: s.stepTimeout,
		Log:     true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.target.deployHost: up",
		Params: errors.Params{"environment": env, "image": ref},
	})
}
