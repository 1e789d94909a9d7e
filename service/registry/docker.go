package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	appOs "github.com/beldeveloper/app-promoter/service/os"
	"github.com/beldeveloper/go-errors-context"
)

// NewDocker creates a new instance of the Docker registry service.
func NewDocker(settings model.Settings, repoDir model.RepoDir, os appOs.Service) Service {
	return Docker{
		registryURL: settings.Registry.URL,
		image:       settings.Registry.Image,
		repoDir:     string(repoDir),
		stepTimeout: settings.StepTimeout(),
		os:          os,
	}
}

// Docker implements the image build and push capabilities with the docker CLI.
type Docker struct {
	registryURL string
	image       string
	repoDir     string
	stepTimeout time.Duration
	os          appOs.Service
}

// Build builds the image for the environment and commit and returns its reference.
func (s Docker) Build(ctx context.Context, env model.Environment, commit string, at time.Time) (model.ImageReference, error) {
	ref := model.ImageReference(fmt.Sprintf("%s/%s:%s-%s-%d", s.registryURL, s.image, env, commit, at.Unix()))
	_, err := s.os.RunCmd(ctx, model.Cmd{
		Name:    "docker",
		Args:    []string{"build", "-t", string(ref), "--build-arg", "COMMIT=" + commit, "."},
		Env:     appOs.SafeEnv(),
		Dir:     s.repoDir,
		Timeout: s.stepTimeout,
		Log:     true,
	})
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.registry.docker.Build",
			Params: errors.Params{"environment": env, "commit": commit},
		})
	}
	return ref, nil
}

// Push pushes the built image to the registry.
func (s Docker) Push(ctx context.Context, ref model.ImageReference) error {
	_, err := s.os.RunCmd(ctx, model.Cmd{
		Name:    "docker",
		Args:    []string{"push", string(ref)},
		Env:     appOs.SafeEnv(),
		Timeout: s.stepTimeout,
		Log:     true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.registry.docker.Push",
		Params: errors.Params{"image": ref},
	})
}
