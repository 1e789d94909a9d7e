package vcs

import (
	"context"
	"strings"

	"github.com/beldeveloper/app-promoter/model"
	appOs "github.com/beldeveloper/app-promoter/service/os"
	"github.com/beldeveloper/go-errors-context"
)

// NewGit creates a new instance of the Git VCS service.
func NewGit(repoDir model.RepoDir, os appOs.Service) Service {
	return Git{repoDir: string(repoDir), os: os}
}

// Git implements the VCS service for Git.
type Git struct {
	repoDir string
	os      appOs.Service
}

// ResolveCommit returns the latest short commit hash of the remote branch.
// It resolves the remote ref rather than whatever happens to be checked out
// locally, so the returned hash always belongs to the branch being deployed.
func (g Git) ResolveCommit(ctx context.Context, branch string) (string, error) {
	_, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"fetch", "origin", branch},
		Env:  appOs.SafeEnv(),
		Dir:  g.repoDir,
		Log:  true,
	})
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.ResolveCommit: fetch",
			Params: errors.Params{"branch": branch},
		})
	}
	out, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"rev-parse", "--short", "origin/" + branch},
		Env:  appOs.SafeEnv(),
		Dir:  g.repoDir,
	})
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.ResolveCommit: rev-parse",
			Params: errors.Params{"branch": branch},
		})
	}
	return strings.TrimSpace(out), nil
}
