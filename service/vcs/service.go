package vcs

import "context"

// Service defines the VCS service interface.
type Service interface {
	ResolveCommit(ctx context.Context, branch string) (string, error)
}
