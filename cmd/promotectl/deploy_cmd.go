package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beldeveloper/app-promoter/model"
)

type deployOpts struct {
	*rootOpts
}

func newDeploy(parent *rootOpts) *deployOpts {
	return &deployOpts{rootOpts: parent}
}

func (opts *deployOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy <environment> [commit]",
		Short: "deploy a commit to an environment; production asks for confirmation",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *deployOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("expected arguments <environment> [commit]")
	}
	f := model.FormDeploy{Environment: args[0]}
	if len(args) == 2 {
		f.Commit = args[1]
	}
	res, err := opts.API.Deploy(context.Background(), f)
	if err != nil {
		return err
	}
	printOutcome(cmd, res)
	return attemptError(res.Attempt)
}
