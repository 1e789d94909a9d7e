package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beldeveloper/app-promoter/model"
)

type rollbackOpts struct {
	*rootOpts
}

func newRollback(parent *rootOpts) *rollbackOpts {
	return &rollbackOpts{rootOpts: parent}
}

func (opts *rollbackOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <environment>",
		Short: "revert an environment to its previously deployed image",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *rollbackOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a single <environment> argument")
	}
	res, err := opts.API.Rollback(context.Background(), model.FormRollback{Environment: args[0]})
	if err != nil {
		return err
	}
	printOutcome(cmd, res)
	return attemptError(res.Attempt)
}
