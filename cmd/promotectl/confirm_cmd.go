package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type confirmOpts struct {
	*rootOpts
}

func newConfirm(parent *rootOpts) *confirmOpts {
	return &confirmOpts{rootOpts: parent}
}

func (opts *confirmOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm <token>",
		Short: "confirm a proposed action and execute it",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *confirmOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a single <token> argument")
	}
	res, err := opts.API.Confirm(context.Background(), args[0])
	if err != nil {
		return err
	}
	printOutcome(cmd, res)
	return attemptError(res.Attempt)
}

type cancelOpts struct {
	*rootOpts
}

func newCancel(parent *rootOpts) *cancelOpts {
	return &cancelOpts{rootOpts: parent}
}

func (opts *cancelOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <token>",
		Short: "discard a proposed action without executing it",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *cancelOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a single <token> argument")
	}
	err := opts.API.Cancel(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStderr(), "Cancelled.")
	return nil
}
