package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	envVariableURL      = "APP_PROMOTER_URL"
	envVariableOperator = "APP_PROMOTER_OPERATOR"
)

type rootOpts struct {
	URL      string
	Operator string
	API      *client
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
promotectl promotes container images through your environments.

Workflow:
  promotectl status                         # What is deployed and is it healthy?
  promotectl deploy staging                 # Deploy the latest staging commit.
  promotectl deploy production abc123f      # Propose a production deployment.
  promotectl confirm <token>                # Execute the proposed action.
  promotectl rollback production            # Propose a reversal to the previous image.
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "promotectl",
		Long:              rootLongHelp,
		SilenceUsage:      true,
		PersistentPreRunE: opts.PersistentPreRunE,
	}
	cmd.PersistentFlags().StringVarP(&opts.URL, "url", "u", "http://localhost:8080",
		fmt.Sprintf("base URL of the promoter API server; you can also set the environment variable %s", envVariableURL))
	cmd.PersistentFlags().StringVarP(&opts.Operator, "operator", "o", "",
		fmt.Sprintf("operator identity presented to the server; you can also set the environment variable %s", envVariableOperator))

	cmd.AddCommand(
		newDeploy(opts).Command(),
		newRollback(opts).Command(),
		newConfirm(opts).Command(),
		newCancel(opts).Command(),
		newStatus(opts).Command(),
		newHistory(opts).Command(),
	)

	return cmd
}

func (opts *rootOpts) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	url := os.Getenv(envVariableURL)
	if cmd.Flags().Changed("url") || url == "" {
		url = opts.URL
	}
	operator := os.Getenv(envVariableOperator)
	if cmd.Flags().Changed("operator") || operator == "" {
		operator = opts.Operator
	}
	if operator == "" {
		return fmt.Errorf("an operator identity is required; pass --operator or set %s", envVariableOperator)
	}
	opts.API = newClient(url, operator)
	return nil
}
