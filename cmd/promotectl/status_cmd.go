package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type statusOpts struct {
	*rootOpts
}

func newStatus(parent *rootOpts) *statusOpts {
	return &statusOpts{rootOpts: parent}
}

func (opts *statusOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "show the deployed images and health of the visible environments",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *statusOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("expected no arguments")
	}
	res, err := opts.API.Status(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ENVIRONMENT\tCURRENT\tPREVIOUS\tDEPLOYED AT\tHEALTHY")
	for _, s := range res {
		deployedAt := "-"
		if !s.DeployedAt.IsZero() {
			deployedAt = s.DeployedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", s.Environment, orDash(string(s.Current)), orDash(string(s.Previous)), deployedAt, s.Healthy)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
