package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type historyOpts struct {
	*rootOpts
}

func newHistory(parent *rootOpts) *historyOpts {
	return &historyOpts{rootOpts: parent}
}

func (opts *historyOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recent deployment attempts and the audit trail",
		RunE:  opts.RunE,
	}
	return cmd
}

func (opts *historyOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("expected no arguments")
	}
	res, err := opts.API.History(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tENVIRONMENT\tCOMMIT\tREQUESTER\tSTATUS")
	for _, a := range res.Attempts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.Environment, a.Commit, a.Requester, a.Status)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tREQUESTER\tACTION\tENVIRONMENT\tOUTCOME")
	for _, e := range res.Audit {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Requester, e.Action, e.Environment, e.Outcome)
	}
	return w.Flush()
}
