package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/sau"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list CONTAINER",
		Short: "Show the directory table of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := sau.Inspect(args[0],
				sau.SplitWithMaxTotalSize(a.cfg.MaxTotalSize),
				sau.SplitWithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tPERMISSIONS\tSIZE")
			for i, rec := range summary.Table.All() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, rec.Name, rec.Permissions, humanize.IBytes(rec.Size))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d records, %s content, %s container\n",
				summary.Table.Len(), humanize.IBytes(summary.ContentSize), humanize.IBytes(summary.ContainerSize))
			fmt.Fprintf(out, "digest: %s\n", summary.Digest)
			if n := len(summary.Skipped); n > 0 {
				fmt.Fprintf(out, "warning: %d malformed records skipped\n", n)
			}
			if summary.Truncated() {
				fmt.Fprintln(out, "warning: container is truncated")
			} else if n := summary.TrailingBytes(); n > 0 {
				fmt.Fprintf(out, "warning: %s after the last record\n", humanize.IBytes(n))
			}
			return nil
		},
	}
}
