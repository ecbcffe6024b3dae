package main

import (
	"github.com/spf13/cobra"

	"github.com/meigma/sau"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "merge [-a] FILE... -o OUTPUT",
		Short: "Merge files into a container",
		Long: `Merge writes every FILE, in the order given, into the container OUTPUT.
Only the base name of each file is recorded. An existing OUTPUT is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := sau.ChangeDetectionNone
			if strict {
				mode = sau.ChangeDetectionStrict
			}
			_, err := sau.Merge(cmd.Context(), args, output,
				sau.MergeWithMaxFiles(a.cfg.MaxFiles),
				sau.MergeWithMaxTotalSize(a.cfg.MaxTotalSize),
				sau.MergeWithChangeDetection(mode),
				sau.MergeWithLogger(a.logger),
				sau.MergeWithProgress(a.progress(cmd)),
			)
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolP("append", "a", false, "select merge mode (accepted for compatibility)")
	flags.StringVarP(&output, "output", "o", "", "container to write")
	flags.Int(flagMaxFiles, sau.DefaultMaxFiles, "maximum number of input files, negative for no limit")
	flags.BoolVar(&strict, "strict", false, "fail if an input changes while it is being merged")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
