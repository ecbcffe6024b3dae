package main

import (
	"github.com/spf13/cobra"

	"github.com/meigma/sau"
)

func newSplitCmd(a *app) *cobra.Command {
	var (
		names     string
		noClobber bool
		noMode    bool
	)

	cmd := &cobra.Command{
		Use:   "split [-b] CONTAINER DIR",
		Short: "Extract a container into a directory",
		Long: `Split recreates the files stored in CONTAINER inside DIR, creating DIR if
needed. Files are named file1.txt, file2.txt, ... in table order unless
--names=original is given. Records of size zero produce no file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			naming, err := sau.ParseNaming(names)
			if err != nil {
				return err
			}
			_, err = sau.Split(cmd.Context(), args[0], args[1],
				sau.SplitWithMaxTotalSize(a.cfg.MaxTotalSize),
				sau.SplitWithNaming(naming),
				sau.SplitWithOverwrite(!noClobber),
				sau.SplitWithPreserveMode(!noMode),
				sau.SplitWithLogger(a.logger),
				sau.SplitWithProgress(a.progress(cmd)),
			)
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolP("break", "b", false, "select split mode (accepted for compatibility)")
	flags.StringVar(&names, "names", sau.NamingSequential.String(), "output naming: sequential or original")
	flags.BoolVar(&noClobber, "no-clobber", false, "fail instead of replacing existing files")
	flags.BoolVar(&noMode, "no-preserve-mode", false, "write files with mode 0644 instead of the recorded permissions")

	return cmd
}
