package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/sau"
)

// app carries state shared by all subcommands. It is populated by the root
// command's PersistentPreRunE once flags have been parsed.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sau",
		Short: "Concatenate files into one container and split them back out",
		Long: `sau writes a list of files into a single container: a length-prefixed
directory table followed by the raw bytes of every file. Splitting a
container recreates the files in a directory.

Examples:
  sau merge -a notes.txt data.bin -o bundle.sau
  sau split -b bundle.sau out/
  sau list bundle.sau`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging and per-file progress")
	flags.StringVar(&a.cfgFile, "config", "", "config file (TOML, YAML or JSON)")
	flags.String(flagMaxSize, humanize.IBytes(sau.DefaultMaxTotalSize), "largest container to write or read, 0 disables the limit")

	root.AddCommand(newMergeCmd(a), newSplitCmd(a), newListCmd(a))
	return root
}

// setup loads configuration and builds the logger for the running command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = levelDebug
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	a.logger.Debug("configuration loaded",
		"config", a.cfgFile,
		"max_total_size", humanize.IBytes(cfg.MaxTotalSize),
		"max_files", cfg.MaxFiles)
	return nil
}

// progress returns a callback that prints per-file progress in verbose mode.
func (a *app) progress(cmd *cobra.Command) sau.ProgressFunc {
	if !a.verbose {
		return nil
	}
	w := cmd.ErrOrStderr()
	return func(e sau.ProgressEvent) {
		fmt.Fprintf(w, "[%d/%d] %s %s (%s / %s)\n",
			e.FilesDone, e.FilesTotal, e.Stage, e.Path,
			humanize.IBytes(e.BytesDone), humanize.IBytes(e.BytesTotal))
	}
}
