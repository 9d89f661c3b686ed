// SPDX-License-Identifier: Apache-2.0

package root

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/gitmit/gitmit/internal/cmd/version"
	"github.com/gitmit/gitmit/internal/display"
	"github.com/gitmit/gitmit/internal/gitmit"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type options struct {
	noColor       bool
	debug         bool
	rootFolder    string
	consider      string
	include       []string
	exclude       []string
	timestampsFor []string
	noCache       bool
	format        string
}

func (o *options) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(
		&o.noColor,
		"no-color",
		false,
		"turn off colored output",
	)

	cmd.PersistentFlags().BoolVar(
		&o.debug,
		"debug",
		false,
		"enable debug logging",
	)

	cmd.Flags().StringVar(
		&o.rootFolder,
		"root-folder",
		".",
		"path to the git repository to walk",
	)

	cmd.Flags().StringVar(
		&o.consider,
		"consider",
		".",
		"subtree (relative to root-folder) whose files are reported",
	)

	cmd.Flags().StringArrayVar(
		&o.include,
		"include",
		nil,
		"glob pattern a path must match to be reported (may be repeated)",
	)

	cmd.Flags().StringArrayVar(
		&o.exclude,
		"exclude",
		nil,
		"glob pattern that excludes a matching path, overriding --include (may be repeated)",
	)

	cmd.Flags().StringArrayVar(
		&o.timestampsFor,
		"timestamps-for",
		nil,
		"restrict reporting to paths matching this glob pattern, independent of --include (may be repeated)",
	)

	cmd.Flags().BoolVar(
		&o.noCache,
		"no-cache",
		false,
		"skip and do not update the on-disk attribution cache",
	)

	cmd.Flags().StringVar(
		&o.format,
		"format",
		"json",
		"output format, one of json or text",
	)
}

func (o *options) PreRunE(_ *cobra.Command, _ []string) error {
	output := os.Stdout
	isTerminal := isatty.IsTerminal(output.Fd()) || isatty.IsCygwinTerminal(output.Fd())
	if o.noColor || !isTerminal {
		display.DisableColor()
	} else if runtime.GOOS != "windows" {
		display.EnableColor()
	}

	level := slog.LevelInfo
	if o.debug || os.Getenv("GITMIT_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	return nil
}

func (o *options) Run(cmd *cobra.Command, _ []string) error {
	result, err := gitmit.Run(gitmit.Options{
		RootFolder:    o.rootFolder,
		Consider:      o.consider,
		Include:       o.include,
		Exclude:       o.exclude,
		TimestampsFor: o.timestampsFor,
		NoCache:       o.noCache,
	})
	if err != nil {
		return err
	}

	format := display.Format(o.format)
	if format != display.FormatJSON && format != display.FormatText {
		return fmt.Errorf("unknown output format %q, want json or text", o.format)
	}

	return display.Render(cmd.OutOrStdout(), result, format)
}

func New() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:               "gitmit",
		Short:             "Report the most recent commit to change each tracked file",
		Long:              `gitmit walks a Git repository's history and, for a set of target paths, reports the commit time of the most recent commit that changed each one, correctly handling merges by requiring a change relative to every parent.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: o.PreRunE,
	}

	o.AddFlags(cmd)
	cmd.RunE = o.Run

	cmd.AddCommand(version.New())

	return cmd
}
