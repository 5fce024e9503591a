package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilimux/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [base_directory] [output_directory]",
		Short: "Report ffmpeg availability and directory access",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var targets preflight.Targets
			if len(args) > 0 {
				if targets.BaseDir, err = absDir(args[0]); err != nil {
					return err
				}
				targets.OutputDir = cfg.ResolveOutputDir(targets.BaseDir)
			}
			if len(args) > 1 {
				if targets.OutputDir, err = absDir(args[1]); err != nil {
					return err
				}
			}
			if targets.BaseDir != "" {
				targets.AudioDir = cfg.ResolveAudioDir(targets.BaseDir)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cfg, targets)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range results {
				fmt.Fprintln(out, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
			}
			return preflight.Err(results)
		},
	}
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Passed:
		return statusOK
	case r.Optional:
		return statusWarn
	default:
		return statusError
	}
}
