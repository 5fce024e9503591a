package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"bilimux/internal/discovery"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [base_directory] [output_directory]",
		Short: "List discovered items without converting anything",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := newScanner(cmd, ctx, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var rows [][]string
			for item, err := range scanner.ItemsContext(cmd.Context()) {
				if err != nil {
					if errors.Is(err, discovery.ErrUnreadableBase) {
						return err
					}
					fmt.Fprintln(out, renderStatusLine("Ignored", statusWarn, err.Error(), colorize))
					continue
				}
				rows = append(rows, scanRow(len(rows)+1, item))
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No items found.")
				return nil
			}
			headers := []string{"#", "Name", "Group", "Video", "Audio", "Padded", "Output"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}
}

func scanRow(index int, item discovery.WorkItem) []string {
	return []string{
		strconv.Itoa(index),
		item.DisplayName,
		dashIfEmpty(item.Group),
		dashIfEmpty(relativeTo(item.SourceDir, item.VideoFragment)),
		dashIfEmpty(relativeTo(item.SourceDir, item.AudioFragment)),
		yesNo(item.VideoHeader > 0 || item.AudioHeader > 0),
		item.OutputPath,
	}
}

// newScanner builds a discovery scanner from the positional arguments
// shared by scan and repair.
func newScanner(cmd *cobra.Command, ctx *commandContext, args []string) (*discovery.Scanner, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	base, err := absDir(baseArg(args))
	if err != nil {
		return nil, err
	}
	outputDir := cfg.ResolveOutputDir(base)
	if len(args) > 1 {
		if outputDir, err = absDir(args[1]); err != nil {
			return nil, err
		}
	}
	scanner := &discovery.Scanner{
		Base:      base,
		OutputDir: outputDir,
		Exclude:   []string{cfg.ResolveAudioDir(base)},
		Logger:    logger,
	}
	if p := prober(cfg, logger); p != nil {
		scanner.Prober = p
	}
	return scanner, nil
}

func relativeTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
