package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bilimux/internal/discovery"
	"bilimux/internal/logging"
	"bilimux/internal/m4s"
)

func newRepairCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "repair [base_directory]",
		Short: "Strip the desktop client's padding prefix from fragments in place",
		Long: "The Bilibili desktop client prefixes cached .m4s fragments with nine '0' bytes.\n" +
			"Conversion skips them without touching the source; repair rewrites each\n" +
			"fragment atomically so other tools can read it directly.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := newScanner(cmd, ctx, args)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "repair")

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			repaired, failed := 0, 0
			for item, err := range scanner.ItemsContext(cmd.Context()) {
				if err != nil {
					if errors.Is(err, discovery.ErrUnreadableBase) {
						return err
					}
					fmt.Fprintln(out, renderStatusLine("Ignored", statusWarn, err.Error(), colorize))
					continue
				}
				for _, frag := range []struct {
					path   string
					header int
				}{
					{item.VideoFragment, item.VideoHeader},
					{item.AudioFragment, item.AudioHeader},
				} {
					if frag.path == "" || frag.header == 0 {
						continue
					}
					stripped, err := m4s.Strip(frag.path)
					label := relativeTo(scanner.Base, frag.path)
					switch {
					case err != nil:
						failed++
						logger.Error("repair failed", logging.String("fragment", frag.path), logging.Error(err))
						fmt.Fprintln(out, renderStatusLine(label, statusError, err.Error(), colorize))
					case stripped:
						repaired++
						fmt.Fprintln(out, renderStatusLine(label, statusOK, "padding removed", colorize))
					}
				}
			}
			fmt.Fprintf(out, "Repaired %d fragment(s)", repaired)
			if failed > 0 {
				fmt.Fprintf(out, ", %d failed\n", failed)
				return fmt.Errorf("repair: %d fragment(s) failed", failed)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
