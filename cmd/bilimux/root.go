package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	convertFlags := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:   "bilimux [flags] [base_directory] [output_directory]",
		Short: "Convert Bilibili cached downloads into MP4 files",
		Long: "bilimux pairs the audio and video .m4s fragments of each cached Bilibili item\n" +
			"under <base_directory> and muxes them into MP4 files with ffmpeg.\n\n" +
			"base_directory defaults to the working directory. Output defaults to\n" +
			"<base_directory>/bili_video_output and audio to <base_directory>/bili_audio_output.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, convertFlags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.ffmpeg, "ffmpeg", "", "Path to the ffmpeg executable")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.Flags().BoolVar(&convertFlags.audio, "audio", false, "Also extract an audio-only file for each item")
	rootCmd.Flags().BoolVar(&convertFlags.audioOnly, "audio-only", false, "Extract audio only; do not write MP4 files (overrides --audio)")
	rootCmd.Flags().StringVar(&convertFlags.audioDir, "audio-directory", "", "Directory for audio-only files (default: <base_directory>/bili_audio_output)")
	rootCmd.Flags().StringVar(&convertFlags.audioFormat, "audio-format", "", "Audio-only format: auto, m4a, mp3, flac")
	rootCmd.Flags().BoolVar(&convertFlags.noOverwrite, "no-overwrite", false, "Skip outputs that already exist")
	rootCmd.SetGlobalNormalizationFunc(underscoreAlias)

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newRepairCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// underscoreAlias accepts --audio_directory as spelled by the original
// Python tool.
func underscoreAlias(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "audio_directory" {
		name = "audio-directory"
	}
	return pflag.NormalizedName(name)
}
