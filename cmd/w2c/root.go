package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mrclmr/w2c/internal/config"
	"github.com/mrclmr/w2c/internal/log"

	"github.com/spf13/cobra"
)

func ExecuteContext(ctx context.Context, version string) error {
	rootCmd, err := newRootCmd(version)
	if err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(
	version string,
) (*cobra.Command, error) {
	var configPath string

	rootCmd := &cobra.Command{
		Version:           version,
		Use:               "w2c <audio-dir> <output-dir>",
		Short:             "Convert wav files to C++ source files",
		Long:              "Convert wav files found recursively in <audio-dir> to C++ source files in <output-dir> embedding the samples as static arrays.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: autocomplete,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("configuration not found: %w", err)
				}
				f, err := os.OpenFile(configPath, os.O_RDONLY, 0o600)
				if err != nil {
					return err
				}
				defer func() {
					_ = f.Close()
				}()
				cfg, err = config.Parse(f)
				if err != nil {
					return err
				}
			}
			switch cfg.LogLevel.Level() {
			case slog.LevelInfo:
				slog.SetDefault(slog.New(log.NewMsgHandler(os.Stdout, cfg.LogLevel.Level())))
			default:
				slog.SetLogLoggerLevel(cfg.LogLevel.Level())
			}
			return run(cmd.Context(), cfg, args[0], args[1])
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "generation config yaml (see 'w2c example')")

	exampleCmd := &cobra.Command{
		Use:               "example",
		Short:             "Print example generation config yaml",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(os.Stdout, config.Example())
			return err
		},
	}

	rootCmd.AddCommand(exampleCmd)

	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd, nil
}

func autocomplete(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 2 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
