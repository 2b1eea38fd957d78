// Package cmd wires the volsurf command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/banachtech/volsurf/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFiles   []string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "volsurf",
		Short:         "SABR and local volatility surfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(c *cobra.Command, args []string) {
			_ = c.Help()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringSliceVar(&envFiles, "env", []string{".env"}, "dotenv files")

	root.AddCommand(newCalibrateCmd())
	root.AddCommand(newServeCmd())
	return root
}

func Execute() {
	os.Exit(run(newRootCmd(), os.Args[1:]))
}

// run executes root with args and returns the process exit code. Failures go
// through the default slog logger.
func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		slog.Error("volsurf failed", "err", err)
		return 1
	}
	return 0
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := cfg.Logging.Logger(os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
