package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"remapper/internal/analyze"
	"remapper/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	logLevel  string
	logFormat string

	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "remapcheck",
		Short:         "Check struct mapping files against Go source types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initLogger(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", string(logging.LevelWarn), "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", string(logging.FormatConsole), "log format: console or json")

	cmd.AddCommand(
		newCheckCommand(opts),
		newFmtCommand(opts),
		newFieldsCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func (o *rootOptions) initLogger(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	format, err := logging.ParseFormat(o.logFormat)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:         level,
		Format:        format,
		Writer:        cmd.ErrOrStderr(),
		DisableCaller: true,
	})
	if err != nil {
		return err
	}

	o.logger = logger.With(zap.String("command", cmd.Name()))

	return nil
}

// loadGraph analyzes the given package patterns, "./..." when none are given.
func (o *rootOptions) loadGraph(patterns []string) (*analyze.TypeGraph, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	o.logger.Debug("loading packages", zap.Strings("patterns", patterns))

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("packages loaded", zap.Int("packages", len(graph.Packages)), zap.Int("types", len(graph.Types)))

	return graph, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the remapcheck version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "remapcheck "+version)
		},
	}
}
