// Package cli wires the six QA subcommands: check-env, discover, run,
// upload, report and post.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/infra/logger"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	DebugFile string
}

// NewRootCommand creates the root command for the swagqa CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "swagqa",
		Short:   "swagqa - contract-driven API QA tool",
		Long:    `swagqa derives test plans from an OpenAPI contract, executes them against a live target, and reports the verdicts on a pull request.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.DebugFile != "" {
				if err := logger.Init(true, opts.DebugFile); err != nil {
					return err
				}
				logger.Info("swagqa starting", logger.String("log_file", opts.DebugFile))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DebugFile, "debug-file", "", "Path to debug log file (enables file logging)")

	cmd.AddCommand(NewCheckEnvCommand(opts))
	cmd.AddCommand(NewDiscoverCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewUploadCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewPostCommand(opts))

	return cmd
}
