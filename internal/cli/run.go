package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/auth"
	"github.com/swagqa/swagqa-cli/internal/infra/logger"
	"github.com/swagqa/swagqa-cli/internal/runner"
	"github.com/swagqa/swagqa-cli/internal/testcase"
)

const tokenEnvVar = "SWAGQA_TOKEN"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Cases   string
	BaseURL string
	Token   string
	Output  string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a test plan against a live target",
		Long: `Execute the test plan case by case, in order, and classify every
outcome. The results artifact is written at the end of the run; the
command fails if any case failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := testcase.ReadPlan(opts.Cases)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load test plan", err)
			}

			token := opts.Token
			if token == "" {
				token = os.Getenv(tokenEnvVar)
			}
			provider, err := auth.FromToken(token)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid authentication", err)
			}

			engine := runner.NewEngine(opts.BaseURL, provider)
			engine.SetOutput(cmd.OutOrStdout())

			logger.Info("starting run",
				logger.Int("cases", len(cases)),
				logger.String("base_url", opts.BaseURL),
				logger.String("auth", provider.Type()))

			results := engine.Run(cases)

			if err := runner.WriteResults(opts.Output, results); err != nil {
				return WrapExitError(ExitCommandError, "failed to write results", err)
			}

			tally := runner.Count(results)
			tally.Output = opts.Output

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nResult: %d/%d passed, %d failed\n", tally.Passed, tally.Total, tally.Failed)
			printJSON(out, tally)

			if tally.Failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d test cases failed", tally.Failed, tally.Total))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Cases, "cases", "", "Path to the test plan artifact")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Base URL of the target")
	cmd.Flags().StringVar(&opts.Token, "token", "", "Bearer token (falls back to "+tokenEnvVar+")")
	cmd.Flags().StringVar(&opts.Output, "output", "/tmp/qa-results.json", "Results output path")
	_ = cmd.MarkFlagRequired("cases")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}
