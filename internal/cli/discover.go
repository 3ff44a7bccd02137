package cli

import (
	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/contract"
	"github.com/swagqa/swagqa-cli/internal/infra/logger"
	"github.com/swagqa/swagqa-cli/internal/synth"
	"github.com/swagqa/swagqa-cli/internal/testcase"
)

// DiscoverOptions holds flags for the discover command.
type DiscoverOptions struct {
	*RootOptions
	SpecURL     string
	SpecFile    string
	Paths       []string
	Output      string
	NoAuthProbe bool
}

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiscoverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Generate test cases from an API contract",
		Long: `Parse an OpenAPI contract and generate the test plan: one happy-path
case per operation plus boundary cases for auth, identifiers and
pagination.

Example:
  swagqa discover --spec-url http://localhost:8000/openapi.json \
    --paths "GET /api/v1/projects/{project_id}/workflows"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *contract.Document
			var err error
			switch {
			case opts.SpecFile != "":
				doc, err = contract.Load(opts.SpecFile)
			case opts.SpecURL != "":
				doc, err = contract.Fetch(opts.SpecURL)
			default:
				return NewExitError(ExitCommandError, "either --spec-file or --spec-url is required")
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load contract", err)
			}

			s := synth.New()
			s.AuthProbe = !opts.NoAuthProbe
			cases := s.Generate(doc, synth.ParseFilters(opts.Paths))

			if err := testcase.WritePlan(opts.Output, cases); err != nil {
				return WrapExitError(ExitCommandError, "failed to write test plan", err)
			}

			summary := testcase.Summarize(cases)
			summary.Output = opts.Output
			logger.Info("test plan generated",
				logger.Int("total", summary.Total),
				logger.String("output", opts.Output))
			printJSON(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.SpecURL, "spec-url", "", "URL of the API contract")
	cmd.Flags().StringVar(&opts.SpecFile, "spec-file", "", "Path to the API contract file")
	cmd.Flags().StringArrayVar(&opts.Paths, "paths", nil, `Operation filters, e.g. "GET /api/v1/items/{item_id}"`)
	cmd.Flags().StringVar(&opts.Output, "output", "/tmp/qa-test-cases.json", "Test plan output path")
	cmd.Flags().BoolVar(&opts.NoAuthProbe, "no-auth-probe", false, "Skip the unauthenticated (401) case for every operation")

	return cmd
}
