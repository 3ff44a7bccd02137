package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/report"
	"github.com/swagqa/swagqa-cli/internal/runner"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Results      string
	PR           int
	Task         string
	Branch       string
	AuthStrategy string
	Images       string
	Output       string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the Markdown PR comment from a results artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := runner.ReadRecords(opts.Results)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load results", err)
			}

			var images map[string]string
			if opts.Images != "" {
				if err := json.Unmarshal([]byte(opts.Images), &images); err != nil {
					return WrapExitError(ExitCommandError, "invalid --images map", err)
				}
			}

			markdown := report.Render(records, report.Metadata{
				Task:         opts.Task,
				PR:           opts.PR,
				Branch:       opts.Branch,
				AuthStrategy: opts.AuthStrategy,
				Images:       images,
			})

			if err := os.WriteFile(opts.Output, []byte(markdown), 0644); err != nil {
				return WrapExitError(ExitCommandError, "failed to write report", err)
			}

			printJSON(cmd.OutOrStdout(), struct {
				Output string `json:"output"`
				Size   int    `json:"size"`
			}{opts.Output, len(markdown)})
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Results, "results", "", "Path to the results artifact")
	cmd.Flags().IntVar(&opts.PR, "pr", 0, "Pull request number")
	cmd.Flags().StringVar(&opts.Task, "task", "", "Task or ticket identifier")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch name")
	cmd.Flags().StringVar(&opts.AuthStrategy, "auth-strategy", "", "Authentication strategy label")
	cmd.Flags().StringVar(&opts.Images, "images", "", `JSON map of case id to image URL, e.g. {"TC-001": "https://..."}`)
	cmd.Flags().StringVar(&opts.Output, "output", "/tmp/qa-report.md", "Report output path")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("pr")

	return cmd
}
