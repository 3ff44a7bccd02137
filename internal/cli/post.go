package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/ghcli"
)

// PostOptions holds flags for the post command.
type PostOptions struct {
	*RootOptions
	PR       int
	Body     string
	BodyFile string
}

// NewPostCommand creates the post command.
func NewPostCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PostOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a Markdown body as a PR review comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := opts.Body
			if opts.BodyFile != "" {
				content, err := os.ReadFile(opts.BodyFile)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read body file", err)
				}
				body = string(content)
			}
			if body == "" {
				return NewExitError(ExitCommandError, "either --body or --body-file is required")
			}

			if err := ghcli.Comment(opts.PR, body); err != nil {
				printJSON(cmd.OutOrStdout(), map[string]any{"error": err.Error(), "pr": opts.PR})
				return WrapExitError(ExitFailure, "post failed", err)
			}

			printJSON(cmd.OutOrStdout(), struct {
				Status string `json:"status"`
				PR     int    `json:"pr"`
			}{"posted", opts.PR})
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.PR, "pr", 0, "Pull request number")
	cmd.Flags().StringVar(&opts.Body, "body", "", "Comment body")
	cmd.Flags().StringVar(&opts.BodyFile, "body-file", "", "Path to a file holding the comment body")
	_ = cmd.MarkFlagRequired("pr")

	return cmd
}
