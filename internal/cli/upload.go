package cli

import (
	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/upload"
)

// UploadOptions holds flags for the upload command.
type UploadOptions struct {
	*RootOptions
	Host         string
	APIKey       string
	Repo         string
	PR           string
	GitHubBranch string
}

// NewUploadCommand creates the upload command.
func NewUploadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UploadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := upload.New().Upload(args[0], upload.Options{
				Host:   opts.Host,
				APIKey: opts.APIKey,
				Repo:   opts.Repo,
				PR:     opts.PR,
				Branch: opts.GitHubBranch,
			})
			if err != nil {
				printJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error(), "host": opts.Host})
				return WrapExitError(ExitFailure, "upload failed", err)
			}

			printJSON(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", upload.HostCatbox, "Hosting backend (catbox|imgbb|github)")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "API key for the imgbb backend")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "owner/name repository for the github backend")
	cmd.Flags().StringVar(&opts.PR, "pr", "", "PR number used as the asset folder for the github backend")
	cmd.Flags().StringVar(&opts.GitHubBranch, "github-branch", "assets", "Branch for the github backend")

	return cmd
}
