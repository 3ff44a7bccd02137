package cli

import (
	"github.com/spf13/cobra"

	"github.com/swagqa/swagqa-cli/internal/envcheck"
	"github.com/swagqa/swagqa-cli/internal/infra/logger"
)

// CheckEnvOptions holds flags for the check-env command.
type CheckEnvOptions struct {
	*RootOptions
	BaseURL       string
	OpenAPIPath   string
	DockerCompose bool
	ProjectRoot   string
}

// NewCheckEnvCommand creates the check-env command.
func NewCheckEnvCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckEnvOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check-env",
		Short: "Probe the target environment",
		Long: `Probe the pieces a QA run depends on: the container runtime (optional),
the backend health endpoint, and the API contract endpoint. Succeeds only
if every probe is up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := envcheck.New().Check(envcheck.Options{
				BaseURL:       opts.BaseURL,
				OpenAPIPath:   opts.OpenAPIPath,
				DockerCompose: opts.DockerCompose,
				ProjectRoot:   opts.ProjectRoot,
			})

			printJSON(cmd.OutOrStdout(), status)

			if !status.AllUp() {
				logger.Warn("environment is not fully up",
					logger.String("backend", status.Backend),
					logger.String("swagger", status.Swagger))
				return NewExitError(ExitFailure, "environment is not fully up")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Base URL of the backend under test")
	cmd.Flags().StringVar(&opts.OpenAPIPath, "openapi-path", "/openapi.json", "Path of the API contract endpoint")
	cmd.Flags().BoolVar(&opts.DockerCompose, "docker-compose", false, "Also probe the compose stack")
	cmd.Flags().StringVar(&opts.ProjectRoot, "project-root", "", "Working directory for the compose probe")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}
