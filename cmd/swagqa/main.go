package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/swagqa/swagqa-cli/internal/cli"
	"github.com/swagqa/swagqa-cli/internal/infra/logger"
)

var (
	version = "dev"
)

func main() {
	_ = godotenv.Load()

	rootCmd := cli.NewRootCommand(version)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	logger.Close()
	os.Exit(cli.GetExitCode(err))
}
