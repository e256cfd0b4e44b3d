package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/triage-ai/mcplint/internal/cli"
	"github.com/triage-ai/mcplint/internal/engine"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mcplint",
	Short: "Lint MCP tool definitions",
	Long:  "mcplint validates MCP tool definitions against correctness, security, and usability rules.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")

	rootCmd.Version = engine.EngineVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("mcplint version %s\n", engine.EngineVersion))

	rootCmd.AddCommand(cli.NewValidateCmd())
	rootCmd.AddCommand(cli.NewRulesCmd())
}
