package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/loader"
	"github.com/triage-ai/mcplint/internal/mcpclient"
	"github.com/triage-ai/mcplint/internal/reporting"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// NewValidateCmd creates the "validate" subcommand.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate MCP tool definitions from a file or a live server",
		Long: "Validate runs the full rule set against tool definitions read from a\n" +
			"JSON/YAML file, or pulled from a running MCP server with --server.",
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().String("format", "text", "Output format: text | json | sarif")
	cmd.Flags().String("config", "", "Rule configuration file (YAML or JSON)")
	cmd.Flags().String("server", "", "MCP server to pull tools from: an http(s) URL or a command line")
	cmd.Flags().Duration("timeout", mcpclient.DefaultTimeout, "Timeout for server communication")
	cmd.Flags().StringArray("disable", nil, "Rule IDs to disable (repeatable)")
	cmd.Flags().Bool("no-advanced", false, "Skip the cross-tool duplication analysis")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	configPath, _ := cmd.Flags().GetString("config")
	serverTarget, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	disabled, _ := cmd.Flags().GetStringArray("disable")
	noAdvanced, _ := cmd.Flags().GetBool("no-advanced")
	out := cmd.OutOrStdout()

	if (len(args) == 0) == (serverTarget == "") {
		return exitError(exitInternal, "provide exactly one tool source: a file argument or --server")
	}

	logger := buildLogger(cmd)
	defer logger.Sync() //nolint:errcheck // best-effort flush

	// All I/O happens up front: config first, then tools. The validation
	// run itself is one uninterrupted computation.
	var fileConfig engine.Config
	if configPath != "" {
		var err error
		fileConfig, err = engine.LoadConfigFile(configPath)
		if err != nil {
			return exitError(exitInternal, "%v", err)
		}
	}

	overrides := engine.Config{}
	for _, id := range disabled {
		overrides[id] = engine.RuleSetting{Disabled: true}
	}

	tools, err := acquireTools(cmd, args, serverTarget, timeout, logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "%v", err)
		}
		return exitError(exitInternal, "%v", err)
	}

	eng := engine.New(logger)
	result := eng.Validate(tools, engine.Options{
		FileConfig: fileConfig,
		Overrides:  overrides,
		Advanced:   !noAdvanced,
	})

	if err := render(out, format, result, eng); err != nil {
		return exitError(exitInternal, "rendering result: %v", err)
	}

	if !result.Valid {
		return exitError(exitValidation, "validation failed: %d error(s)",
			result.Summary.IssuesBySeverity["error"])
	}
	return nil
}

func acquireTools(cmd *cobra.Command, args []string, serverTarget string, timeout time.Duration, logger *zap.Logger) ([]tooldef.ToolDefinition, error) {
	if serverTarget != "" {
		return mcpclient.FetchTools(cmd.Context(), serverTarget, mcpclient.Options{
			Timeout: timeout,
			Logger:  logger,
		})
	}
	return loader.LoadFile(args[0])
}

func render(out io.Writer, format string, result *engine.ValidationResult, eng *engine.Engine) error {
	switch format {
	case "text":
		return reporting.WriteText(out, result)
	case "json":
		return reporting.WriteJSON(out, result)
	case "sarif":
		return reporting.WriteSARIF(out, result, eng.Registry())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// buildLogger returns a stderr logger honoring the --verbose flag.
func buildLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
