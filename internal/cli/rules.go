package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/rules"
)

// NewRulesCmd creates the "rules" subcommand, which lists the rule table.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List all validation rules",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}

	cmd.Flags().String("category", "", "Only list rules in this category")

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	category, _ := cmd.Flags().GetString("category")
	out := cmd.OutOrStdout()

	reg := engine.New(nil).Registry()

	var listed []rules.Rule
	if category != "" {
		listed = reg.ByCategory(rules.Category(category))
		if len(listed) == 0 {
			return exitError(exitInternal, "unknown category %q", category)
		}
	} else {
		listed = reg.All()
	}

	for _, r := range listed {
		fmt.Fprintf(out, "%-8s %-18s %-10s %s\n", r.ID, r.Category, r.Severity, r.Description)
	}
	return nil
}
