package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triage-ai/mcplint/internal/rules"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

const (
	// EngineVersion is stamped into every result's metadata.
	EngineVersion = "0.4.0"

	// SpecVersion is the MCP specification revision the rules target.
	SpecVersion = "2025-06-18"
)

// Engine holds the immutable rule registry and the injected schema checker.
// It keeps no state between runs, so one Engine may serve concurrent
// validations of independent tool sets.
type Engine struct {
	registry *rules.Registry
	logger   *zap.Logger
}

// New constructs an engine with a freshly built registry. The schema
// compilation capability is created here, once, and injected into the
// registry's schema rules.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: rules.NewRegistry(rules.NewSchemaChecker()),
		logger:   logger,
	}
}

// Registry exposes the rule table for reporters and the rules CLI command.
func (e *Engine) Registry() *rules.Registry {
	return e.registry
}

// Options configures one validation run.
type Options struct {
	// FileConfig is the configuration loaded from a config file, if any.
	FileConfig Config

	// Overrides is the inline configuration supplied by the caller. It
	// takes precedence over FileConfig, which takes precedence over rule
	// defaults.
	Overrides Config

	// Advanced enables the cross-tool schema index. Without it the
	// duplication rule has nothing to look up and stays silent.
	Advanced bool
}

// Validate runs the full pipeline: resolve configuration, build the shared
// context, execute rules, aggregate, score, and attach metadata. All
// suspension (config file reads, tool acquisition) happens before this call;
// the run itself is one uninterrupted, deterministic computation.
func (e *Engine) Validate(tools []tooldef.ToolDefinition, opts Options) *ValidationResult {
	start := time.Now()

	effective := ResolveConfig(e.registry, opts.FileConfig, opts.Overrides)

	base := &rules.Context{AllTools: tools}
	if opts.Advanced {
		base.Index = rules.BuildSchemaIndex(tools)
	}

	perTool, diags := execute(e.registry, tools, effective, base)
	summary, toolResults, flat := aggregate(tools, perTool)
	summary.MaturityScore, summary.MaturityLevel = maturity(perTool)

	for _, d := range diags {
		e.logger.Warn("rule execution fault",
			zap.String("rule", d.RuleID),
			zap.String("tool", d.ToolName),
			zap.String("message", d.Message),
		)
	}

	return &ValidationResult{
		Valid:   summary.IssuesBySeverity[rules.SeverityError] == 0,
		Summary: summary,
		Issues:  flat,
		Tools:   toolResults,
		Metadata: Metadata{
			RunID:            uuid.NewString(),
			EngineVersion:    EngineVersion,
			SpecVersion:      SpecVersion,
			Timestamp:        start.UTC(),
			DurationMs:       float64(time.Since(start).Microseconds()) / 1000.0,
			ConfigHash:       configHash(effective),
			AdvancedAnalysis: opts.Advanced,
			Diagnostics:      diags,
		},
	}
}
