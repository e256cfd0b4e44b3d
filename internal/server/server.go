// Package server exposes the validator over HTTP. It wraps the engine
// without altering the result shape: the response body of /v1/validate is
// the ValidationResult, serialized.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triage-ai/mcplint/internal/auth"
	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/loader"
	"github.com/triage-ai/mcplint/internal/rules"
	"github.com/triage-ai/mcplint/internal/storage"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// maxRequestBytes bounds a validation request body.
const maxRequestBytes = 8 << 20

// Server handles validation requests.
type Server struct {
	engine        *engine.Engine
	authenticator auth.Authenticator
	writer        storage.EventWriter
	logger        *zap.Logger
}

// New creates a Server. writer may be nil when event persistence is off.
func New(eng *engine.Engine, authenticator auth.Authenticator, writer storage.EventWriter, logger *zap.Logger) *Server {
	return &Server{
		engine:        eng,
		authenticator: authenticator,
		writer:        writer,
		logger:        logger,
	}
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", allowMethod(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/v1/rules", allowMethod(http.MethodGet, s.requireAuth(s.handleRules)))
	mux.HandleFunc("/v1/validate", allowMethod(http.MethodPost, s.requireAuth(s.handleValidate)))
	return mux
}

// allowMethod restricts a route to one HTTP method, matching the behavior of
// Go 1.22+ method-qualified ServeMux patterns on the Go 1.21 toolchain.
func allowMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// requireAuth authenticates the bearer key and stashes the project in the
// request context.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *auth.ProjectContext)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey, err := auth.ExtractAPIKey(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing or malformed API key")
			return
		}
		project, err := s.authenticator.Authenticate(r.Context(), apiKey)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next(w, r, project)
	}
}

// ruleInfo is the /v1/rules listing entry.
type ruleInfo struct {
	ID            string         `json:"id"`
	Category      rules.Category `json:"category"`
	Severity      rules.Severity `json:"defaultSeverity"`
	Description   string         `json:"description"`
	Documentation string         `json:"documentation,omitempty"`
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request, _ *auth.ProjectContext) {
	all := s.engine.Registry().All()
	infos := make([]ruleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, ruleInfo{
			ID:            r.ID,
			Category:      r.Category,
			Severity:      r.Severity,
			Description:   r.Description,
			Documentation: r.Documentation,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": infos})
}

// validateRequest is the /v1/validate request body. Tools stay raw so each
// definition keeps its original payload for provenance.
type validateRequest struct {
	Tools    []json.RawMessage `json:"tools"`
	Config   engine.Config     `json:"config,omitempty"`
	Advanced *bool             `json:"advanced,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request, project *auth.ProjectContext) {
	start := time.Now()
	requestID := uuid.NewString()

	var req validateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Tools) == 0 {
		writeError(w, http.StatusBadRequest, "request contains no tools")
		return
	}

	tools := make([]tooldef.ToolDefinition, 0, len(req.Tools))
	for i, raw := range req.Tools {
		tool, err := loader.DecodeTool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("tool %d: %v", i, err))
			return
		}
		tool.Source = tooldef.Source{
			Kind:     tooldef.SourceServer,
			Location: fmt.Sprintf("request#/tools/%d", i),
			Raw:      raw,
		}
		tools = append(tools, tool)
	}

	advanced := true
	if req.Advanced != nil {
		advanced = *req.Advanced
	}

	result := s.engine.Validate(tools, engine.Options{
		Overrides: req.Config,
		Advanced:  advanced,
	})

	latency := float32(time.Since(start).Microseconds()) / 1000.0
	s.logger.Info("validation completed",
		zap.String("request_id", requestID),
		zap.String("project_id", project.ProjectID),
		zap.Int("tool_count", len(tools)),
		zap.Bool("valid", result.Valid),
		zap.Int("maturity_score", result.Summary.MaturityScore),
		zap.Float32("latency_ms", latency),
	)

	if s.writer != nil {
		s.writer.Write(&storage.ValidationEvent{
			RequestID:       requestID,
			ProjectID:       project.ProjectID,
			Timestamp:       result.Metadata.Timestamp,
			SourceKind:      string(tooldef.SourceServer),
			SourceLocation:  "request",
			ToolCount:       int32(result.Summary.TotalTools),
			ValidToolCount:  int32(result.Summary.ValidTools),
			Valid:           result.Valid,
			ErrorCount:      int32(result.Summary.IssuesBySeverity[rules.SeverityError]),
			WarningCount:    int32(result.Summary.IssuesBySeverity[rules.SeverityWarning]),
			SuggestionCount: int32(result.Summary.IssuesBySeverity[rules.SeveritySuggestion]),
			MaturityScore:   int32(result.Summary.MaturityScore),
			MaturityLevel:   string(result.Summary.MaturityLevel),
			EngineVersion:   result.Metadata.EngineVersion,
			ConfigHash:      result.Metadata.ConfigHash,
			LatencyMs:       latency,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.Encode(payload) //nolint:errcheck // client gone, nothing to do
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
