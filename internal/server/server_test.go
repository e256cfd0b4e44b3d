package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/triage-ai/mcplint/internal/auth"
	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/storage"
)

type captureWriter struct {
	mu     sync.Mutex
	events []*storage.ValidationEvent
}

func (w *captureWriter) Write(e *storage.ValidationEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
}

func (w *captureWriter) Close() {}

func newTestServer(t *testing.T) (*httptest.Server, *captureWriter) {
	t.Helper()
	writer := &captureWriter{}
	srv := New(engine.New(nil), auth.NewStaticAuthenticator(), writer, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, writer
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, apiKey, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doRequest(t, ts, "GET", "/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts, _ := newTestServer(t)

	if resp := doRequest(t, ts, "GET", "/v1/rules", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no key: status = %d", resp.StatusCode)
	}
	if resp := doRequest(t, ts, "POST", "/v1/validate", "sk_wrong_prefix", "{}"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong prefix: status = %d", resp.StatusCode)
	}
	if resp := doRequest(t, ts, "POST", "/v1/validate", "mlk_a", "{}"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("rejected key: status = %d", resp.StatusCode)
	}
}

func TestRulesListing(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doRequest(t, ts, "GET", "/v1/rules", "mlk_testkey1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Rules []ruleInfo `json:"rules"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Rules) == 0 {
		t.Fatal("no rules listed")
	}
	for _, r := range body.Rules {
		if r.ID == "" || r.Description == "" || r.Severity == "" {
			t.Fatalf("incomplete rule entry: %+v", r)
		}
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts, writer := newTestServer(t)

	body := `{
		"tools": [
			{
				"name": "get-user",
				"description": "Get a user profile by ID. Use this when the user asks for account details.",
				"inputSchema": {
					"type": "object",
					"properties": {
						"user_id": {"type": "string", "description": "User identifier.", "maxLength": 64}
					},
					"required": ["user_id"],
					"additionalProperties": false
				}
			},
			{"name": "mystery"}
		]
	}`
	resp := doRequest(t, ts, "POST", "/v1/validate", "mlk_testkey1", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result engine.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Summary.TotalTools != 2 || result.Summary.ValidTools != 1 {
		t.Fatalf("summary = %+v", result.Summary)
	}
	if result.Valid {
		t.Fatal("set with a schemaless tool reported valid")
	}
	if !result.Metadata.AdvancedAnalysis {
		t.Fatal("advanced analysis should default to on")
	}

	writer.mu.Lock()
	defer writer.mu.Unlock()
	if len(writer.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(writer.events))
	}
	event := writer.events[0]
	if event.ToolCount != 2 || event.Valid {
		t.Fatalf("event = %+v", event)
	}
	if event.ProjectID == "" || event.RequestID == "" {
		t.Fatalf("event missing identity: %+v", event)
	}
}

func TestValidateEndpoint_ConfigOverride(t *testing.T) {
	ts, _ := newTestServer(t)

	body := `{
		"tools": [{"name": "mystery"}],
		"config": {"SCH001": false, "LLM001": false, "NAM004": false, "BPR001": false, "BPR003": false, "LLM007": false, "SCH008": false, "BPR005": false}
	}`
	resp := doRequest(t, ts, "POST", "/v1/validate", "mlk_testkey1", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result engine.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	for _, issue := range result.Issues {
		if issue.RuleID == "SCH001" || issue.RuleID == "LLM001" {
			t.Fatalf("disabled rule fired: %+v", issue)
		}
	}
}

func TestValidateEndpoint_BadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"no tools", `{"tools": []}`},
		{"tools missing", `{}`},
		{"malformed tool", `{"tools": [42]}`},
		{"bad config severity", `{"tools": [{"name": "x"}], "config": {"SCH001": "fatal"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, ts, "POST", "/v1/validate", "mlk_testkey1", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Fatal("error body missing message")
			}
		})
	}
}
