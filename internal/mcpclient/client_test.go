package mcpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// fakeMCPServer speaks enough streamable HTTP MCP to serve a handshake and
// one tools/list call.
type fakeMCPServer struct {
	mu          sync.Mutex
	methods     []string
	sessionSeen bool
}

const fakeSessionID = "sess-42"

func (f *fakeMCPServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.methods = append(f.methods, req.Method)
		if r.Header.Get("Mcp-Session-Id") == fakeSessionID {
			f.sessionSeen = true
		}
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch req.Method {
		case "initialize":
			w.Header().Set("Mcp-Session-Id", fakeSessionID)
			writeRPC(w, req.ID, map[string]any{
				"protocolVersion": protocolVersion,
				"serverInfo":      map[string]any{"name": "fake", "version": "0.0.1"},
			})
		case "notifications/initialized":
			w.WriteHeader(http.StatusAccepted)
		case "tools/list":
			writeRPC(w, req.ID, map[string]any{
				"tools": []any{
					map[string]any{
						"name":        "get-user",
						"description": "Get a user profile by ID.",
						"inputSchema": map[string]any{"type": "object"},
					},
					map[string]any{
						"name":        "list-orders",
						"description": "List a customer's orders.",
						"inputSchema": map[string]any{"type": "object"},
					},
				},
			})
		default:
			t.Errorf("unexpected method %q", req.Method)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func writeRPC(w http.ResponseWriter, id uint64, result any) {
	raw, _ := json.Marshal(result)
	json.NewEncoder(w).Encode(response{JSONRPC: "2.0", ID: id, Result: raw}) //nolint:errcheck
}

func TestFetchTools_HTTP(t *testing.T) {
	fake := &fakeMCPServer{}
	ts := httptest.NewServer(fake.handler(t))
	defer ts.Close()

	tools, err := FetchTools(context.Background(), ts.URL, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tools) != 2 {
		t.Fatalf("got %d tools", len(tools))
	}
	if tools[0].Name != "get-user" || tools[1].Name != "list-orders" {
		t.Fatalf("tools = %v, %v", tools[0].Name, tools[1].Name)
	}
	if tools[0].Source.Kind != tooldef.SourceServer {
		t.Errorf("source kind = %q", tools[0].Source.Kind)
	}
	if want := ts.URL + "#/tools/0"; tools[0].Source.Location != want {
		t.Errorf("location = %q, want %q", tools[0].Source.Location, want)
	}
	if len(tools[0].Source.Raw) == 0 {
		t.Error("raw payload not preserved")
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	want := []string{"initialize", "notifications/initialized", "tools/list"}
	if len(fake.methods) != len(want) {
		t.Fatalf("methods = %v, want %v", fake.methods, want)
	}
	for i := range want {
		if fake.methods[i] != want[i] {
			t.Fatalf("methods = %v, want %v", fake.methods, want)
		}
	}
	if !fake.sessionSeen {
		t.Error("session ID from initialize was not echoed on later requests")
	}
}

func TestFetchTools_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response{ //nolint:errcheck
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32601, Message: "method not found"},
		})
	}))
	defer ts.Close()

	_, err := FetchTools(context.Background(), ts.URL, Options{})
	if err == nil || !strings.Contains(err.Error(), "method not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestFetchTools_EmptyCommand(t *testing.T) {
	if _, err := FetchTools(context.Background(), "   ", Options{}); err == nil {
		t.Fatal("empty command accepted")
	}
}
