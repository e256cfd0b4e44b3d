package mcpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/loader"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// DefaultTimeout bounds the whole fetch: handshake, tools/list, teardown.
const DefaultTimeout = 30 * time.Second

// Options configures a tool fetch.
type Options struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// FetchTools connects to an MCP server, lists its tools, and tears the
// connection down. An http(s) target selects the streamable HTTP transport;
// anything else is treated as a command line to run over stdio.
func FetchTools(ctx context.Context, target string, opts Options) ([]tooldef.ToolDefinition, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var (
		raw []json.RawMessage
		err error
	)
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		raw, err = fetchHTTP(ctx, target, opts.Logger)
	} else {
		raw, err = fetchStdio(ctx, target, opts.Logger)
	}
	if err != nil {
		return nil, err
	}

	tools := make([]tooldef.ToolDefinition, 0, len(raw))
	for i, payload := range raw {
		tool, err := loader.DecodeTool(payload)
		if err != nil {
			return nil, fmt.Errorf("tool %d from %s: %w", i, target, err)
		}
		tool.Source = tooldef.Source{
			Kind:     tooldef.SourceServer,
			Location: fmt.Sprintf("%s#/tools/%d", target, i),
			Raw:      payload,
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func initParams() initializeParams {
	p := initializeParams{ProtocolVersion: protocolVersion}
	p.ClientInfo = clientInfo{Name: "mcplint", Version: engine.EngineVersion}
	return p
}

// --- streamable HTTP transport ---

// fetchHTTP performs the handshake and tools/list over HTTP POST, carrying
// the session ID the server assigns during initialize.
func fetchHTTP(ctx context.Context, url string, logger *zap.Logger) ([]json.RawMessage, error) {
	client := &http.Client{}
	session := ""

	post := func(id uint64, method string, params any) (*response, error) {
		body, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if session != "" {
			req.Header.Set("Mcp-Session-Id", session)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if sid := resp.Header.Get("Mcp-Session-Id"); sid != "" {
			session = sid
		}
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%s: server returned %s", method, resp.Status)
		}
		if id == 0 {
			// Notification; no response body expected.
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			return nil, nil
		}

		var rpcResp response
		if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
			return nil, fmt.Errorf("%s: decoding response: %w", method, err)
		}
		if rpcResp.Error != nil {
			return nil, fmt.Errorf("%s: %w", method, rpcResp.Error)
		}
		return &rpcResp, nil
	}

	if _, err := post(1, "initialize", initParams()); err != nil {
		return nil, fmt.Errorf("mcp handshake with %s: %w", url, err)
	}
	if _, err := post(0, "notifications/initialized", struct{}{}); err != nil {
		logger.Debug("initialized notification rejected", zap.Error(err))
	}

	resp, err := post(2, "tools/list", struct{}{})
	if err != nil {
		return nil, fmt.Errorf("tools/list from %s: %w", url, err)
	}

	var result toolsListResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("tools/list from %s: %w", url, err)
	}
	return result.Tools, nil
}

// --- stdio transport ---

// fetchStdio launches the server command and speaks newline-delimited
// JSON-RPC over its pipes. The subprocess is killed when the context ends.
func fetchStdio(ctx context.Context, command string, logger *zap.Logger) ([]json.RawMessage, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty server command")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %q: %w", fields[0], err)
	}
	defer func() {
		stdin.Close()
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			logger.Debug("mcp server exited with error", zap.Error(err))
		}
	}()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	send := func(id uint64, method string, params any) error {
		body, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
		if err != nil {
			return err
		}
		_, err = stdin.Write(append(body, '\n'))
		return err
	}

	// receive skips notifications and responses to other requests until the
	// awaited ID arrives.
	receive := func(id uint64) (*response, error) {
		for scanner.Scan() {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var resp response
			if err := json.Unmarshal(line, &resp); err != nil {
				logger.Debug("skipping unparseable line from server", zap.Error(err))
				continue
			}
			if resp.ID != id {
				continue
			}
			if resp.Error != nil {
				return nil, resp.Error
			}
			return &resp, nil
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}

	if err := send(1, "initialize", initParams()); err != nil {
		return nil, fmt.Errorf("mcp handshake: %w", err)
	}
	if _, err := receive(1); err != nil {
		return nil, fmt.Errorf("mcp handshake: %w", err)
	}
	if err := send(0, "notifications/initialized", struct{}{}); err != nil {
		return nil, fmt.Errorf("mcp handshake: %w", err)
	}

	if err := send(2, "tools/list", struct{}{}); err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}
	resp, err := receive(2)
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}

	var result toolsListResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}
	return result.Tools, nil
}
