// Package mcpclient is a minimal MCP client used to pull the tool list from
// a live server: JSON-RPC 2.0 framing, initialize handshake, tools/list,
// teardown. It supports stdio subprocess and streamable HTTP transports.
package mcpclient

import "encoding/json"

const protocolVersion = "2025-06-18"

// request is a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// response is a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return e.Message }

// initializeParams is the MCP handshake payload.
type initializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	Capabilities    struct{}   `json:"capabilities"`
	ClientInfo      clientInfo `json:"clientInfo"`
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// toolsListResult is the result payload of tools/list. Tools stay raw so the
// original payload can travel with each definition.
type toolsListResult struct {
	Tools []json.RawMessage `json:"tools"`
}
