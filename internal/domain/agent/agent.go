package agent

import (
	"context"
	"encoding/json"
	"time"
)

// ===============================================
// Agent Types
// ===============================================

// ToolCall is the structured outcome of interpreting a natural-language
// command: which tool to run and with what arguments.
type ToolCall struct {
	Name       string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Reasoning  string          `json:"reasoning,omitempty"`
}

// ToolResult is the outcome of dispatching one ToolCall.
type ToolResult struct {
	ToolName      string
	Success       bool
	Data          any
	Error         string
	ErrorType     string
	ExecutionTime time.Duration
}

// Exchange is one processed request as recorded in history.
type Exchange struct {
	ID              string          `json:"id"`
	Command         string          `json:"command"`
	ToolName        string          `json:"tool_name,omitempty"`
	Parameters      json.RawMessage `json:"parameters,omitempty"`
	Success         bool            `json:"success"`
	Result          any             `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
	ErrorType       string          `json:"error_type,omitempty"`
	ExecutionTimeMS int64           `json:"execution_time_ms"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Interpreter turns a natural-language command into a ToolCall. Exactly one
// implementation is active per deployment; implementations must not fall
// back to each other.
type Interpreter interface {
	Interpret(ctx context.Context, command string) (*ToolCall, error)
	// Strategy names the implementation ("pattern" or "llm").
	Strategy() string
}
