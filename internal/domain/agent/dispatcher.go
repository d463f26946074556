package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"opsagent/internal/domain/tool"
	"opsagent/internal/utils/platformerrors"
)

// Executor runs one tool against its owning service. Parameters arrive as
// the raw JSON produced by the interpreter.
type Executor func(ctx context.Context, params json.RawMessage) (any, error)

// Dispatcher routes tool calls through a static table built at startup.
// Adding a tool means adding a schema file and one table entry.
type Dispatcher struct {
	registry  *tool.Registry
	executors map[string]Executor
	logger    zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given catalog.
func NewDispatcher(registry *tool.Registry, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		executors: make(map[string]Executor),
		logger:    logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Register binds a tool name to its executor. Later registrations replace
// earlier ones.
func (d *Dispatcher) Register(name string, fn Executor) {
	d.executors[name] = fn
}

// Registered returns the sorted names present in the dispatch table.
func (d *Dispatcher) Registered() []string {
	out := make([]string, 0, len(d.executors))
	for name := range d.executors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Execute runs one tool call and always returns a structured result; tool
// failures are reported in the result, never as a panic or lost error.
func (d *Dispatcher) Execute(ctx context.Context, call *ToolCall) *ToolResult {
	result := &ToolResult{ToolName: call.Name}

	fn, ok := d.executors[call.Name]
	if !ok {
		result.Error = fmt.Sprintf("unknown tool: %s", call.Name)
		result.ErrorType = string(platformerrors.ErrorTypeNoToolMatched)
		return result
	}

	if err := d.registry.ValidateArgs(call.Name, call.Parameters); err != nil {
		result.Error = err.Error()
		result.ErrorType = string(platformerrors.ErrorTypeValidation)
		return result
	}

	start := time.Now()
	data, err := d.run(ctx, fn, call.Parameters)
	result.ExecutionTime = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		result.ErrorType = string(classify(err))
		d.logger.Warn().Str("tool", call.Name).Str("error_type", result.ErrorType).Dur("took", result.ExecutionTime).Msg("tool execution failed")
		return result
	}

	result.Success = true
	result.Data = data
	d.logger.Debug().Str("tool", call.Name).Dur("took", result.ExecutionTime).Msg("tool executed")
	return result
}

// run isolates executor panics into errors.
func (d *Dispatcher) run(ctx context.Context, fn Executor, params json.RawMessage) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return fn(ctx, params)
}

// classify maps an executor error onto the error taxonomy. Classified
// domain errors keep their type; anything else is a tool execution error.
func classify(err error) platformerrors.ErrorType {
	var pe *platformerrors.PlatformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return platformerrors.ErrorTypeToolExecution
}
