package agent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"opsagent/internal/domain/tool"
	"opsagent/internal/utils/platformerrors"
)

// Service runs the full agent pipeline: interpret, dispatch, record.
type Service struct {
	interpreter Interpreter
	dispatcher  *Dispatcher
	history     *History
	registry    *tool.Registry
	logger      zerolog.Logger
}

// NewService creates the agent service.
func NewService(interpreter Interpreter, dispatcher *Dispatcher, history *History, registry *tool.Registry, logger zerolog.Logger) *Service {
	return &Service{
		interpreter: interpreter,
		dispatcher:  dispatcher,
		history:     history,
		registry:    registry,
		logger:      logger.With().Str("component", "agent-service").Logger(),
	}
}

// Strategy names the active interpreter.
func (s *Service) Strategy() string { return s.interpreter.Strategy() }

// ProcessRequest interprets one natural-language command, dispatches the
// selected tool, and records the exchange. Interpretation and execution
// failures come back inside the exchange; the error return is reserved for
// requests that never reach the pipeline (blank input).
func (s *Service) ProcessRequest(ctx context.Context, command string) (*Exchange, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "request must not be empty")
	}

	exchange := Exchange{
		ID:        uuid.NewString(),
		Command:   command,
		CreatedAt: time.Now(),
	}

	call, err := s.interpreter.Interpret(ctx, command)
	if err != nil {
		exchange.Error = err.Error()
		exchange.ErrorType = string(platformerrors.TypeOf(err))
		s.history.Append(exchange)
		s.logger.Info().Str("strategy", s.interpreter.Strategy()).Str("error_type", exchange.ErrorType).Msg("interpretation failed")
		return &exchange, nil
	}

	exchange.ToolName = call.Name
	exchange.Parameters = call.Parameters

	result := s.dispatcher.Execute(ctx, call)
	exchange.Success = result.Success
	exchange.Result = result.Data
	exchange.Error = result.Error
	exchange.ErrorType = result.ErrorType
	exchange.ExecutionTimeMS = result.ExecutionTime.Milliseconds()

	s.history.Append(exchange)
	s.logger.Info().
		Str("strategy", s.interpreter.Strategy()).
		Str("tool", exchange.ToolName).
		Bool("success", exchange.Success).
		Int64("execution_time_ms", exchange.ExecutionTimeMS).
		Msg("request processed")
	return &exchange, nil
}

// History returns a copy of the recorded exchanges.
func (s *Service) History() []Exchange {
	return s.history.List()
}

// ClearHistory drops the recorded exchanges.
func (s *Service) ClearHistory() {
	s.history.Clear()
}

// Tools returns the catalog, sorted by name.
func (s *Service) Tools() []tool.Definition {
	return s.registry.List()
}
