package agenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/domain/agent"
	"opsagent/internal/infrastructure/metrics"
	"opsagent/internal/interfaces/httpserver/middlewares"
	"opsagent/internal/interfaces/httpserver/requests"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/platformerrors"
)

// AgentHandler exposes the natural-language pipeline over HTTP.
type AgentHandler struct {
	agentService *agent.Service
	logger       zerolog.Logger
}

// NewAgentHandler creates the agent handler.
func NewAgentHandler(agentService *agent.Service, logger zerolog.Logger) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger.With().Str("component", "agent-handler").Logger(),
	}
}

// ProcessResponse mirrors one processed exchange.
type ProcessResponse struct {
	Success         bool            `json:"success"`
	ToolUsed        string          `json:"tool_used,omitempty"`
	Parameters      json.RawMessage `json:"parameters,omitempty"`
	Result          any             `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
	ErrorType       string          `json:"error_type,omitempty"`
	ExecutionTimeMS int64           `json:"execution_time_ms"`
	RequestID       string          `json:"request_id"`
}

// HistoryResponse lists recorded exchanges, oldest first.
type HistoryResponse struct {
	Exchanges []agent.Exchange `json:"exchanges"`
	Count     int              `json:"count"`
}

// Process godoc
// @Summary Process a natural-language command
// @Description Interprets the command, dispatches the matched tool and returns the outcome. Interpretation and tool failures are reported inside the envelope, not as transport errors.
// @Tags Agent API
// @Accept json
// @Produce json
// @Param request body requests.ProcessRequest true "Command to process"
// @Success 200 {object} ProcessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 429 {object} responses.ErrorResponse
// @Router /v1/agent/process [post]
func (h *AgentHandler) Process(c *gin.Context) {
	var req requests.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "request body must carry a non-empty request field")
		return
	}

	exchange, err := h.agentService.ProcessRequest(c.Request.Context(), req.Request)
	if err != nil {
		responses.HandleError(c, err, "failed to process request")
		return
	}

	recordOutcome(h.agentService.Strategy(), exchange)
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		h.logger.Info().
			Str("principal", principal).
			Str("tool", exchange.ToolName).
			Bool("success", exchange.Success).
			Msg("agent command processed")
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Success:         exchange.Success,
		ToolUsed:        exchange.ToolName,
		Parameters:      exchange.Parameters,
		Result:          exchange.Result,
		Error:           exchange.Error,
		ErrorType:       exchange.ErrorType,
		ExecutionTimeMS: exchange.ExecutionTimeMS,
		RequestID:       exchange.ID,
	})
}

// History godoc
// @Summary List processed exchanges
// @Description Returns the recorded exchanges, oldest first, up to the configured history limit.
// @Tags Agent API
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/agent/history [get]
func (h *AgentHandler) History(c *gin.Context) {
	exchanges := h.agentService.History()
	c.JSON(http.StatusOK, HistoryResponse{
		Exchanges: exchanges,
		Count:     len(exchanges),
	})
}

// ClearHistory godoc
// @Summary Clear the exchange history
// @Tags Agent API
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/agent/history [delete]
func (h *AgentHandler) ClearHistory(c *gin.Context) {
	h.agentService.ClearHistory()
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		h.logger.Info().Str("principal", principal).Msg("agent history cleared")
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// Tools godoc
// @Summary List the tool catalog
// @Description Returns every registered tool with its parameter schema, plus the active interpreter strategy.
// @Tags Agent API
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/agent/tools [get]
func (h *AgentHandler) Tools(c *gin.Context) {
	defs := h.agentService.Tools()
	c.JSON(http.StatusOK, gin.H{
		"tools":    defs,
		"count":    len(defs),
		"strategy": h.agentService.Strategy(),
	})
}

// recordOutcome feeds the interpretation and execution counters from one
// exchange.
func recordOutcome(strategy string, exchange *agent.Exchange) {
	switch {
	case exchange.ToolName != "":
		metrics.RecordInterpretation(strategy, "matched")
		status := "success"
		if !exchange.Success {
			status = "error"
		}
		metrics.RecordToolExecution(exchange.ToolName, status, float64(exchange.ExecutionTimeMS)/1000)
	case exchange.ErrorType == string(platformerrors.ErrorTypeNoToolMatched):
		metrics.RecordInterpretation(strategy, "no_match")
	default:
		metrics.RecordInterpretation(strategy, "error")
	}
}
