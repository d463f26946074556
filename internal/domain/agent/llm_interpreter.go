package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"opsagent/internal/domain/tool"
	"opsagent/internal/utils/platformerrors"
)

// ChatCompleter is the transport the LLM interpreter speaks through.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, apiKey string, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// LLMInterpreter delegates interpretation to an OpenAI-compatible model.
// The model sees the tool catalog and must answer with a single JSON object
// selecting one tool, or "none" when nothing applies.
type LLMInterpreter struct {
	client   ChatCompleter
	registry *tool.Registry
	apiKey   string
	model    string
	logger   zerolog.Logger
}

// NewLLMInterpreter creates the LLM-backed interpreter. The API key arrives
// already decrypted.
func NewLLMInterpreter(client ChatCompleter, registry *tool.Registry, apiKey, model string, logger zerolog.Logger) *LLMInterpreter {
	return &LLMInterpreter{
		client:   client,
		registry: registry,
		apiKey:   apiKey,
		model:    model,
		logger:   logger.With().Str("component", "llm-interpreter").Logger(),
	}
}

// Strategy implements Interpreter.
func (l *LLMInterpreter) Strategy() string { return "llm" }

// Interpret implements Interpreter.
func (l *LLMInterpreter) Interpret(ctx context.Context, command string) (*ToolCall, error) {
	resp, err := l.client.CreateChatCompletion(ctx, l.apiKey, openai.ChatCompletionRequest{
		Model:       l.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: l.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: command},
		},
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "interpretation request failed")
	}
	if len(resp.Choices) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "model returned no choices")
	}

	content := resp.Choices[0].Message.Content
	call, err := parseModelReply(content)
	if err != nil {
		l.logger.Warn().Err(err).Str("content", content).Msg("unparseable model reply")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoToolMatched, fmt.Sprintf("model reply did not select a tool for %q", command))
	}

	if call.Name == "" || strings.EqualFold(call.Name, "none") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoToolMatched, fmt.Sprintf("no tool matched request %q", command))
	}
	if _, ok := l.registry.Get(call.Name); !ok {
		l.logger.Warn().Str("tool", call.Name).Msg("model selected a tool outside the catalog")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoToolMatched, fmt.Sprintf("model selected unknown tool %q", call.Name))
	}

	return call, nil
}

func (l *LLMInterpreter) systemPrompt() string {
	catalog, _ := json.MarshalIndent(l.registry.List(), "", "  ")

	var sb strings.Builder
	sb.WriteString("You translate one operations request into one tool call.\n")
	sb.WriteString("Available tools:\n")
	sb.Write(catalog)
	sb.WriteString("\n\nAnswer with exactly one JSON object and nothing else:\n")
	sb.WriteString(`{"tool_name": "<name>", "parameters": {...}, "reasoning": "<short>"}`)
	sb.WriteString("\nIf no tool applies, answer {\"tool_name\": \"none\"}.\n")
	sb.WriteString("Never invent tool names or parameters not in the schemas.")
	return sb.String()
}

// parseModelReply tolerates markdown fences and prose around the JSON object.
func parseModelReply(content string) (*ToolCall, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var call ToolCall
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &call); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	return &call, nil
}
