package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"opsagent/internal/utils/platformerrors"
)

// patternRule maps one phrasing to a tool. Rules are tried in order; the
// first match wins.
type patternRule struct {
	re    *regexp.Regexp
	tool  string
	build func(match []string) (map[string]any, error)
}

// PatternInterpreter is the deterministic, offline interpreter. It covers
// the catalog's common phrasings with case-insensitive patterns; anything
// it cannot place yields a no-tool-matched error.
type PatternInterpreter struct {
	rules  []patternRule
	logger zerolog.Logger
}

// NewPatternInterpreter builds the rule table.
func NewPatternInterpreter(logger zerolog.Logger) *PatternInterpreter {
	return &PatternInterpreter{
		rules:  buildRules(),
		logger: logger.With().Str("component", "pattern-interpreter").Logger(),
	}
}

// Strategy implements Interpreter.
func (p *PatternInterpreter) Strategy() string { return "pattern" }

// Interpret implements Interpreter.
func (p *PatternInterpreter) Interpret(ctx context.Context, command string) (*ToolCall, error) {
	normalized := strings.TrimSpace(command)
	normalized = strings.TrimRight(normalized, ".!")

	for _, rule := range p.rules {
		match := rule.re.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}

		params := map[string]any{}
		if rule.build != nil {
			built, err := rule.build(match)
			if err != nil {
				return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "could not extract parameters", err)
			}
			params = built
		}

		raw, err := json.Marshal(params)
		if err != nil {
			return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to encode parameters", err)
		}

		p.logger.Debug().Str("tool", rule.tool).Msg("pattern matched")
		return &ToolCall{Name: rule.tool, Parameters: raw}, nil
	}

	return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoToolMatched, fmt.Sprintf("no tool matched request %q", command))
}

func buildRules() []patternRule {
	return []patternRule{
		// listings first so the singular rules below never shadow them
		{
			re:   regexp.MustCompile(`(?i)^(?:list|show|get|display)(?: me)?(?: all)?(?: the)? clients$`),
			tool: "list_all_clients",
		},
		{
			re:   regexp.MustCompile(`(?i)^(?:list|show|get|display)(?: me)?(?: all)?(?: the)? orders$`),
			tool: "list_all_orders",
		},
		{
			re:   regexp.MustCompile(`(?i)^(?:list|show|get|display)(?: me)?(?: all)?(?: the)? (?:employees|staff)$`),
			tool: "list_all_employees",
		},
		{
			re:   regexp.MustCompile(`(?i)^(?:list|show|get|display)(?: me)?(?: all)?(?: the)? departments$`),
			tool: "list_departments",
		},
		{
			re:   regexp.MustCompile(`(?i)(?:create|add|register) (?:a )?(?:new )?client (?:named|called) (.+?) with (?:the )?email ([^\s,]+)`),
			tool: "create_client",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"name": unquote(m[1]), "email": m[2]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:update|adjust|change) (?:the )?balance (?:of|for) client (\S+) by (-?)\$?([\d,]+(?:\.\d+)?)`),
			tool: "update_client_balance",
			build: func(m []string) (map[string]any, error) {
				amount, err := parseAmount(m[2] + m[3])
				if err != nil {
					return nil, err
				}
				return map[string]any{"client_id": m[1], "amount": amount}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)add \$?([\d,]+(?:\.\d+)?) to (?:the )?balance (?:of|for) client (\S+)`),
			tool: "update_client_balance",
			build: func(m []string) (map[string]any, error) {
				amount, err := parseAmount(m[1])
				if err != nil {
					return nil, err
				}
				return map[string]any{"client_id": m[2], "amount": amount}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:change|update|set) (?:the )?email (?:of|for) client (\S+) to ([^\s,]+)`),
			tool: "update_client",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"client_id": m[1], "email": m[2]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:delete|remove) client (\S+)`),
			tool: "delete_client",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"client_id": m[1]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:get|show|find|fetch|display) client (\S+)`),
			tool: "get_client_by_id",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"client_id": m[1]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:create|place|add) (?:an? )?(?:new )?order for client (\S+) with (\d+) (.+?) at \$?([\d,]+(?:\.\d+)?)(?: each)?$`),
			tool: "create_order",
			build: func(m []string) (map[string]any, error) {
				qty, err := strconv.Atoi(m[2])
				if err != nil {
					return nil, err
				}
				price, err := parseAmount(m[4])
				if err != nil {
					return nil, err
				}
				item := map[string]any{"description": strings.TrimSpace(m[3]), "quantity": qty, "unit_price": price}
				return map[string]any{"client_id": m[1], "items": []any{item}}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:update|set|change|mark|move) order (\S+)(?: status)? (?:to|as) (\S+)`),
			tool: "update_order_status",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"order_id": m[1], "new_status": m[2]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:get|show|find|fetch|display) order (\S+)`),
			tool: "get_order_by_id",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"order_id": m[1]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)hire (.+?) \((\S+@\S+\.\S+)\) as (?:an? )?(.+?) in (?:the )?(.+?)(?: department)? (?:at|with (?:a )?salary(?: of)?) \$?([\d,]+(?:\.\d+)?)`),
			tool: "create_employee",
			build: func(m []string) (map[string]any, error) {
				salary, err := parseAmount(m[5])
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"name":       unquote(m[1]),
					"email":      m[2],
					"position":   strings.TrimSpace(m[3]),
					"department": strings.TrimSpace(m[4]),
					"salary":     salary,
				}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:terminate|fire|dismiss|offboard) (?:employee )?(\S+)`),
			tool: "terminate_employee",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"employee_id": m[1]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:get|show|find|display) employee (\S+)`),
			tool: "get_employee_by_id",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"employee_id": m[1]}, nil
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:create|add) (?:a )?(?:new )?department (\S+) (?:named|called) (.+)`),
			tool: "create_department",
			build: func(m []string) (map[string]any, error) {
				return map[string]any{"code": m[1], "name": unquote(m[2])}, nil
			},
		},
	}
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
