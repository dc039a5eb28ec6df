// Package openai binds the Reasoner port to an OpenAI-compatible chat
// completions endpoint, exposing the action catalog as function tools.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/domain"
	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ErrNoChoices is returned when the endpoint answers without any completion.
var ErrNoChoices = errors.New("completion has no choices")

// Reasoner implements ports.Reasoner with tool calling.
type Reasoner struct {
	client sdk.Client
	model  string
	tools  []sdk.ChatCompletionToolParam
	logger *slog.Logger
}

type config struct {
	model   string
	logger  *slog.Logger
	reqOpts []option.RequestOption
}

// Option configures the Reasoner.
type Option func(*config)

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.reqOpts = append(c.reqOpts, option.WithAPIKey(key))
	}
}

// WithBaseURL points the client at another OpenAI-compatible server.
func WithBaseURL(url string) Option {
	return func(c *config) {
		if url != "" {
			c.reqOpts = append(c.reqOpts, option.WithBaseURL(url))
		}
	}
}

// WithModel selects the chat model.
func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxRetries sets how many times transient failures are retried by the client.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		c.reqOpts = append(c.reqOpts, option.WithMaxRetries(n))
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.reqOpts = append(c.reqOpts, option.WithHTTPClient(hc))
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a Reasoner bound to the given catalog.
func New(catalog []domain.Action, opts ...Option) *Reasoner {
	cfg := &config{model: DefaultModel, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	tools := make([]sdk.ChatCompletionToolParam, 0, len(catalog))
	for _, action := range catalog {
		params := action.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		tools = append(tools, sdk.ChatCompletionToolParam{
			Function: sdk.FunctionDefinitionParam{
				Name:        action.Name,
				Description: sdk.String(action.Description),
				Parameters:  sdk.FunctionParameters(params),
			},
		})
	}

	return &Reasoner{
		client: sdk.NewClient(cfg.reqOpts...),
		model:  cfg.model,
		tools:  tools,
		logger: cfg.logger,
	}
}

// TakeTurn sends the history and converts the first choice into a Turn.
func (r *Reasoner) TakeTurn(ctx context.Context, history []domain.Turn) (domain.Turn, error) {
	messages, err := toMessages(history)
	if err != nil {
		return domain.Turn{}, err
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(r.model),
		Messages: messages,
	}
	if len(r.tools) > 0 {
		params.Tools = r.tools
	}

	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return domain.Turn{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Turn{}, ErrNoChoices
	}

	msg := resp.Choices[0].Message
	r.logger.Debug("completion received",
		"model", resp.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"tool_calls", len(msg.ToolCalls),
		"total_tokens", resp.Usage.TotalTokens,
	)

	if len(msg.ToolCalls) == 0 {
		return domain.AssistantTurn(msg.Content), nil
	}

	requests := make([]domain.ActionRequest, 0, len(msg.ToolCalls))
	for _, call := range msg.ToolCalls {
		args, err := decodeArguments(call.Function.Arguments)
		if err != nil {
			return domain.Turn{}, fmt.Errorf("tool call %s (%s): %w", call.ID, call.Function.Name, err)
		}
		requests = append(requests, domain.ActionRequest{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		})
	}
	return domain.ActionRequestTurn(requests...), nil
}

func toMessages(history []domain.Turn) ([]sdk.ChatCompletionMessageParamUnion, error) {
	messages := make([]sdk.ChatCompletionMessageParamUnion, 0, len(history))
	for _, turn := range history {
		switch turn.Kind() {
		case domain.TurnActionRequests:
			calls := make([]sdk.ChatCompletionMessageToolCallParam, 0, len(turn.Requests))
			for _, req := range turn.Requests {
				args, err := encodeArguments(req.Args)
				if err != nil {
					return nil, fmt.Errorf("request %s: %w", req.ID, err)
				}
				calls = append(calls, sdk.ChatCompletionMessageToolCallParam{
					ID: req.ID,
					Function: sdk.ChatCompletionMessageToolCallFunctionParam{
						Name:      req.Name,
						Arguments: args,
					},
				})
			}
			messages = append(messages, sdk.ChatCompletionMessageParamUnion{
				OfAssistant: &sdk.ChatCompletionAssistantMessageParam{ToolCalls: calls},
			})

		case domain.TurnActionResult:
			messages = append(messages, sdk.ToolMessage(turn.Result.Content, turn.Result.RequestID))

		default:
			switch turn.Role {
			case domain.RoleSystem:
				messages = append(messages, sdk.SystemMessage(turn.Content))
			case domain.RoleUser:
				messages = append(messages, sdk.UserMessage(turn.Content))
			case domain.RoleAssistant:
				messages = append(messages, sdk.AssistantMessage(turn.Content))
			default:
				return nil, fmt.Errorf("unsupported text turn role %q", turn.Role)
			}
		}
	}
	return messages, nil
}

func encodeArguments(args map[string]any) (string, error) {
	if len(args) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode arguments: %w", err)
	}
	return string(data), nil
}

func decodeArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	return args, nil
}
