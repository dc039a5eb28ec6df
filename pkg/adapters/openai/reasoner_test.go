package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/baristabot/pkg/adapters/openai"
	"github.com/aretw0/baristabot/pkg/catalog"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	*httptest.Server
	requests []map[string]any
}

func newFakeServer(t *testing.T, status int, responses ...string) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	next := 0
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		assert.NoError(t, json.Unmarshal(body, &req))
		fs.requests = append(fs.requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if next < len(responses) {
			_, _ = io.WriteString(w, responses[next])
			next++
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newReasoner(fs *fakeServer) *openai.Reasoner {
	return openai.New(catalog.Default(),
		openai.WithAPIKey("sk-test"),
		openai.WithBaseURL(fs.URL+"/"),
		openai.WithModel("test-model"),
		openai.WithMaxRetries(0),
	)
}

const textCompletion = `{
  "id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "test-model",
  "choices": [{"index": 0, "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Welcome! What can I get you?"}}],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

const toolCompletion = `{
  "id": "chatcmpl-2", "object": "chat.completion", "created": 1, "model": "test-model",
  "choices": [{"index": 0, "finish_reason": "tool_calls",
    "message": {"role": "assistant", "content": null, "tool_calls": [
      {"id": "call_a", "type": "function", "function": {"name": "add_to_order", "arguments": "{\"drink\":\"Latte\",\"modifiers\":[\"Oat\"]}"}},
      {"id": "call_b", "type": "function", "function": {"name": "confirm_order", "arguments": ""}}
    ]}}]
}`

func TestReasoner_TextReply(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, textCompletion)

	turn, err := newReasoner(fs).TakeTurn(context.Background(), []domain.Turn{
		domain.SystemTurn("You are a barista."),
		domain.UserTurn("Hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssistantTurn("Welcome! What can I get you?"), turn)

	require.Len(t, fs.requests, 1)
	req := fs.requests[0]
	assert.Equal(t, "test-model", req["model"])

	tools, ok := req["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, tools, len(catalog.Default()))
	first := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, domain.ActionGetMenu, first["name"])

	msgs := req["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestReasoner_ToolCalls(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, toolCompletion)

	turn, err := newReasoner(fs).TakeTurn(context.Background(), []domain.Turn{domain.UserTurn("A latte with oat")})
	require.NoError(t, err)
	require.Equal(t, domain.TurnActionRequests, turn.Kind())
	require.Len(t, turn.Requests, 2)

	assert.Equal(t, "call_a", turn.Requests[0].ID)
	assert.Equal(t, domain.ActionAddToOrder, turn.Requests[0].Name)
	assert.Equal(t, "Latte", turn.Requests[0].Args["drink"])
	assert.Equal(t, []any{"Oat"}, turn.Requests[0].Args["modifiers"])

	assert.Equal(t, domain.ActionConfirmOrder, turn.Requests[1].Name)
	assert.Empty(t, turn.Requests[1].Args)
}

func TestReasoner_HistoryEncoding(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, textCompletion)

	history := []domain.Turn{
		domain.UserTurn("A latte"),
		domain.ActionRequestTurn(domain.ActionRequest{ID: "call_1", Name: domain.ActionAddToOrder, Args: map[string]any{"drink": "Latte"}}),
		domain.ResultTurn(domain.ActionResult{RequestID: "call_1", Name: domain.ActionAddToOrder, Content: "Latte (no modifiers)"}),
		domain.AssistantTurn("Anything else?"),
	}
	_, err := newReasoner(fs).TakeTurn(context.Background(), history)
	require.NoError(t, err)

	msgs := fs.requests[0]["messages"].([]any)
	require.Len(t, msgs, 4)

	assistant := msgs[1].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	call := assistant["tool_calls"].([]any)[0].(map[string]any)
	assert.Equal(t, "call_1", call["id"])
	fn := call["function"].(map[string]any)
	assert.Equal(t, domain.ActionAddToOrder, fn["name"])
	assert.JSONEq(t, `{"drink":"Latte"}`, fn["arguments"].(string))

	tool := msgs[2].(map[string]any)
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, "call_1", tool["tool_call_id"])

	assert.Equal(t, "assistant", msgs[3].(map[string]any)["role"])
}

func TestReasoner_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
		_, err := newReasoner(fs).TakeTurn(context.Background(), []domain.Turn{domain.UserTurn("Hi")})
		assert.ErrorContains(t, err, "chat completion")
	})

	t.Run("no choices", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
		_, err := newReasoner(fs).TakeTurn(context.Background(), []domain.Turn{domain.UserTurn("Hi")})
		assert.ErrorIs(t, err, openai.ErrNoChoices)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		fs := newFakeServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"tool_calls","message":{"role":"assistant","content":null,
			"tool_calls":[{"id":"c","type":"function","function":{"name":"add_to_order","arguments":"{not json"}}]}}]}`)
		_, err := newReasoner(fs).TakeTurn(context.Background(), []domain.Turn{domain.UserTurn("Hi")})
		assert.ErrorContains(t, err, "decode arguments")
	})
}
