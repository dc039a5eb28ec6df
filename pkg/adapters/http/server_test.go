package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/baristabot/internal/testutils"
	"github.com/aretw0/baristabot/pkg/adapters/memory"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/menu"
	"github.com/aretw0/baristabot/pkg/runner"
	"github.com/aretw0/baristabot/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, reasoner *testutils.ScriptedReasoner, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(memory.NewStore())
	opts = append([]Option{WithMenu(menu.NewProvider(menu.Default()))}, opts...)
	return NewHandler(testutils.NewEngine(t, reasoner), sessions, opts...), sessions
}

func postMessage(h http.Handler, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sessionID+"/messages", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostMessage(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.AddLine("Latte", "Oat Milk")),
		testutils.Say("One oat latte."),
	)
	h, sessions := newTestHandler(t, reasoner)

	w := postMessage(h, "web-1", `{"text": "A latte with oat milk"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var ex runner.Exchange
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ex))
	assert.Equal(t, "One oat latte.", ex.Reply)
	assert.False(t, ex.Terminated)
	require.NotNil(t, ex.Diff)
	require.NotNil(t, ex.Diff.Order)
	assert.Equal(t, "Latte", (*ex.Diff.Order)[0].Drink)

	state, err := sessions.Load(context.Background(), "web-1")
	require.NoError(t, err)
	assert.Len(t, state.History, 4)
}

func TestPostMessage_ErrorMapping(t *testing.T) {
	finished := domain.NewConversationState("done")
	finished.Append(domain.UserTurn("That's all"), domain.AssistantTurn("Bye"))
	finished.Finished = true
	finished.Status = domain.StatusTerminated

	tests := []struct {
		name     string
		session  string
		body     string
		steps    []testutils.Step
		maxInput int
		want     int
	}{
		{name: "Invalid Body", session: "s", body: `{"text":`, want: http.StatusBadRequest},
		{name: "Empty Text", session: "s", body: `{"text": "   "}`, want: http.StatusBadRequest},
		{name: "Too Large", session: "s", body: `{"text": "a long order"}`, maxInput: 4, want: http.StatusBadRequest},
		{name: "Finished", session: "done", body: `{"text": "One more"}`, want: http.StatusConflict},
		{name: "Reasoner Down", session: "s", body: `{"text": "Hi"}`, steps: []testutils.Step{testutils.Fail(errors.New("dial tcp: refused"))}, want: http.StatusBadGateway},
		{name: "Unknown Action", session: "s", body: `{"text": "Hi"}`, steps: []testutils.Step{testutils.Call(testutils.Request("make_coffee", nil))}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, sessions := newTestHandler(t, testutils.NewScriptedReasoner(tt.steps...), WithMaxInputSize(tt.maxInput))
			require.NoError(t, sessions.Save(context.Background(), "done", finished))

			w := postMessage(h, tt.session, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSessionEndpoints(t *testing.T) {
	h, sessions := newTestHandler(t, testutils.NewScriptedReasoner())
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, "b", domain.NewConversationState("b")))
	require.NoError(t, sessions.Save(ctx, "a", domain.NewConversationState("a")))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessions": ["a", "b"]}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/a", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var state domain.ConversationState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "a", state.SessionID)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/a", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/a", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenuAndHealth(t *testing.T) {
	h, _ := newTestHandler(t, testutils.NewScriptedReasoner(),
		WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("metrics here"))
		})),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, testutils.MenuText()+"\n", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "metrics here", w.Body.String())
}

func TestSubscribeEvents_Session(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(testutils.Say("Hello! What can I get you?"))
	h, _ := newTestHandler(t, reasoner)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/sse-1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	msg, err := http.Post(srv.URL+"/sessions/sse-1/messages", "application/json", strings.NewReader(`{"text": "Hi"}`))
	require.NoError(t, err)
	msg.Body.Close()
	require.Equal(t, http.StatusOK, msg.StatusCode)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(data), &diff))
	assert.Equal(t, "sse-1", diff.SessionID)
	require.NotNil(t, diff.History)
	assert.Len(t, diff.History.Appended, 2)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	assert.Equal(t, 1, sm.Subscribers("s"))

	sm.Broadcast("s", "hello")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "hello", <-ch)

	cancel()
	assert.Equal(t, 0, sm.Subscribers("s"))
	_, open := <-ch
	assert.False(t, open)
}
