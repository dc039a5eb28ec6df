// Package mcp exposes BaristaBot as a Model Context Protocol server, so another
// agent can place cafe orders on behalf of a customer.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/baristabot"
	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/runner"
	"github.com/aretw0/baristabot/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MenuURI is the resource holding the menu text.
const MenuURI = "baristabot://menu"

// SendMessageArgs are the arguments of the send_message tool.
type SendMessageArgs struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// Server wraps the dialogue engine and exposes it as an MCP Server.
type Server struct {
	engine       ports.ConversationEngine
	sessions     *session.Manager
	menu         ports.MenuProvider
	maxInputSize int
	logger       *slog.Logger
	mcpServer    *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds the size of a customer message in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.ConversationEngine, sessions *session.Manager, menu ports.MenuProvider, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		menu:      menu,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("baristabot-mcp", baristabot.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It returns when ctx is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a customer message to the barista. The session is created on first use."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier chosen by the caller")),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the customer says")),
		mcp.WithOutputSchema[runner.Exchange](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	s.mcpServer.AddTool(mcp.NewTool("get_order",
		mcp.WithDescription("Show the order collected so far in a session and whether it was placed."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier")),
	), s.handleGetOrder)

	s.mcpServer.AddTool(mcp.NewTool("get_menu",
		mcp.WithDescription("Show the cafe menu."),
	), s.handleGetMenu)
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args SendMessageArgs) (runner.Exchange, error) {
	if args.SessionID == "" {
		return runner.Exchange{}, errors.New("session_id is required")
	}

	ex, err := runner.SendMessage(ctx, s.engine, s.sessions, args.SessionID, args.Text, s.maxInputSize)
	if err != nil {
		s.logger.Warn("MCP send_message failed", "session_id", args.SessionID, "error", err)
		return runner.Exchange{}, err
	}
	return *ex, nil
}

func (s *Server) handleGetOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("session %s not found", sessionID)), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(describeOrder(state)), nil
}

func (s *Server) handleGetMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.menu.Menu(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("menu lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func describeOrder(state *domain.ConversationState) string {
	text := state.Order.Summary()
	if state.Finished {
		text += fmt.Sprintf("\n\nPlaced. Ready in about %s minutes.", state.ConfirmationToken)
	}
	return text
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MenuURI, "Cafe Menu",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.menu.Menu(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read menu: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MenuURI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	})
}
