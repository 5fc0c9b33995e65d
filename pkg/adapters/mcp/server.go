// Package mcp exposes recipes and navigation sessions as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/bakingapp/internal/logging"
	"github.com/aretw0/bakingapp/pkg/adapters/recipeapi"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/navigator"
	"github.com/aretw0/bakingapp/pkg/ports"
	"github.com/aretw0/bakingapp/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced during the MCP handshake.
const ServerName = "bakingapp-mcp"

// SessionsURI is the resource listing the saved session ids.
const SessionsURI = "bakingapp://sessions"

// RecipeSummary is one entry of the list_recipes result.
type RecipeSummary struct {
	ID       int64  `json:"id" jsonschema_description:"Recipe id, used by start_session"`
	Name     string `json:"name"`
	Servings int    `json:"servings"`
	Steps    int    `json:"steps" jsonschema_description:"Number of steps"`
}

// RecipeList is the result of list_recipes.
type RecipeList struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// SessionView is the result of every session tool.
type SessionView struct {
	SessionID    string      `json:"session_id"`
	RecipeID     int64       `json:"recipe_id"`
	RecipeName   string      `json:"recipe_name,omitempty"`
	CurrentIndex int         `json:"current_index" jsonschema_description:"Zero-based position of the displayed step"`
	Total        int         `json:"total"`
	Step         domain.Step `json:"step"`
	CanPrevious  bool        `json:"can_previous"`
	CanNext      bool        `json:"can_next"`
}

// Server wraps the recipe source and session manager as an MCP server.
type Server struct {
	source    ports.RecipeSource
	sessions  *session.Manager
	logger    *slog.Logger
	version   string
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version announced to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(version)
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(source ports.RecipeSource, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		source:   source,
		sessions: sessions,
		logger:   logging.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer(ServerName, s.version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server, e.g. for an in-process client.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events on addr until ctx is cancelled.
// ready, when not nil, receives the bound address.
func (s *Server) ServeSSE(ctx context.Context, addr string, ready func(addr string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	baseURL := "http://" + ln.Addr().String()
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", ln.Addr().String())
		serverErrors <- httpServer.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_recipes
	listTool := mcp.NewTool("list_recipes",
		mcp.WithDescription("Fetch the recipe collection from the remote API."),
		mcp.WithOutputSchema[RecipeList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListRecipes))

	// TOOL: start_session
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Open a navigation session on a recipe's steps."),
		mcp.WithNumber("recipe_id", mcp.Required(), mcp.Description("Recipe id from list_recipes")),
		mcp.WithNumber("step_index", mcp.Description("Zero-based step to start at (default 0)")),
		mcp.WithString("session_id", mcp.Description("Session id to use; generated when omitted")),
		mcp.WithOutputSchema[SessionView](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	// TOOL: navigate
	navigateTool := mcp.NewTool("navigate",
		mcp.WithDescription("Move a session one step forward or back."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithString("direction", mcp.Required(),
			mcp.Enum(string(session.Next), string(session.Previous)),
			mcp.Description("next or previous"),
		),
		mcp.WithOutputSchema[SessionView](),
	)
	s.mcpServer.AddTool(navigateTool, mcp.NewStructuredToolHandler(s.handleNavigate))

	// TOOL: render_session
	renderTool := mcp.NewTool("render_session",
		mcp.WithDescription("Show the current step of a session and which moves are available."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
		mcp.WithOutputSchema[SessionView](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderSession))
}

func (s *Server) handleListRecipes(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RecipeList, error) {
	recipes, err := s.fetch(ctx)
	if err != nil {
		return RecipeList{}, err
	}
	list := RecipeList{Recipes: make([]RecipeSummary, 0, len(recipes))}
	for _, r := range recipes {
		list.Recipes = append(list.Recipes, RecipeSummary{
			ID:       r.ID,
			Name:     r.Name,
			Servings: r.Servings,
			Steps:    len(r.Steps),
		})
	}
	return list, nil
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionView, error) {
	recipeID, ok := numberArg(args, "recipe_id")
	if !ok {
		return SessionView{}, errors.New("recipe_id is required")
	}
	stepIndex, _ := numberArg(args, "step_index")
	sessionID, _ := args["session_id"].(string)
	if strings.ContainsAny(sessionID, `/\`) {
		return SessionView{}, fmt.Errorf("invalid session id %q", sessionID)
	}

	recipes, err := s.fetch(ctx)
	if err != nil {
		return SessionView{}, err
	}
	recipe, err := recipeapi.FindRecipe(recipes, int64(recipeID))
	if err != nil {
		return SessionView{}, err
	}

	nav, err := navigator.Restore(*domain.NewNavigationState(recipe, int(stepIndex)))
	if err != nil {
		return SessionView{}, err
	}
	if sessionID == "" {
		sessionID = session.NewID()
	}
	if err := s.sessions.Start(ctx, sessionID, nav.State()); err != nil {
		return SessionView{}, err
	}
	s.logger.Info("MCP session started", "session_id", sessionID, "recipe_id", recipe.ID, "index", nav.Index())
	return newSessionView(sessionID, nav), nil
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionView, error) {
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	nav, err := s.sessions.Move(ctx, sessionID, session.Direction(strings.ToLower(strings.TrimSpace(direction))))
	if err != nil {
		return SessionView{}, err
	}
	return newSessionView(sessionID, nav), nil
}

func (s *Server) handleRenderSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionView, error) {
	sessionID, _ := args["session_id"].(string)
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	nav, err := navigator.Restore(*state)
	if err != nil {
		return SessionView{}, fmt.Errorf("stored session %q is invalid: %w", sessionID, err)
	}
	return newSessionView(sessionID, nav), nil
}

func (s *Server) fetch(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.source.FetchRecipes(ctx)
	if err != nil {
		s.logger.Warn("MCP recipe fetch failed", "failure", domain.ClassifyFailure(err), "err", err)
		return nil, fmt.Errorf("%s: %w", domain.ClassifyFailure(err), err)
	}
	return recipes, nil
}

func (s *Server) registerResources() {
	// EXPOSE: bakingapp://sessions
	s.mcpServer.AddResource(mcp.NewResource(SessionsURI, "Saved navigation sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SessionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func newSessionView(sessionID string, nav *navigator.Navigator) SessionView {
	state := nav.State()
	return SessionView{
		SessionID:    sessionID,
		RecipeID:     state.RecipeID,
		RecipeName:   state.RecipeName,
		CurrentIndex: nav.Index(),
		Total:        nav.Len(),
		Step:         nav.Current(),
		CanPrevious:  nav.CanPrevious(),
		CanNext:      nav.CanNext(),
	}
}

// numberArg reads a JSON number argument.
func numberArg(args map[string]interface{}, name string) (float64, bool) {
	switch v := args[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
