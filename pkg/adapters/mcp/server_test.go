package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	bakingmcp "github.com/aretw0/bakingapp/pkg/adapters/mcp"
	"github.com/aretw0/bakingapp/pkg/adapters/memory"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/session"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	recipes []domain.Recipe
	err     error
}

func (s *stubSource) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes, s.err
}

func fixtures() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:       1,
			Name:     "Nutella Pie",
			Servings: 8,
			Steps: []domain.Step{
				{ID: 0, ShortDescription: "Recipe Introduction", VideoURL: "https://example.com/intro.mp4"},
				{ID: 1, ShortDescription: "Starting prep", Description: "1. Preheat the oven to 350°F."},
				{ID: 2, ShortDescription: "Prep the cookie crust."},
			},
		},
		{ID: 2, Name: "Empty", Servings: 1},
	}
}

func newClient(t *testing.T, source *stubSource) (*client.Client, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(memory.NewStore())
	srv := bakingmcp.NewServer(source, sessions, bakingmcp.WithVersion("test"))

	c, err := client.NewInProcessClient(srv.MCPServer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "bakingapp-test", Version: "0.0.1"}
	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, bakingmcp.ServerName, result.ServerInfo.Name)
	assert.Equal(t, "test", result.ServerInfo.Version)
	return c, sessions
}

func call(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func decodeView(t *testing.T, result *mcp.CallToolResult) bakingmcp.SessionView {
	t.Helper()
	require.False(t, result.IsError, text(t, result))
	var view bakingmcp.SessionView
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &view))
	return view
}

func TestMCP_ListTools(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_recipes", "start_session", "navigate", "render_session"}, names)
}

func TestMCP_ListRecipes(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})

	result := call(t, c, "list_recipes", map[string]any{})
	require.False(t, result.IsError, text(t, result))

	var list bakingmcp.RecipeList
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &list))
	require.Len(t, list.Recipes, 2)
	assert.Equal(t, bakingmcp.RecipeSummary{ID: 1, Name: "Nutella Pie", Servings: 8, Steps: 3}, list.Recipes[0])
}

func TestMCP_ListRecipesFailureIsClassified(t *testing.T) {
	c, _ := newClient(t, &stubSource{err: fmt.Errorf("%w: dial tcp: connection refused", domain.ErrNoConnection)})

	result := call(t, c, "list_recipes", map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), string(domain.FailureNoConnectivity))
}

func TestMCP_SessionWalk(t *testing.T) {
	c, sessions := newClient(t, &stubSource{recipes: fixtures()})

	view := decodeView(t, call(t, c, "start_session", map[string]any{"recipe_id": 1, "session_id": "kitchen"}))
	assert.Equal(t, "kitchen", view.SessionID)
	assert.Equal(t, "Nutella Pie", view.RecipeName)
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Equal(t, 3, view.Total)
	assert.False(t, view.CanPrevious)
	assert.True(t, view.CanNext)

	view = decodeView(t, call(t, c, "navigate", map[string]any{"session_id": "kitchen", "direction": "next"}))
	assert.Equal(t, 1, view.CurrentIndex)
	assert.True(t, view.CanPrevious)
	assert.True(t, view.CanNext)

	view = decodeView(t, call(t, c, "navigate", map[string]any{"session_id": "kitchen", "direction": "next"}))
	assert.Equal(t, 2, view.CurrentIndex)
	assert.False(t, view.CanNext)

	result := call(t, c, "navigate", map[string]any{"session_id": "kitchen", "direction": "next"})
	assert.True(t, result.IsError, "moving past the last step must fail")
	assert.Contains(t, text(t, result), domain.ErrAtLastStep.Error())

	view = decodeView(t, call(t, c, "navigate", map[string]any{"session_id": "kitchen", "direction": "previous"}))
	assert.Equal(t, 1, view.CurrentIndex)

	view = decodeView(t, call(t, c, "render_session", map[string]any{"session_id": "kitchen"}))
	assert.Equal(t, "Starting prep", view.Step.ShortDescription)

	state, err := sessions.Load(context.Background(), "kitchen")
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentIndex, "moves are persisted")
}

func TestMCP_StartSessionValidation(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})

	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing recipe", map[string]any{}, "recipe_id is required"},
		{"unknown recipe", map[string]any{"recipe_id": 99}, domain.ErrRecipeNotFound.Error()},
		{"no steps", map[string]any{"recipe_id": 2}, domain.ErrNoSteps.Error()},
		{"index out of range", map[string]any{"recipe_id": 1, "step_index": 3}, domain.ErrInvalidStepIndex.Error()},
		{"sentinel index", map[string]any{"recipe_id": 1, "step_index": -1}, domain.ErrInvalidStepIndex.Error()},
		{"unsafe id", map[string]any{"recipe_id": 1, "session_id": "../x"}, "invalid session id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := call(t, c, "start_session", tc.args)
			assert.True(t, result.IsError)
			assert.Contains(t, text(t, result), tc.want)
		})
	}
}

func TestMCP_GeneratedSessionID(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})

	view := decodeView(t, call(t, c, "start_session", map[string]any{"recipe_id": 1, "step_index": 2}))
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, 2, view.CurrentIndex)
	assert.True(t, view.CanPrevious)
	assert.False(t, view.CanNext)
}

func TestMCP_UnknownSessionAndDirection(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})

	result := call(t, c, "render_session", map[string]any{"session_id": "ghost"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), domain.ErrSessionNotFound.Error())

	decodeView(t, call(t, c, "start_session", map[string]any{"recipe_id": 1, "session_id": "s"}))
	result = call(t, c, "navigate", map[string]any{"session_id": "s", "direction": "sideways"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), session.ErrUnknownDirection.Error())
}

func TestMCP_SessionsResource(t *testing.T) {
	c, _ := newClient(t, &stubSource{recipes: fixtures()})
	decodeView(t, call(t, c, "start_session", map[string]any{"recipe_id": 1, "session_id": "a"}))
	decodeView(t, call(t, c, "start_session", map[string]any{"recipe_id": 1, "session_id": "b"}))

	req := mcp.ReadResourceRequest{}
	req.Params.URI = bakingmcp.SessionsURI
	result, err := c.ReadResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	contents, ok := result.Contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text resource, got %T", result.Contents[0])
	assert.JSONEq(t, `["a","b"]`, contents.Text)
}
