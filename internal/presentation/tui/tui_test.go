package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipes() []domain.Recipe {
	return []domain.Recipe{
		{ID: 1, Name: "Nutella Pie", Servings: 8},
		{ID: 2, Name: "Brownies", Servings: 8},
		{ID: 3, Name: "Yellow Cake", Servings: 8},
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 1, tui.Columns(40, 0))
	assert.Equal(t, 2, tui.Columns(80, 0))
	assert.Equal(t, 3, tui.Columns(120, 0))
	assert.Equal(t, 4, tui.Columns(200, 0))
	assert.Equal(t, 5, tui.Columns(40, 5))
}

func TestRecipeGrid(t *testing.T) {
	en := messages.New("en")
	grid := tui.RecipeGrid(recipes(), 2, en)

	assert.Contains(t, grid, "[1] Nutella Pie")
	assert.Contains(t, grid, "[3] Yellow Cake")
	assert.Contains(t, grid, "Servings: 8")

	lines := strings.Split(grid, "\n")
	var first string
	for _, l := range lines {
		if strings.Contains(l, "Nutella Pie") {
			first = l
		}
	}
	assert.Contains(t, first, "Brownies", "two cards share a row")
	assert.Empty(t, tui.RecipeGrid(nil, 3, en))
}

func TestIngredientAndStepTables(t *testing.T) {
	en := messages.New("en")
	ing := tui.IngredientTable([]domain.Ingredient{
		{Quantity: 2, Measure: "CUP", Name: "Graham Cracker crumbs"},
		{Quantity: 0.5, Measure: "TSP", Name: "salt"},
	}, en)
	assert.Contains(t, ing, "Graham Cracker crumbs")
	assert.Contains(t, ing, "0.5")
	assert.Contains(t, ing, "Ingredients")

	steps := tui.StepTable([]domain.Step{
		{ShortDescription: "Intro", VideoURL: "https://v"},
		{ShortDescription: "Crust", ThumbnailURL: "https://t"},
		{ShortDescription: "Bake"},
	}, en)
	assert.Contains(t, steps, "Intro")
	assert.Contains(t, steps, "Video")
	assert.Contains(t, steps, "Thumbnail")
}

func TestStepView_DrivenByNavigator(t *testing.T) {
	var buf bytes.Buffer
	view := tui.NewStepView(&buf, tui.PlainRenderer, messages.New("en"), "Nutella Pie")

	nav, err := navigator.New([]domain.Step{
		{ShortDescription: "Intro", VideoURL: "https://example.com/intro.mp4"},
		{ShortDescription: "Crust", Description: "Press the crumbs.", ThumbnailURL: "https://example.com/crust.png"},
	}, 0, navigator.WithControls(view))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Nutella Pie · Step 1 of 2")
	assert.Contains(t, out, "Video: https://example.com/intro.mp4")
	assert.False(t, view.PreviousEnabled())
	assert.True(t, view.NextEnabled())
	assert.Contains(t, view.ControlsLine(), "[ ] Previous")
	assert.Contains(t, view.ControlsLine(), "[n] Next")

	buf.Reset()
	require.NoError(t, nav.Next())
	out = buf.String()
	assert.Contains(t, out, "Step 2 of 2")
	assert.Contains(t, out, "Press the crumbs.")
	assert.Contains(t, out, "Thumbnail: https://example.com/crust.png")
	assert.NotContains(t, out, "Video:")
	assert.True(t, view.PreviousEnabled())
	assert.False(t, view.NextEnabled())
	assert.Contains(t, view.ControlsLine(), "[p] Previous")
	assert.Contains(t, view.ControlsLine(), "[ ] Next")
}

func TestStepView_MarkdownRenderer(t *testing.T) {
	render, err := tui.NewRenderer(tui.StylePlain, 60)
	require.NoError(t, err)

	var buf bytes.Buffer
	view := tui.NewStepView(&buf, render, messages.New("pt-BR"), "")
	view.RenderStep(0, 1, domain.Step{ShortDescription: "Preparo", Description: "1. Preaqueça o **forno**."})

	out := buf.String()
	assert.Contains(t, out, "Passo 1 de 1")
	assert.Contains(t, out, "forno")
}

func TestListView(t *testing.T) {
	var buf bytes.Buffer
	view := tui.NewListView(&buf, messages.New("en"), 3)

	view.ShowLoading(true)
	view.ShowLoading(false)
	view.ShowRecipes(nil)
	assert.Equal(t, "Loading recipes...\nNo recipes available.\n", buf.String())

	buf.Reset()
	view.ShowError(domain.FailureNoConnectivity, "No internet connection.", func() {})
	assert.Contains(t, buf.String(), "No internet connection.")
	assert.Contains(t, buf.String(), "[r] Retry")

	buf.Reset()
	view.ShowRecipe(domain.Recipe{
		Name:        "Brownies",
		Servings:    8,
		Ingredients: []domain.Ingredient{{Quantity: 350, Measure: "G", Name: "Bittersweet chocolate"}},
		Steps:       []domain.Step{{ShortDescription: "Melt"}},
	})
	assert.Contains(t, buf.String(), "Bittersweet chocolate")
	assert.Contains(t, buf.String(), "Melt")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|____/")
	assert.NotContains(t, buf.String(), "\x1b[", "no colour codes for a non-terminal writer")
}
