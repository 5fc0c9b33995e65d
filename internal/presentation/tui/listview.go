package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/loader"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/muesli/termenv"
)

var _ loader.Display = (*ListView)(nil)

// ListView renders the recipe grid screen.
type ListView struct {
	out     *termenv.Output
	w       io.Writer
	catalog *messages.Catalog
	columns int
}

// NewListView creates a list view laying cards out in columns.
func NewListView(w io.Writer, catalog *messages.Catalog, columns int) *ListView {
	return &ListView{
		out:     termenv.NewOutput(w),
		w:       w,
		catalog: catalog,
		columns: columns,
	}
}

// ShowLoading implements loader.Display.
func (v *ListView) ShowLoading(visible bool) {
	if visible {
		fmt.Fprintln(v.w, v.out.String(v.catalog.Text(messages.KeyLoading)).Faint())
	}
}

// ShowRecipes implements loader.Display.
func (v *ListView) ShowRecipes(recipes []domain.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(v.w, v.catalog.Text(messages.KeyNoRecipes))
		return
	}
	fmt.Fprintln(v.w, RecipeGrid(recipes, v.columns, v.catalog))
}

// ShowError implements loader.Display. The retry action is offered as the "r" key;
// invoking it is left to the caller's input loop.
func (v *ListView) ShowError(kind domain.FailureKind, message string, retry func()) {
	fmt.Fprintln(v.w, v.out.String(message).Foreground(v.out.Color("#ef4444")))
	fmt.Fprintf(v.w, "[r] %s  [q] %s\n", v.catalog.Text(messages.KeyRetry), v.catalog.Text(messages.KeyQuit))
}

// ShowRecipe prints a recipe's ingredients and step list.
func (v *ListView) ShowRecipe(recipe domain.Recipe) {
	fmt.Fprintln(v.w)
	fmt.Fprintln(v.w, v.out.String(recipe.Name).Bold())
	fmt.Fprintln(v.w, v.catalog.Sprintf(messages.KeyServings, recipe.Servings))
	if len(recipe.Ingredients) > 0 {
		fmt.Fprintln(v.w, IngredientTable(recipe.Ingredients, v.catalog))
	}
	if len(recipe.Steps) > 0 {
		fmt.Fprintln(v.w, StepTable(recipe.Steps, v.catalog))
	}
}
