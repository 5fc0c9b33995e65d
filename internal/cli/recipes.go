package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/aretw0/bakingapp/pkg/domain"
)

// RunRecipes fetches the recipe list once and prints it as a grid, or as JSON.
// Fetch failures are reported with their localized message.
func RunRecipes(ctx context.Context, app *App, out io.Writer, width int, jsonMode bool) error {
	recipes, err := app.Source.FetchRecipes(ctx)
	if err != nil {
		kind := domain.ClassifyFailure(err)
		app.Logger.Error("failed to load recipes", "err", err, "failure", kind)
		return fmt.Errorf("%s: %w", app.Catalog.Failure(kind), err)
	}

	if jsonMode {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recipes)
	}

	tui.NewListView(out, app.Catalog, tui.Columns(width, app.Config.UI.Columns)).ShowRecipes(recipes)
	return nil
}
