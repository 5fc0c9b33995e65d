package ports

import (
	"context"

	"github.com/aretw0/bakingapp/pkg/domain"
)

// RecipeSource provides the recipe collection.
type RecipeSource interface {
	// FetchRecipes issues one request for the full collection.
	// Failures should wrap domain.ErrNoConnection or domain.ErrNetwork when applicable.
	FetchRecipes(ctx context.Context) ([]domain.Recipe, error)
}
