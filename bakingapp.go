package bakingapp

import (
	"context"
	_ "embed"
	"strings"

	"github.com/aretw0/bakingapp/pkg/adapters/recipeapi"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/navigator"
)

//go:embed VERSION
var rawVersion string

// Version is the release version of the module.
var Version = strings.TrimSpace(rawVersion)

// FetchRecipes downloads the recipe collection from url, or from
// recipeapi.DefaultURL when url is empty.
func FetchRecipes(ctx context.Context, url string) ([]domain.Recipe, error) {
	client, err := recipeapi.New(recipeapi.Config{URL: url, UserAgent: "bakingapp/" + Version})
	if err != nil {
		return nil, err
	}
	return client.FetchRecipes(ctx)
}

// Navigate opens a step navigator on recipe, positioned at startIndex.
func Navigate(recipe domain.Recipe, startIndex int, opts ...navigator.Option) (*navigator.Navigator, error) {
	state := domain.NewNavigationState(recipe, startIndex)
	return navigator.Restore(*state, opts...)
}
