package bakingapp_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/aretw0/bakingapp"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/navigator"
)

// printControls is a minimal display for a navigator.
type printControls struct{}

func (printControls) RenderStep(index, total int, step domain.Step) {
	fmt.Printf("step %d/%d: %s\n", index+1, total, step.Title())
}
func (printControls) SetPreviousEnabled(enabled bool) { fmt.Println("previous enabled:", enabled) }
func (printControls) SetNextEnabled(enabled bool)     { fmt.Println("next enabled:", enabled) }

// ExampleNavigate walks a three step recipe forward and back.
func ExampleNavigate() {
	recipe := domain.Recipe{
		ID:   1,
		Name: "Nutella Pie",
		Steps: []domain.Step{
			{ShortDescription: "Recipe Introduction"},
			{ShortDescription: "Starting prep"},
			{ShortDescription: "Prep the cookie crust"},
		},
	}

	nav, err := bakingapp.Navigate(recipe, 0, navigator.WithControls(printControls{}))
	if err != nil {
		log.Fatal(err)
	}
	_ = nav.Next()
	_ = nav.Next()
	if err := nav.Next(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// step 1/3: Recipe Introduction
	// previous enabled: false
	// step 2/3: Starting prep
	// previous enabled: true
	// step 3/3: Prep the cookie crust
	// next enabled: false
	// already at the last step
}

// ExampleFetchRecipes loads the collection from a feed.
func ExampleFetchRecipes() {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":1,"name":"Nutella Pie","servings":8,"ingredients":[],"steps":[{"id":0,"shortDescription":"Recipe Introduction","description":"Recipe Introduction","videoURL":"https://example.com/intro.mp4","thumbnailURL":""}]}]`)
	}))
	defer feed.Close()

	recipes, err := bakingapp.FetchRecipes(context.Background(), feed.URL)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range recipes {
		fmt.Println(r.Name, len(r.Steps), r.Steps[0].HasVideo(), r.Steps[0].HasThumbnail())
	}

	// Output:
	// Nutella Pie 1 true false
}
