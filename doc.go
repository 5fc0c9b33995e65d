/*
Package bakingapp is a recipe browser: it fetches a collection of recipes from a
remote JSON feed and walks a recipe's instructions one step at a time.

# Concept

Two components carry the behaviour, both usable on their own:

  - The step navigator (package navigator) owns an ordered step sequence and the
    current position. Every move re-renders the step and keeps the previous/next
    controls enabled exactly when a move in that direction is possible. Its state
    can be saved and restored verbatim.
  - The recipe list loader (package loader) issues one request for the collection,
    hands the result to a display and, on failure, shows one of three fixed
    messages (no connectivity, network problem, anything else) with a manual
    retry action.

Around them sit the recipe API client, state stores (memory, file, redis), a
session manager, an HTTP API and the terminal presentation used by the
bakingapp command.

# Usage

	recipes, err := bakingapp.FetchRecipes(ctx, "")
	if err != nil {
		log.Fatal(err)
	}
	nav, err := bakingapp.Navigate(recipes[0], 0, navigator.WithControls(myView))
	if err != nil {
		log.Fatal(err)
	}
	_ = nav.Next()
*/
package bakingapp
