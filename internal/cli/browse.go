package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/loader"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/navigator"
)

// BrowseOptions configures an interactive browse session.
type BrowseOptions struct {
	// SessionID persists the navigation position under this id and resumes it when present.
	SessionID string
	In        io.Reader
	Out       io.Writer
	// Width is the terminal width used for the grid and word wrapping.
	Width  int
	Banner bool
}

// RunBrowse runs the interactive recipe browser until the user quits.
func RunBrowse(ctx context.Context, app *App, opts BrowseOptions) error {
	b := &browser{
		app:    app,
		opts:   opts,
		prompt: newPrompt(opts.In, opts.Out),
		render: app.Renderer(opts.Width),
	}
	if opts.Banner {
		tui.PrintBanner(opts.Out)
	}
	return HandleExecutionError(b.run(ctx))
}

type browser struct {
	app    *App
	opts   BrowseOptions
	prompt *prompt
	render tui.Renderer
}

func (b *browser) run(ctx context.Context) error {
	if b.opts.SessionID != "" {
		state, err := b.app.Sessions.Load(ctx, b.opts.SessionID)
		switch {
		case err == nil:
			printSystemMessage(b.opts.Out, "Resuming session '%s'.", b.opts.SessionID)
			if err := b.walk(ctx, *state); err != nil {
				return err
			}
		case !errors.Is(err, domain.ErrSessionNotFound):
			return fmt.Errorf("failed to load session %q: %w", b.opts.SessionID, err)
		}
	}

	list := tui.NewListView(b.opts.Out, b.app.Catalog, tui.Columns(b.opts.Width, b.app.Config.UI.Columns))
	recipes, err := b.load(ctx, list)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return nil
	}

	for {
		recipe, err := b.chooseRecipe(ctx, list, recipes)
		if err != nil {
			return err
		}
		if err := b.browseRecipe(ctx, list, recipe); err != nil {
			return err
		}
	}
}

// load runs one Loader on a private event loop, which stands in for the UI thread.
func (b *browser) load(ctx context.Context, list *tui.ListView) ([]domain.Recipe, error) {
	loop := loader.NewEventLoop()
	display := &listDisplay{ListView: list, browser: b, ctx: ctx, loop: loop}

	l := loader.New(b.app.Source, display,
		loader.WithDispatcher(loop.Post),
		loader.WithCatalog(b.app.Catalog),
		loader.WithLifecycleHooks(b.app.Hooks),
		loader.WithLogger(b.app.Logger),
	)
	display.loader = l

	loop.Post(func() {
		if err := l.Load(); err != nil {
			display.finish(nil, err)
		}
	})
	err := loop.Run(ctx)

	// Back on the control goroutine: nothing reaches the display after Close.
	l.Close()
	loop.Stop()

	if err != nil {
		return nil, err
	}
	return display.recipes, display.err
}

// listDisplay adds the interactive retry prompt to the list view.
type listDisplay struct {
	*tui.ListView
	browser *browser
	ctx     context.Context
	loop    *loader.EventLoop
	loader  *loader.Loader

	recipes []domain.Recipe
	err     error
}

func (d *listDisplay) ShowRecipes(recipes []domain.Recipe) {
	d.ListView.ShowRecipes(recipes)
	d.finish(recipes, nil)
}

func (d *listDisplay) ShowError(kind domain.FailureKind, message string, retry func()) {
	d.ListView.ShowError(kind, message, retry)
	for {
		answer, err := d.browser.prompt.Ask(d.ctx, "")
		if err != nil {
			d.finish(nil, err)
			return
		}
		switch strings.ToLower(answer) {
		case "r", "retry":
			retry()
			return
		case "q", "quit":
			d.finish(nil, errQuit)
			return
		}
	}
}

func (d *listDisplay) finish(recipes []domain.Recipe, err error) {
	d.recipes, d.err = recipes, err
	d.loop.Stop()
}

func (b *browser) chooseRecipe(ctx context.Context, list *tui.ListView, recipes []domain.Recipe) (domain.Recipe, error) {
	for {
		answer, err := b.prompt.Ask(ctx, fmt.Sprintf("[1-%d] q=%s ", len(recipes), b.app.Catalog.Text(messages.KeyQuit)))
		if err != nil {
			return domain.Recipe{}, err
		}
		switch strings.ToLower(answer) {
		case "q", "quit":
			return domain.Recipe{}, errQuit
		case "":
			list.ShowRecipes(recipes)
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(recipes) {
			return recipes[n-1], nil
		}
	}
}

func (b *browser) browseRecipe(ctx context.Context, list *tui.ListView, recipe domain.Recipe) error {
	for {
		list.ShowRecipe(recipe)
		if len(recipe.Steps) == 0 {
			return nil
		}

		answer, err := b.prompt.Ask(ctx, fmt.Sprintf("[1-%d] q=%s ", len(recipe.Steps), b.app.Catalog.Text(messages.KeyBack)))
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "q", "back":
			return nil
		case "":
			answer = "1"
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(recipe.Steps) {
			continue
		}

		if err := b.walk(ctx, *domain.NewNavigationState(recipe, n-1)); err != nil {
			return err
		}
	}
}

// walk runs the step view until the user goes back, saving every position when a session id is set.
func (b *browser) walk(ctx context.Context, state domain.NavigationState) error {
	view := tui.NewStepView(b.opts.Out, b.render, b.app.Catalog, state.RecipeName)
	nav, err := navigator.Restore(state,
		navigator.WithControls(view),
		navigator.WithLifecycleHooks(b.app.Hooks),
		navigator.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot open recipe steps: %w", err)
	}

	if err := b.save(ctx, nav); err != nil {
		return err
	}
	for {
		view.PrintControls()
		answer, err := b.prompt.Ask(ctx, "")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "n", "next":
			err = nav.Next()
		case "p", "prev", "previous":
			err = nav.Previous()
		case "q", "back":
			return nil
		default:
			continue
		}
		if errors.Is(err, domain.ErrAtFirstStep) || errors.Is(err, domain.ErrAtLastStep) {
			continue
		}
		if err := b.save(ctx, nav); err != nil {
			return err
		}
	}
}

func (b *browser) save(ctx context.Context, nav *navigator.Navigator) error {
	if b.opts.SessionID == "" {
		return nil
	}
	if err := b.app.Sessions.Save(ctx, b.opts.SessionID, nav.State()); err != nil {
		return fmt.Errorf("failed to save session %q: %w", b.opts.SessionID, err)
	}
	return nil
}
