// Package loader fetches the recipe list for a display.
//
// A Loader issues one request per Load, classifies failures into the three
// user-facing categories and hands a retry action to the display. Results
// are delivered through a Dispatcher so displays only ever run on their own
// control goroutine. Close cancels the in-flight request; nothing is
// delivered after it.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/bakingapp/internal/logging"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/ports"
)

// Display is the screen that shows the recipe grid.
type Display interface {
	// ShowLoading toggles the progress indicator.
	ShowLoading(visible bool)
	// ShowRecipes renders the collection. It may be empty.
	ShowRecipes(recipes []domain.Recipe)
	// ShowError presents a persistent message with a retry action.
	// Calling retry re-issues the identical request.
	ShowError(kind domain.FailureKind, message string, retry func())
}

// Loader drives one Display from one RecipeSource.
type Loader struct {
	source   ports.RecipeSource
	display  Display
	dispatch Dispatcher
	catalog  *messages.Catalog
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	inflight context.CancelFunc
	seq      int
	status   domain.LoadStatus
	recipes  []domain.Recipe
	closed   bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithDispatcher sets how results reach the display's control goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(l *Loader) {
		l.dispatch = d
	}
}

// WithCatalog sets the localized message catalog.
func WithCatalog(c *messages.Catalog) Option {
	return func(l *Loader) {
		l.catalog = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Loader) {
		l.hooks = hooks
	}
}

// WithLogger configures a logger for the Loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader. Without WithDispatcher, results are delivered on the fetching goroutine.
func New(source ports.RecipeSource, display Display, opts ...Option) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		source:   source,
		display:  display,
		dispatch: func(fn func()) { fn() },
		catalog:  messages.New(""),
		logger:   logging.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
		status:   domain.StatusIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts a fetch and returns immediately.
// A pending request from an earlier Load is cancelled; only the latest one reports.
func (l *Loader) Load() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return domain.ErrLoaderClosed
	}
	if l.inflight != nil {
		l.inflight()
	}
	reqCtx, cancel := context.WithCancel(l.ctx)
	l.inflight = cancel
	l.seq++
	seq := l.seq
	l.status = domain.StatusLoading
	l.mu.Unlock()

	l.display.ShowLoading(true)
	l.logger.Debug("fetching recipes", "attempt", seq)
	if l.hooks.OnFetchStart != nil {
		l.hooks.OnFetchStart(reqCtx, &domain.FetchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFetchStart},
			Attempt:   seq,
		})
	}

	go l.fetch(reqCtx, cancel, seq)
	return nil
}

// Retry re-issues the identical request. It is the action handed to Display.ShowError.
func (l *Loader) Retry() {
	if err := l.Load(); err != nil {
		l.logger.Debug("retry ignored", "err", err)
	}
}

func (l *Loader) fetch(ctx context.Context, cancel context.CancelFunc, seq int) {
	defer cancel()

	start := time.Now()
	recipes, err := l.source.FetchRecipes(ctx)
	elapsed := time.Since(start)

	l.dispatch(func() {
		l.deliver(ctx, seq, recipes, err, elapsed)
	})
}

// deliver runs on the control goroutine.
func (l *Loader) deliver(ctx context.Context, seq int, recipes []domain.Recipe, err error, elapsed time.Duration) {
	l.mu.Lock()
	if l.closed || seq != l.seq {
		l.mu.Unlock()
		l.logger.Debug("dropping stale fetch result", "attempt", seq)
		return
	}
	l.inflight = nil
	kind := domain.ClassifyFailure(err)
	if err == nil {
		if recipes == nil {
			recipes = []domain.Recipe{}
		}
		l.status = domain.StatusLoaded
		l.recipes = recipes
	} else {
		l.status = domain.StatusErrored
	}
	l.mu.Unlock()

	if l.hooks.OnFetchFinish != nil {
		l.hooks.OnFetchFinish(ctx, &domain.FetchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFetchFinish},
			Attempt:   seq,
			Count:     len(recipes),
			Duration:  elapsed,
			Failure:   kind,
			Err:       err,
		})
	}

	// Progress is hidden first: a display may call retry from ShowError,
	// and the new Load must be able to show it again.
	l.display.ShowLoading(false)
	if err != nil {
		l.logger.Error("failed to load recipes", "err", err, "failure", kind, "attempt", seq)
		l.display.ShowError(kind, l.catalog.Failure(kind), l.Retry)
		return
	}

	l.logger.Debug("recipes loaded", "count", len(recipes), "elapsed", elapsed)
	l.display.ShowRecipes(recipes)
}

// Status returns the loader state.
func (l *Loader) Status() domain.LoadStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Recipes returns the last successfully loaded collection.
func (l *Loader) Recipes() []domain.Recipe {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.recipes
}

// Close cancels any in-flight request. When called on the control goroutine,
// no display call happens afterwards.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
}
