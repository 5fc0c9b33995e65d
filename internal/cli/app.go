package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/bakingapp/internal/config"
	"github.com/aretw0/bakingapp/internal/logging"
	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/aretw0/bakingapp/pkg/adapters/file"
	"github.com/aretw0/bakingapp/pkg/adapters/memory"
	"github.com/aretw0/bakingapp/pkg/adapters/recipeapi"
	"github.com/aretw0/bakingapp/pkg/adapters/redis"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/observability"
	"github.com/aretw0/bakingapp/pkg/persistence/middleware"
	"github.com/aretw0/bakingapp/pkg/ports"
	"github.com/aretw0/bakingapp/pkg/session"
)

// App bundles the components every command works with.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Catalog  *messages.Catalog
	Source   ports.RecipeSource
	Store    ports.StateStore
	Sessions *session.Manager
	Metrics  *observability.Metrics
	Hooks    domain.LifecycleHooks

	closers []func() error
}

// AppOption configures NewApp.
type AppOption func(*appOptions)

type appOptions struct {
	logger *slog.Logger
	source ports.RecipeSource
	store  ports.StateStore
}

// WithAppLogger overrides the logger derived from the configuration.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// WithRecipeSource replaces the HTTP recipe client.
func WithRecipeSource(source ports.RecipeSource) AppOption {
	return func(o *appOptions) {
		o.source = source
	}
}

// WithStateStore replaces the configured store backend.
func WithStateStore(store ports.StateStore) AppOption {
	return func(o *appOptions) {
		o.store = store
	}
}

// NewApp wires the recipe source, state store and session manager from cfg.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{
		Config:  cfg,
		Logger:  o.logger,
		Catalog: messages.New(cfg.UI.Locale),
		Metrics: observability.NewMetrics(),
	}
	if app.Logger == nil {
		app.Logger = logging.NewNop()
	}
	app.Hooks = observability.Hooks(app.Logger, app.Metrics)

	app.Source = o.source
	if app.Source == nil {
		client, err := recipeapi.New(recipeapi.Config{
			URL:       cfg.API.URL,
			Timeout:   cfg.API.Timeout,
			UserAgent: cfg.API.UserAgent,
		})
		if err != nil {
			return nil, err
		}
		app.Source = client
	}

	managerOpts := []session.Option{
		session.WithLogger(app.Logger),
		session.WithLifecycleHooks(app.Hooks),
	}

	app.Store = o.store
	if app.Store == nil {
		store, extra, err := app.newStore()
		if err != nil {
			return nil, err
		}
		app.Store = store
		managerOpts = append(managerOpts, extra...)
	}
	if key := cfg.Store.Encryption.Key; key != "" {
		keys, err := middleware.ParseKeys(key, cfg.Store.Encryption.FallbackKeys...)
		if err != nil {
			return nil, fmt.Errorf("store.encryption: %w", err)
		}
		encrypt, err := middleware.NewEncryptionMiddleware(keys)
		if err != nil {
			return nil, err
		}
		app.Store = middleware.Chain(app.Store, encrypt)
		app.Logger.Debug("session encryption enabled", "fallback_keys", len(keys.FallbackKeys))
	}
	app.Sessions = session.NewManager(app.Store, managerOpts...)
	return app, nil
}

func (a *App) newStore() (ports.StateStore, []session.Option, error) {
	cfg := a.Config.Store
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		return file.New(cfg.Path), nil, nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		a.closers = append(a.closers, store.Close)
		var opts []session.Option
		if cfg.Redis.Locking {
			opts = append(opts, session.WithLocker(redis.NewLocker(store.Client(), store.Prefix())))
		}
		a.Logger.Debug("using redis store", "addr", cfg.Redis.Addr, "prefix", store.Prefix(), "locking", cfg.Redis.Locking)
		return store, opts, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Renderer returns the markdown renderer for the step view.
func (a *App) Renderer(width int) tui.Renderer {
	render, err := tui.NewRenderer(a.Config.UI.Style, width)
	if err != nil {
		a.Logger.Warn("markdown rendering disabled", "err", err)
		return tui.PlainRenderer
	}
	return render
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
