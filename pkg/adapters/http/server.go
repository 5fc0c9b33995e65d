// Package http exposes recipes and navigation sessions over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/bakingapp/internal/logging"
	"github.com/aretw0/bakingapp/pkg/adapters/recipeapi"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/aretw0/bakingapp/pkg/navigator"
	"github.com/aretw0/bakingapp/pkg/observability"
	"github.com/aretw0/bakingapp/pkg/ports"
	"github.com/aretw0/bakingapp/pkg/session"
	"github.com/go-chi/chi/v5"
)

// AppName is reported by GET /info.
const AppName = "bakingapp-http"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// Server serves the recipe and session endpoints.
type Server struct {
	Source   ports.RecipeSource
	Sessions *session.Manager
	Streams  *StreamManager

	metrics *observability.Metrics
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	version string
	locale  string

	fetches atomic.Int64
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts /metrics for m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLifecycleHooks registers hooks fired around every recipe fetch.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(version)
	}
}

// WithLocale sets the message locale used when a request carries no Accept-Language.
func WithLocale(locale string) Option {
	return func(s *Server) {
		s.locale = locale
	}
}

// SessionView is the JSON shape of a navigation session.
type SessionView struct {
	SessionID    string      `json:"session_id"`
	RecipeID     int64       `json:"recipe_id"`
	RecipeName   string      `json:"recipe_name,omitempty"`
	CurrentIndex int         `json:"current_index"`
	Total        int         `json:"total"`
	Step         domain.Step `json:"step"`
	CanPrevious  bool        `json:"can_previous"`
	CanNext      bool        `json:"can_next"`
}

// StartSessionRequest is the body of POST /sessions.
type StartSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	RecipeID  int64  `json:"recipe_id"`
	StepIndex int    `json:"step_index"`
}

// ErrorResponse is the JSON shape of every error.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Kind    domain.FailureKind `json:"kind,omitempty"`
	Message string             `json:"message,omitempty"`
}

// NewServer creates a Server.
func NewServer(source ports.RecipeSource, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Source:   source,
		Sessions: sessions,
		logger:   logging.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates the HTTP handler for recipes and sessions.
func NewHandler(source ports.RecipeSource, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(source, sessions, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", s.ListRecipes)
		r.Get("/{recipeID}", s.GetRecipe)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/next", s.NextStep)
			r.Post("/previous", s.PreviousStep)
			r.Get("/events", s.SubscribeSession)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := OpenAPI(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	} else if err != nil {
		s.logger.Error("OpenAPI document unavailable", "err", err)
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         AppName,
		"version":     s.version,
		"api_version": apiVersion,
	})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(RawOpenAPI())
}

// ListRecipes handles GET /recipes.
func (s *Server) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, ok := s.fetch(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /recipes/{recipeID}.
func (s *Server) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid recipe id: %w", err))
		return
	}
	recipes, ok := s.fetch(w, r)
	if !ok {
		return
	}
	recipe, err := recipeapi.FindRecipe(recipes, id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recipe)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if strings.ContainsAny(body.SessionID, `/\`) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid session id %q", body.SessionID))
		return
	}

	recipes, ok := s.fetch(w, r)
	if !ok {
		return
	}
	recipe, err := recipeapi.FindRecipe(recipes, body.RecipeID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	state := domain.NewNavigationState(recipe, body.StepIndex)
	nav, err := navigator.Restore(*state)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = session.NewID()
	}
	if err := s.Sessions.Start(r.Context(), sessionID, nav.State()); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("session started", "session_id", sessionID, "recipe_id", recipe.ID, "index", nav.Index())
	w.Header().Set("Location", "/sessions/"+sessionID)
	s.writeJSON(w, http.StatusCreated, newSessionView(sessionID, state.RecipeID, state.RecipeName, nav))
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.Sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	nav, err := navigator.Restore(*state)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionView(sessionID, state.RecipeID, state.RecipeName, nav))
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NextStep handles POST /sessions/{sessionID}/next.
func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, session.Next)
}

// PreviousStep handles POST /sessions/{sessionID}/previous.
func (s *Server) PreviousStep(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, session.Previous)
}

func (s *Server) move(w http.ResponseWriter, r *http.Request, dir session.Direction) {
	sessionID := chi.URLParam(r, "sessionID")
	nav, err := s.Sessions.Move(r.Context(), sessionID, dir)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	state := nav.State()
	view := newSessionView(sessionID, state.RecipeID, state.RecipeName, nav)
	if data, err := json.Marshal(view); err == nil {
		s.Streams.Broadcast(sessionID, string(data))
	}
	s.writeJSON(w, http.StatusOK, view)
}

// SubscribeSession handles GET /sessions/{sessionID}/events (SSE).
func (s *Server) SubscribeSession(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.Sessions.Load(r.Context(), sessionID); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	s.logger.Debug("SSE: Subscribing to session updates", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: Client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// fetch loads the recipe collection, answering 502 with a localized message on failure.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) ([]domain.Recipe, bool) {
	ctx := r.Context()
	attempt := int(s.fetches.Add(1))
	if s.hooks.OnFetchStart != nil {
		s.hooks.OnFetchStart(ctx, &domain.FetchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFetchStart},
			Attempt:   attempt,
		})
	}

	start := time.Now()
	recipes, err := s.Source.FetchRecipes(ctx)
	kind := domain.ClassifyFailure(err)
	if s.hooks.OnFetchFinish != nil {
		s.hooks.OnFetchFinish(ctx, &domain.FetchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFetchFinish},
			Attempt:   attempt,
			Count:     len(recipes),
			Duration:  time.Since(start),
			Failure:   kind,
			Err:       err,
		})
	}
	if err == nil {
		return recipes, true
	}

	s.logger.Warn("recipe fetch failed", "failure", kind, "err", err)

	catalog := messages.New(s.locale)
	if header := r.Header.Get("Accept-Language"); header != "" {
		catalog = messages.FromAcceptLanguage(header)
	}
	s.writeJSONStatus(w, http.StatusBadGateway, ErrorResponse{
		Error:   err.Error(),
		Kind:    kind,
		Message: catalog.Failure(kind),
	})
	return nil, false
}

func newSessionView(sessionID string, recipeID int64, recipeName string, nav *navigator.Navigator) SessionView {
	return SessionView{
		SessionID:    sessionID,
		RecipeID:     recipeID,
		RecipeName:   recipeName,
		CurrentIndex: nav.Index(),
		Total:        nav.Len(),
		Step:         nav.Current(),
		CanPrevious:  nav.CanPrevious(),
		CanNext:      nav.CanNext(),
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoSteps), errors.Is(err, domain.ErrInvalidStepIndex):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAtFirstStep), errors.Is(err, domain.ErrAtLastStep):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownDirection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	}
	s.writeJSONStatus(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	s.writeJSONStatus(w, status, v)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
