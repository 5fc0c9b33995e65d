package loader_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/loader"
	"github.com/aretw0/bakingapp/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns one scripted result per call.
type scriptedSource struct {
	mu      sync.Mutex
	calls   int
	results []error
	recipes []domain.Recipe
}

func (s *scriptedSource) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.results) && s.results[i] != nil {
		return nil, s.results[i]
	}
	return s.recipes, nil
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// blockingSource blocks until its context is cancelled.
type blockingSource struct {
	started chan struct{}
	done    chan error
}

func (s *blockingSource) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	close(s.started)
	<-ctx.Done()
	s.done <- ctx.Err()
	return nil, ctx.Err()
}

type fakeDisplay struct {
	loop *loader.EventLoop

	loading  []bool
	recipes  [][]domain.Recipe
	kinds    []domain.FailureKind
	messages []string
	retry    func()
	onError  func(retry func())

	// stopAfter is the number of terminal notifications after which the loop stops.
	stopAfter int
	seen      int
}

func (d *fakeDisplay) ShowLoading(visible bool) { d.loading = append(d.loading, visible) }

func (d *fakeDisplay) ShowRecipes(recipes []domain.Recipe) {
	d.recipes = append(d.recipes, recipes)
	d.terminal()
}

func (d *fakeDisplay) ShowError(kind domain.FailureKind, message string, retry func()) {
	d.kinds = append(d.kinds, kind)
	d.messages = append(d.messages, message)
	d.retry = retry
	if d.onError != nil {
		d.onError(retry)
	}
	d.terminal()
}

func (d *fakeDisplay) terminal() {
	d.seen++
	if d.seen >= d.stopAfter {
		d.loop.Stop()
	}
}

func runLoop(t *testing.T, loop *loader.EventLoop) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, loop.Run(ctx), "event loop did not finish in time")
}

func TestLoader_Success(t *testing.T) {
	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 1}
	src := &scriptedSource{recipes: []domain.Recipe{{ID: 1, Name: "Nutella Pie"}, {ID: 2, Name: "Brownies"}}}

	l := loader.New(src, display, loader.WithDispatcher(loop.Post))
	assert.Equal(t, domain.StatusIdle, l.Status())
	require.NoError(t, l.Load())
	assert.Equal(t, domain.StatusLoading, l.Status())
	runLoop(t, loop)

	require.Len(t, display.recipes, 1)
	assert.Len(t, display.recipes[0], 2)
	assert.Empty(t, display.kinds)
	assert.Equal(t, []bool{true, false}, display.loading)
	assert.Equal(t, domain.StatusLoaded, l.Status())
	assert.Len(t, l.Recipes(), 2)
}

func TestLoader_EmptyCollectionIsNotAnError(t *testing.T) {
	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 1}
	src := &scriptedSource{}

	l := loader.New(src, display, loader.WithDispatcher(loop.Post))
	require.NoError(t, l.Load())
	runLoop(t, loop)

	require.Len(t, display.recipes, 1)
	assert.NotNil(t, display.recipes[0])
	assert.Empty(t, display.recipes[0])
	assert.Empty(t, display.kinds)
	assert.Equal(t, domain.StatusLoaded, l.Status())
}

func TestLoader_FailureCategories(t *testing.T) {
	catalog := messages.New("en")
	tests := []struct {
		err  error
		kind domain.FailureKind
	}{
		{fmt.Errorf("%w: dial tcp: connection refused", domain.ErrNoConnection), domain.FailureNoConnectivity},
		{fmt.Errorf("%w: EOF", domain.ErrNetwork), domain.FailureNetwork},
		{errors.New("recipe api responded 500"), domain.FailureGeneral},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			loop := loader.NewEventLoop()
			display := &fakeDisplay{loop: loop, stopAfter: 1}
			src := &scriptedSource{results: []error{tt.err}}

			l := loader.New(src, display, loader.WithDispatcher(loop.Post), loader.WithCatalog(catalog))
			require.NoError(t, l.Load())
			runLoop(t, loop)

			assert.Equal(t, []domain.FailureKind{tt.kind}, display.kinds)
			assert.Equal(t, []string{catalog.Failure(tt.kind)}, display.messages)
			assert.Empty(t, display.recipes)
			assert.Equal(t, domain.StatusErrored, l.Status())
			assert.Equal(t, 1, src.Calls(), "errors must not be retried automatically")
		})
	}
}

func TestLoader_RetryReissuesExactlyOneFetch(t *testing.T) {
	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 2}
	// The user taps retry as soon as the error is shown.
	display.onError = func(retry func()) { retry() }
	src := &scriptedSource{
		results: []error{fmt.Errorf("%w: no route to host", domain.ErrNoConnection)},
		recipes: []domain.Recipe{{ID: 1, Name: "Nutella Pie"}},
	}

	l := loader.New(src, display, loader.WithDispatcher(loop.Post))
	require.NoError(t, l.Load())
	runLoop(t, loop)

	assert.Equal(t, []domain.FailureKind{domain.FailureNoConnectivity}, display.kinds)
	assert.Equal(t, messages.New("").Failure(domain.FailureNoConnectivity), display.messages[0])
	assert.Equal(t, 2, src.Calls(), "retry must issue exactly one new fetch")
	require.Len(t, display.recipes, 1)
	assert.Equal(t, "Nutella Pie", display.recipes[0][0].Name)
	assert.Equal(t, domain.StatusLoaded, l.Status())
	assert.Equal(t, []bool{true, false, true, false}, display.loading,
		"progress must stay visible while the retried request is in flight")
}

func TestLoader_RetriedRequestKeepsProgressVisible(t *testing.T) {
	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 1}
	display.onError = func(retry func()) { retry() }

	release := make(chan struct{})
	var calls atomic.Int32
	src := sourceFunc(func(ctx context.Context) ([]domain.Recipe, error) {
		if calls.Add(1) == 1 {
			return nil, fmt.Errorf("%w: connection refused", domain.ErrNoConnection)
		}
		select {
		case <-release:
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	l := loader.New(src, display, loader.WithDispatcher(loop.Post))
	defer l.Close()
	require.NoError(t, l.Load())
	runLoop(t, loop)

	assert.Equal(t, domain.StatusLoading, l.Status())
	require.NotEmpty(t, display.loading)
	assert.True(t, display.loading[len(display.loading)-1], "progress hidden while a request is pending")
	close(release)
}

func TestEventLoop_PostAfterContextCancel(t *testing.T) {
	loop := loader.NewEventLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			loop.Post(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked after the loop exited")
	}
}

func TestLoader_CloseCancelsInFlightRequest(t *testing.T) {
	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 1}
	src := &blockingSource{started: make(chan struct{}), done: make(chan error, 1)}

	l := loader.New(src, display, loader.WithDispatcher(loop.Post))
	require.NoError(t, l.Load())
	<-src.started

	l.Close()

	select {
	case err := <-src.done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not cancelled on Close")
	}

	// Drain whatever the fetch goroutine posted; the display must stay untouched.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = loop.Run(ctx)

	assert.Empty(t, display.recipes)
	assert.Empty(t, display.kinds)
	assert.Equal(t, []bool{true}, display.loading)
	assert.ErrorIs(t, l.Load(), domain.ErrLoaderClosed)
}

func TestLoader_SupersededRequestIsDropped(t *testing.T) {
	var calls atomic.Int32
	first := make(chan struct{})
	src := sourceFunc(func(ctx context.Context) ([]domain.Recipe, error) {
		if calls.Add(1) == 1 {
			close(first)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []domain.Recipe{{ID: 7, Name: "Cheesecake"}}, nil
	})

	loop := loader.NewEventLoop()
	display := &fakeDisplay{loop: loop, stopAfter: 1}
	l := loader.New(src, display, loader.WithDispatcher(loop.Post))

	require.NoError(t, l.Load())
	<-first
	require.NoError(t, l.Load())
	runLoop(t, loop)

	assert.Empty(t, display.kinds, "the cancelled first request must not surface an error")
	require.Len(t, display.recipes, 1)
	assert.Equal(t, "Cheesecake", display.recipes[0][0].Name)
}

type sourceFunc func(ctx context.Context) ([]domain.Recipe, error)

func (f sourceFunc) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) { return f(ctx) }
