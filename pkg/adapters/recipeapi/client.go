// Package recipeapi fetches the recipe collection from the remote JSON API.
package recipeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/ports"
)

const (
	// DefaultURL is the public recipe feed.
	DefaultURL = "https://d17h27t6h515a5.cloudfront.net/topher/2017/May/59121517_baking/baking.json"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "bakingapp"
	maxErrorBody     = 4096
)

var _ ports.RecipeSource = (*Client)(nil)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("recipe api responded %s", e.Status)
	}
	return fmt.Sprintf("recipe api responded %s: %s", e.Status, e.Body)
}

// Config describes the recipe API client configuration.
type Config struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues recipe list requests.
type Client struct {
	url       *url.URL
	userAgent string
	http      *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		raw = DefaultURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("recipeapi: unsupported url scheme %q", u.Scheme)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{url: u, userAgent: userAgent, http: client}, nil
}

// URL returns the endpoint the client fetches.
func (c *Client) URL() string {
	return c.url.String()
}

// FetchRecipes performs one GET and decodes the JSON array of recipes.
func (c *Client) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var recipes []domain.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		if isTransportRead(err) {
			return nil, fmt.Errorf("%w: read response: %w", domain.ErrNetwork, err)
		}
		return nil, fmt.Errorf("recipeapi: decode response: %w", err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}

// classifyTransport tags a failed round trip with the domain failure markers.
// Timeouts and cancellations stay unmarked and surface as general failures.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("recipeapi: request aborted: %w", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("recipeapi: request timed out: %w", err)
	}
	if isNoConnection(err) {
		return fmt.Errorf("%w: %w", domain.ErrNoConnection, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
}

func isNoConnection(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func isTransportRead(err error) bool {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Classify maps any fetch error to its user-facing category.
func Classify(err error) domain.FailureKind {
	return domain.ClassifyFailure(err)
}

// FindRecipe returns the recipe with the given ID.
func FindRecipe(recipes []domain.Recipe, id int64) (domain.Recipe, error) {
	for _, r := range recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Recipe{}, fmt.Errorf("%w: %d", domain.ErrRecipeNotFound, id)
}
