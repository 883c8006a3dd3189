package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/catalogctl/internal/logging"
	"github.com/muurk/catalogctl/internal/productform"
	"github.com/muurk/catalogctl/internal/urls"
	"github.com/muurk/catalogctl/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for reads
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 10 * time.Second

	// DefaultCacheDuration is how long reference lists are reused
	DefaultCacheDuration = 30 * time.Second

	// RequestIDHeader carries a per-request id for correlating server logs
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is kept
	maxErrorBody = 512
)

// Reference list kinds served by the admin API.
const (
	KindCategories = "categories"
	KindSizes      = "sizes"
	KindColors     = "colors"
)

// References holds the three lists the form's pickers need.
type References struct {
	Categories []productform.ReferenceItem
	Sizes      []productform.ReferenceItem
	Colors     []productform.ReferenceItem
}

type cachedList struct {
	items []productform.ReferenceItem
	at    time.Time
}

// Client talks to the store admin API for one store. It implements
// productform.Persistence.
type Client struct {
	// BaseURL is the admin server root (e.g., "http://localhost:3000")
	BaseURL string

	// StoreID scopes every call
	StoreID string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries applies to GET requests only. Writes are sent once.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool

	// CacheDuration is how long to reuse reference lists (0 = no cache)
	CacheDuration time.Duration

	cacheMutex sync.RWMutex
	cache      map[string]cachedList
}

var _ productform.Persistence = (*Client)(nil)

// NewClient creates a client for storeID on the admin server at baseURL.
func NewClient(baseURL, storeID string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		StoreID:               storeID,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
		CacheDuration:         DefaultCacheDuration,
		cache:                 make(map[string]cachedList),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior for reads
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Create posts a new product and returns its id.
func (c *Client) Create(ctx context.Context, p productform.Payload) (string, error) {
	var created productform.Product
	if err := c.do(ctx, http.MethodPost, urls.APIProducts(c.StoreID), p, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// Update patches an existing product.
func (c *Client) Update(ctx context.Context, id string, p productform.Payload) error {
	return c.do(ctx, http.MethodPatch, urls.APIProduct(c.StoreID, id), p, nil)
}

// Delete removes a product. The API answers 409 while orders still
// reference it.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, urls.APIProduct(c.StoreID, id), nil, nil)
}

// GetProduct fetches one product snapshot.
func (c *Client) GetProduct(ctx context.Context, id string) (*productform.Product, error) {
	var p productform.Product
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, urls.APIProduct(c.StoreID, id), nil, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts fetches every product of the store.
func (c *Client) ListProducts(ctx context.Context) ([]productform.Product, error) {
	var products []productform.Product
	err := c.withRetry(ctx, func() error {
		products = nil
		return c.do(ctx, http.MethodGet, urls.APIProducts(c.StoreID), nil, &products)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListReferences fetches one reference list kind, reusing a cached copy
// while it is fresh.
func (c *Client) ListReferences(ctx context.Context, kind string) ([]productform.ReferenceItem, error) {
	if c.CacheDuration > 0 {
		c.cacheMutex.RLock()
		entry, ok := c.cache[kind]
		c.cacheMutex.RUnlock()
		if ok && time.Since(entry.at) < c.CacheDuration {
			return cloneItems(entry.items), nil
		}
	}

	var items []productform.ReferenceItem
	err := c.withRetry(ctx, func() error {
		items = nil
		return c.do(ctx, http.MethodGet, urls.APIReferences(c.StoreID, kind), nil, &items)
	})
	if err != nil {
		return nil, err
	}

	if c.CacheDuration > 0 {
		c.cacheMutex.Lock()
		if c.cache == nil {
			c.cache = make(map[string]cachedList)
		}
		c.cache[kind] = cachedList{items: cloneItems(items), at: time.Now()}
		c.cacheMutex.Unlock()
	}
	return items, nil
}

// LoadReferences fetches categories, sizes and colors. The form only mounts
// once all three are loaded.
func (c *Client) LoadReferences(ctx context.Context) (*References, error) {
	refs := &References{}
	for _, target := range []struct {
		kind string
		dst  *[]productform.ReferenceItem
	}{
		{KindCategories, &refs.Categories},
		{KindSizes, &refs.Sizes},
		{KindColors, &refs.Colors},
	} {
		items, err := c.ListReferences(ctx, target.kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", target.kind, err)
		}
		*target.dst = items
	}
	return refs, nil
}

// InvalidateCache drops cached reference lists.
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	c.cache = make(map[string]cachedList)
	c.cacheMutex.Unlock()
}

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// the retry budget is spent.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		logging.Debug("Retrying API request")
	}

	return lastErr
}

// do performs a single request. body, when non-nil, is sent as JSON; out,
// when non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := urls.Join(c.BaseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return NewNetworkError("failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogRequest(requestID, method, endpoint)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		apiErr := NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
		apiErr.RequestID = requestID
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogResponse(requestID, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewHTTPError(resp.StatusCode, errorMessage(resp))
		apiErr.RequestID = requestID
		return apiErr
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		apiErr := NewParseError("failed to parse JSON response", err)
		apiErr.RequestID = requestID
		return apiErr
	}
	return nil
}

// errorMessage extracts the plain-text reason the admin API sends with
// error statuses, falling back to the status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}
	return msg
}

func cloneItems(items []productform.ReferenceItem) []productform.ReferenceItem {
	out := make([]productform.ReferenceItem, len(items))
	copy(out, items)
	return out
}
