package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	herrors "github.com/harukit/harukit/internal/errors"
)

const (
	// DefaultRateLimit is the default maximum requests per second
	DefaultRateLimit = 10

	defaultTimeout = 30 * time.Second
)

// HTTPClient talks to a remote registry:
//
//	GET /api/components?page=&limit=
//	GET /api/components/{name}
//	GET /api/search?q=
//
// Successful responses are cached when a Cache is attached.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	cache     *Cache
	limiter   *rate.Limiter
	userAgent string
	logger    logrus.FieldLogger
}

// HTTPOption configures an HTTPClient
type HTTPOption func(*HTTPClient)

// WithCache attaches a response cache
func WithCache(cache *Cache) HTTPOption {
	return func(c *HTTPClient) { c.cache = cache }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.client = client }
}

// WithRateLimit sets the maximum requests per second
func WithRateLimit(perSecond float64) HTTPOption {
	return func(c *HTTPClient) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1) }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) HTTPOption {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger logrus.FieldLogger) HTTPOption {
	return func(c *HTTPClient) { c.logger = logger }
}

// NewHTTPClient creates a client for the registry at baseURL
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &HTTPClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), 1), // Allow burst of 1
		userAgent: "harukit-cli",
		logger:    discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListComponents implements Client
func (c *HTTPClient) ListComponents(ctx context.Context, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	op := "list components"
	key := fmt.Sprintf("components_%d_%d", page, limit)

	var resp ListResponse
	if c.lookup(key, &resp) {
		return &resp, nil
	}

	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))
	if err := c.fetch(ctx, op, "/api/components", query, &resp); err != nil {
		return nil, err
	}
	if err := validateAll(resp.Components); err != nil {
		return nil, &herrors.DecodeError{Op: op, Err: err}
	}
	if resp.Components == nil {
		resp.Components = []ComponentRecord{}
	}

	c.remember(key, &resp)
	return &resp, nil
}

// GetComponent implements Client
func (c *HTTPClient) GetComponent(ctx context.Context, name string) (*ComponentRecord, error) {
	if name == "" {
		return nil, herrors.NotFound(name)
	}

	op := "get component " + name
	key := "component_" + name

	var record ComponentRecord
	if c.lookup(key, &record) {
		return &record, nil
	}

	err := c.fetch(ctx, op, "/api/components/"+url.PathEscape(name), nil, &record)
	if err != nil {
		var regErr *herrors.RegistryError
		if errors.As(err, &regErr) && regErr.Status == http.StatusNotFound {
			return nil, herrors.NotFound(name)
		}
		return nil, err
	}
	if err := record.Validate(); err != nil {
		return nil, &herrors.DecodeError{Op: op, Err: err}
	}
	if record.Name != name {
		return nil, herrors.NotFound(name)
	}

	c.remember(key, &record)
	return &record, nil
}

// SearchComponents implements Client
func (c *HTTPClient) SearchComponents(ctx context.Context, query string) ([]ComponentRecord, error) {
	op := "search components"
	key := "search_" + query

	var records []ComponentRecord
	if c.lookup(key, &records) {
		return records, nil
	}

	params := url.Values{}
	params.Set("q", query)
	if err := c.fetch(ctx, op, "/api/search", params, &records); err != nil {
		return nil, err
	}
	if err := validateAll(records); err != nil {
		return nil, &herrors.DecodeError{Op: op, Err: err}
	}
	if records == nil {
		records = []ComponentRecord{}
	}

	c.remember(key, records)
	return records, nil
}

// GetCategories implements Client
func (c *HTTPClient) GetCategories(ctx context.Context) ([]string, error) {
	records, err := ListAll(ctx, c)
	if err != nil {
		return nil, err
	}
	return categories(records), nil
}

// ComponentsByCategory implements Client
func (c *HTTPClient) ComponentsByCategory(ctx context.Context, category string) ([]ComponentRecord, error) {
	records, err := ListAll(ctx, c)
	if err != nil {
		return nil, err
	}
	return filterCategory(records, category), nil
}

// ClearCache deletes every cached response
func (c *HTTPClient) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Clear()
}

func (c *HTTPClient) lookup(key string, v any) bool {
	if c.cache == nil {
		return false
	}
	if c.cache.Get(key, v) {
		c.logger.WithField("key", key).Debug("registry cache hit")
		return true
	}
	return false
}

// remember stores v best-effort; a failed write only costs a future fetch
func (c *HTTPClient) remember(key string, v any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(key, v); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Failed to write registry cache")
	}
}

func (c *HTTPClient) fetch(ctx context.Context, op, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &herrors.RegistryError{Op: op, Message: err.Error()}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &herrors.RegistryError{Op: op, Message: err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("url", u).Debug("registry request")

	resp, err := c.client.Do(req)
	if err != nil {
		return &herrors.RegistryError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &herrors.RegistryError{Op: op, Status: resp.StatusCode, Message: statusMessage(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &herrors.RegistryError{Op: op, Message: err.Error()}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &herrors.DecodeError{Op: op, Err: err}
	}
	return nil
}

// statusMessage prefers a short body over the generic status text
func statusMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(resp.StatusCode)
}
