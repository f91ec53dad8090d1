package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/harukit/harukit/internal/config"
)

// Client resolves component names against a registry backend
type Client interface {
	// ListComponents returns one page of records in backend order. Pages
	// are 1-based.
	ListComponents(ctx context.Context, page, limit int) (*ListResponse, error)

	// GetComponent returns the record named exactly name, or an error
	// matching ErrComponentNotFound
	GetComponent(ctx context.Context, name string) (*ComponentRecord, error)

	// SearchComponents matches query case-insensitively against name,
	// description, tags and category. No match is an empty result.
	SearchComponents(ctx context.Context, query string) ([]ComponentRecord, error)

	// GetCategories returns the sorted distinct categories
	GetCategories(ctx context.Context) ([]string, error)

	// ComponentsByCategory returns records whose category equals category
	ComponentsByCategory(ctx context.Context, category string) ([]ComponentRecord, error)
}

const (
	// DefaultPageLimit is the page size used when the caller passes none
	DefaultPageLimit = 50

	// maxPages bounds full listings against a misbehaving server
	maxPages = 1000
)

// Options selects and configures a backend
type Options struct {
	URL       string // "builtin" or an http(s) base URL
	CacheDir  string
	Cache     bool
	TTL       int     // seconds
	RateLimit float64 // requests per second, 0 for the default
	Version   string  // reported in the User-Agent
	Logger    logrus.FieldLogger
}

// New returns the backend selected by opts.URL
func New(opts Options) (Client, error) {
	if opts.URL == "" || opts.URL == config.BuiltinRegistry {
		return Builtin()
	}

	if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
		return nil, fmt.Errorf("unsupported registry url %q: use an http(s) URL or %q", opts.URL, config.BuiltinRegistry)
	}

	httpOpts := []HTTPOption{
		WithUserAgent("harukit-cli/" + opts.Version),
	}
	if opts.Logger != nil {
		httpOpts = append(httpOpts, WithLogger(opts.Logger))
	}
	if opts.RateLimit > 0 {
		httpOpts = append(httpOpts, WithRateLimit(opts.RateLimit))
	}
	if opts.Cache && opts.CacheDir != "" {
		httpOpts = append(httpOpts, WithCache(NewCache(opts.CacheDir, opts.TTL)))
	}

	return NewHTTPClient(opts.URL, httpOpts...), nil
}

// ListAll pages through the whole registry. When the server reports no
// total, paging continues until an empty page, since a server may cap the
// page size below the requested limit.
func ListAll(ctx context.Context, c Client) ([]ComponentRecord, error) {
	var all []ComponentRecord
	prevFirst := ""
	for page := 1; page <= maxPages; page++ {
		resp, err := c.ListComponents(ctx, page, 100)
		if err != nil {
			return nil, err
		}
		if len(resp.Components) == 0 {
			break
		}
		// A server ignoring the page parameter repeats the first page
		first := resp.Components[0].Name
		if page > 1 && first == prevFirst {
			break
		}
		prevFirst = first

		all = append(all, resp.Components...)
		if resp.Total > 0 && len(all) >= resp.Total {
			break
		}
	}
	return all, nil
}

// Suggest returns up to three registry names close to name, best first
func Suggest(ctx context.Context, c Client, name string) []string {
	records, err := ListAll(ctx, c)
	if err != nil {
		return nil
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}

	var out []string
	for _, m := range fuzzy.Find(name, names) {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Matches reports whether r matches query the way SearchComponents does
func Matches(r *ComponentRecord, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Category), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// categories returns the sorted distinct categories of records
func categories(records []ComponentRecord) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	slices.Sort(out)
	return out
}

func filterCategory(records []ComponentRecord, category string) []ComponentRecord {
	out := []ComponentRecord{}
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
