package registry

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	herrors "github.com/harukit/harukit/internal/errors"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalog struct {
	Components []ComponentRecord `yaml:"components"`
}

// StaticClient serves a fixed in-memory set of records. It never touches
// the network or the cache.
type StaticClient struct {
	records []ComponentRecord
	byName  map[string]int
}

// NewStaticClient validates records and indexes them by name
func NewStaticClient(records []ComponentRecord) (*StaticClient, error) {
	c := &StaticClient{byName: make(map[string]int, len(records))}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate component %q", r.Name)
		}
		c.byName[r.Name] = len(c.records)
		c.records = append(c.records, r.Clone())
	}
	return c, nil
}

// Builtin returns the catalog compiled into the binary
func Builtin() (*StaticClient, error) {
	var cat catalog
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		return nil, &herrors.DecodeError{Op: "load builtin catalog", Err: err}
	}
	return NewStaticClient(cat.Components)
}

// ListComponents implements Client
func (c *StaticClient) ListComponents(_ context.Context, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	resp := &ListResponse{
		Components: []ComponentRecord{},
		Total:      len(c.records),
		Page:       page,
		Limit:      limit,
	}

	start := (page - 1) * limit
	if start >= len(c.records) {
		return resp, nil
	}
	end := min(start+limit, len(c.records))
	for _, r := range c.records[start:end] {
		resp.Components = append(resp.Components, r.Clone())
	}
	return resp, nil
}

// GetComponent implements Client
func (c *StaticClient) GetComponent(_ context.Context, name string) (*ComponentRecord, error) {
	i, ok := c.byName[name]
	if !ok {
		return nil, herrors.NotFound(name)
	}
	r := c.records[i].Clone()
	return &r, nil
}

// SearchComponents implements Client
func (c *StaticClient) SearchComponents(_ context.Context, query string) ([]ComponentRecord, error) {
	out := []ComponentRecord{}
	for i := range c.records {
		if Matches(&c.records[i], query) {
			out = append(out, c.records[i].Clone())
		}
	}
	return out, nil
}

// GetCategories implements Client
func (c *StaticClient) GetCategories(_ context.Context) ([]string, error) {
	return categories(c.records), nil
}

// ComponentsByCategory implements Client
func (c *StaticClient) ComponentsByCategory(_ context.Context, category string) ([]ComponentRecord, error) {
	out := []ComponentRecord{}
	for _, r := range filterCategory(c.records, category) {
		out = append(out, r.Clone())
	}
	return out, nil
}
