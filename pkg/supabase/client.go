package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nasma-hq/nasma-insights-api/pkg/config"
)

// Client talks to the hosted table store through its PostgREST surface.
// It covers exactly the read operations the aggregators need: column
// selection, equality/range/in-list/pattern filters, and zero-based
// inclusive row ranges.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	observe func(duration time.Duration)
}

// New constructs a client from configuration.
func New(cfg config.SupabaseConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.ServiceRoleKey,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// OnRequest registers a hook invoked with the duration of every executed
// query. Set it before the client is shared across goroutines.
func (c *Client) OnRequest(observe func(duration time.Duration)) {
	c.observe = observe
}

// From starts a select query against the named table.
func (c *Client) From(table string) *Query {
	return &Query{
		client:  c,
		table:   table,
		columns: "*",
		params:  url.Values{},
	}
}

// Query accumulates filters for a single table select.
type Query struct {
	client    *Client
	table     string
	columns   string
	params    url.Values
	rangeFrom int
	rangeTo   int
	hasRange  bool
}

// Select restricts the returned columns.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq adds an equality filter.
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// Gte adds an inclusive lower bound.
func (q *Query) Gte(column, value string) *Query {
	q.params.Add(column, "gte."+value)
	return q
}

// Lte adds an inclusive upper bound.
func (q *Query) Lte(column, value string) *Query {
	q.params.Add(column, "lte."+value)
	return q
}

// Ilike adds a case-insensitive pattern filter. SQL-style % wildcards are
// translated to the * wildcards PostgREST expects.
func (q *Query) Ilike(column, pattern string) *Query {
	q.params.Add(column, "ilike."+strings.ReplaceAll(pattern, "%", "*"))
	return q
}

// In adds an in-list filter.
func (q *Query) In(column string, values []string) *Query {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	q.params.Add(column, "in.("+strings.Join(quoted, ",")+")")
	return q
}

// Range limits the query to a zero-based inclusive row window.
func (q *Query) Range(from, to int) *Query {
	q.rangeFrom = from
	q.rangeTo = to
	q.hasRange = true
	return q
}

// Execute runs the query and decodes the JSON rows into dest.
func (q *Query) Execute(ctx context.Context, dest interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, url.PathEscape(q.table))
	params := url.Values{}
	params.Set("select", q.columns)
	for key, values := range q.params {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build table request: %w", err)
	}
	req.Header.Set("apikey", q.client.apiKey)
	req.Header.Set("Authorization", "Bearer "+q.client.apiKey)
	req.Header.Set("Accept", "application/json")
	if q.hasRange {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", q.rangeFrom, q.rangeTo))
	}

	start := time.Now()
	resp, err := q.client.http.Do(req)
	if q.client.observe != nil {
		q.client.observe(time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("query table %s: %w", q.table, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("query table %s: status %d: %s", q.table, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode table %s response: %w", q.table, err)
	}
	return nil
}
