package futebol

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/httputil"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
	"github.com/wonny/sensai/pkg/redis"
)

const serviceName = "futebol"

// Client handles communication with api-futebol v1
// ⭐ SSOT: api-futebol 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	cache      *redis.Cache
	ttl        time.Duration
	recorder   *metrics.Recorder
}

// NewClient creates a new api-futebol client.
// httpClient should already carry the Authorization header and rate limit.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "futebol"),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// WithCache caches raw responses in Redis for ttl
func (c *Client) WithCache(cache *redis.Cache, ttl time.Duration) *Client {
	c.cache = cache
	c.ttl = ttl
	return c
}

// WithMetrics counts calls by outcome
func (c *Client) WithMetrics(rec *metrics.Recorder) *Client {
	c.recorder = rec
	return c
}

// endpointURL joins base and endpoint with exactly one slash
func (c *Client) endpointURL(endpoint string, params url.Values) string {
	full := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	return full
}

// FetchRaw returns the JSON body of endpoint. Non-2xx responses are errors
// carrying the status code and body text.
func (c *Client) FetchRaw(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	fetch := func() (interface{}, error) {
		var raw json.RawMessage
		if err := c.httpClient.GetJSON(ctx, c.endpointURL(endpoint, params), &raw); err != nil {
			c.recorder.ExternalCall(serviceName, "error")
			return nil, fmt.Errorf("api-futebol %s: %w", endpoint, err)
		}
		c.recorder.ExternalCall(serviceName, "ok")
		return raw, nil
	}

	if c.cache == nil {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		return v.(json.RawMessage), nil
	}

	var raw json.RawMessage
	if err := c.cache.GetOrSet(ctx, redis.EndpointKey(endpoint, flatParams(params)), &raw, c.ttl, fetch); err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchTable fetches endpoint and flattens the JSON records into a table
func (c *Client) FetchTable(ctx context.Context, endpoint string, params url.Values) (*table.Table, error) {
	raw, err := c.FetchRaw(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	t, err := table.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("api-futebol %s: %w", endpoint, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"rows":     t.Len(),
		"columns":  len(t.Columns()),
	}).Debug("Fetched table")

	return t, nil
}

func flatParams(params url.Values) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = strings.Join(v, ",")
	}
	return out
}
