package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/utils/safe"
)

// Client fetches record batches from source APIs. The whole response body is
// expected to be a JSON array of records.
type Client struct {
	http      *http.Client
	userAgent string
}

var _ interfaces.Fetcher = &Client{}

// Option is a functional option for client configuration
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent on fetch requests
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new fetch client
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "venuesync",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves the full record batch from the given URL
func (c *Client) Fetch(ctx context.Context, url string) ([]model.SourceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build fetch request", goerr.V("url", url))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch records", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from source",
			goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	var records []model.SourceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, goerr.Wrap(err, "failed to decode records", goerr.V("url", url))
	}

	return records, nil
}
