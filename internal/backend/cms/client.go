// Package cms wraps the content-management layer under evaluation: a raw
// content-fetch endpoint and a structured query endpoint.
package cms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
)

// Client talks to the CMS content and query endpoints. Both backends are
// consumed as black boxes; the client only issues calls and returns bodies.
type Client struct {
	contentURL string
	gql        *graphql.Client
	httpClient *http.Client
	timeout    time.Duration
	log        logrus.FieldLogger
}

// New creates a client for the given endpoints.
func New(log logrus.FieldLogger, queryURL, contentURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	return &Client{
		contentURL: strings.TrimRight(contentURL, "/"),
		gql:        graphql.NewClient(queryURL, graphql.WithHTTPClient(httpClient)),
		httpClient: httpClient,
		timeout:    timeout,
		log:        log.WithField("component", "cms_client"),
	}
}

// Query executes a structured query with variables against the query
// endpoint, decoding the response data into out. Structured errors from the
// endpoint surface as a regular error.
func (c *Client) Query(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := graphql.NewRequest(query)
	for key, value := range vars {
		req.Var(key, value)
	}

	if err := c.gql.Run(ctx, req, out); err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	return nil
}

// FetchContent performs a plain GET of path against the content endpoint and
// returns the text body.
func (c *Client) FetchContent(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.contentURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building content request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	return string(body), nil
}
