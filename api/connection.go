package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Connection interface {
	Request(ctx context.Context, endpoint *url.URL) (*http.Response, error)
}

// ClientHost resolves relative endpoints against a base url, e.g. https://brapi.dev/api
type ClientHost struct {
	client  *http.Client
	baseURL *url.URL
}

type Client struct {
	Connection Connection
	Token      string
}

func (conn *ClientHost) Request(ctx context.Context, endpoint *url.URL) (*http.Response, error) {
	target := conn.baseURL.JoinPath(endpoint.EscapedPath())
	target.RawQuery = endpoint.RawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return conn.client.Do(req)
}

func ClientFactory(baseURL string, token string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	client := &http.Client{
		Timeout: timeout,
	}

	clientHost := &ClientHost{
		client:  client,
		baseURL: parsed,
	}

	return &Client{
		Connection: clientHost,
		Token:      token,
	}, nil
}
