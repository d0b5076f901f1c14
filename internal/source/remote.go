package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/schema"

	"selectsearch/internal/domain"
)

var paramsEncoder = schema.NewEncoder()

// Remote fetches option pages from an HTTP endpoint. The page and query are
// sent as query string parameters; the response body is a JSON FetchResult.
type Remote struct {
	endpoint *url.URL
	client   *http.Client
}

// NewRemote creates a remote source for endpoint. A nil client gets a default
// client with the given timeout.
func NewRemote(endpoint string, client *http.Client, timeout time.Duration) (*Remote, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Remote{endpoint: u, client: client}, nil
}

// Fetch requests one page
func (r *Remote) Fetch(ctx context.Context, params domain.FetchParams) (domain.FetchResult, error) {
	values := r.endpoint.Query()
	if err := paramsEncoder.Encode(params, values); err != nil {
		return domain.FetchResult{}, fmt.Errorf("failed to encode params: %w", err)
	}

	u := *r.endpoint
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FetchResult{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var result domain.FetchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.FetchResult{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}
