package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorewood/pmdocs/internal/output"
)

// DefaultBaseURL is the public Postman API endpoint.
const DefaultBaseURL = "https://api.getpostman.com"

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client reads workspaces and collections from the Postman API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// NewClient creates a Postman API client. A nil httpClient uses a default
// client with a one minute timeout.
func NewClient(baseURL, apiKey string, httpClient HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Workspace fetches a workspace and returns it with the raw response body.
func (c *Client) Workspace(ctx context.Context, id string) (*Workspace, []byte, error) {
	body, err := c.get(ctx, "/workspaces/"+url.PathEscape(id))
	if err != nil {
		return nil, nil, err
	}

	ws, err := DecodeWorkspace(body)
	if err != nil {
		return nil, nil, output.NewFetchError("workspace "+id, err)
	}
	return ws, body, nil
}

// Collection fetches a collection by uid and returns it with the raw
// response body.
func (c *Client) Collection(ctx context.Context, uid string) (*Collection, []byte, error) {
	body, err := c.get(ctx, "/collections/"+url.PathEscape(uid))
	if err != nil {
		return nil, nil, err
	}

	coll, err := DecodeCollection(body)
	if err != nil {
		return nil, nil, output.NewFetchError("collection "+uid, err)
	}
	return coll, body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, output.NewFetchError("creating request for "+path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.NewFetchError("GET "+path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewFetchError("reading "+path, err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody := string(body)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, output.NewFetchError(fmt.Sprintf("GET %s (status %d)", path, resp.StatusCode), errors.New(errBody))
	}
	return body, nil
}
