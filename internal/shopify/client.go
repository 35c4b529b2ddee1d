package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds Admin API settings sourced from the environment.
type Config struct {
	APIVersion  string        `env:"SHOPIFY_API_VERSION" envDefault:"2024-07"`
	HTTPTimeout time.Duration `env:"SHOPIFY_HTTP_TIMEOUT" envDefault:"15s"`
}

// Executor executes a GraphQL query against one shop's Admin API.
// Implementations are request-scoped: an Executor is already bound to a shop
// domain and access token, and owns no cross-request state.
type Executor interface {
	Execute(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error)
}

// Factory builds an Executor bound to a shop and its access token. Services
// resolve the credential per request and use the factory instead of holding
// long-lived clients.
type Factory func(shopDomain, accessToken string) Executor

// NewFactory returns a Factory producing Clients that share one http.Client.
func NewFactory(cfg Config) Factory {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	return func(shopDomain, accessToken string) Executor {
		return &Client{
			httpClient:  httpClient,
			endpoint:    fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, cfg.APIVersion),
			accessToken: accessToken,
		}
	}
}

// Client is the Admin GraphQL API transport for a single shop.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
}

// NewClient creates a Client for one shop. Most callers should go through
// NewFactory so the underlying http.Client is shared.
func NewClient(cfg Config, shopDomain, accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		endpoint:    fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, cfg.APIVersion),
		accessToken: accessToken,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// GraphQLError is a top-level error entry in a GraphQL response, reported for
// malformed queries, throttling, and access problems.
type GraphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// Execute posts the query with its variables and returns the raw data payload.
// Transport failures, non-2xx responses, and top-level GraphQL errors all
// surface as errors; userErrors embedded in mutation payloads are the caller's
// to interpret because their location is mutation-specific.
func (c *Client) Execute(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Join(ErrTransport, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var parsed graphqlResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, errors.Join(ErrGraphQL, errors.New(joinMessages(msgs)))
	}

	return parsed.Data, nil
}

// maxResponseBytes caps response reads; Admin API payloads used here are far
// below this limit.
const maxResponseBytes = 4 << 20
