package justwatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultEndpoint  = "https://apis.justwatch.com/graphql"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "justwatch-go"

	// batchConcurrency bounds concurrent title lookups in GetTitles.
	batchConcurrency = 5
)

// Client sends prepared GraphQL requests to the JustWatch API and parses the
// responses. The request builders and parsers are pure functions; Client only
// adds the HTTP transport around them.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new JustWatch API client
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		endpoint:   defaultEndpoint,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// execute POSTs the request body and decodes the response document. GraphQL
// level errors are not inspected here; the parsers decide what an errors key
// means for their operation.
func (c *Client) execute(ctx context.Context, request GraphQLRequest) (map[string]any, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var doc map[string]any
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().
		Str("operation", request.OperationName).
		Int("status", resp.StatusCode).
		Msg("GraphQL request completed")

	return doc, nil
}

// Search searches for titles matching the given query and returns up to
// count entries with their offers in the given country.
func (c *Client) Search(ctx context.Context, title, country, language string, count int, bestOnly bool) ([]MediaEntry, error) {
	request, err := PrepareSearchRequest(title, country, language, count, bestOnly)
	if err != nil {
		return nil, err
	}
	doc, err := c.execute(ctx, request)
	if err != nil {
		return nil, err
	}
	return ParseSearchResponse(doc)
}

// GetTitle fetches details and offers for a single node ID. It returns
// (nil, nil) when the API does not know the node ID.
func (c *Client) GetTitle(ctx context.Context, nodeID, country, language string, bestOnly bool) (*MediaEntry, error) {
	request, err := PrepareTitleRequest(nodeID, country, language, bestOnly)
	if err != nil {
		return nil, err
	}
	doc, err := c.execute(ctx, request)
	if err != nil {
		return nil, err
	}
	return ParseTitleResponse(doc)
}

// GetOffersForCountries fetches offers for one node across multiple countries
// in a single request. Every requested country is present in the result, with
// an empty slice when the API returned no offers for it.
func (c *Client) GetOffersForCountries(ctx context.Context, nodeID string, countries []string, language string, bestOnly bool) (map[string][]Offer, error) {
	request, err := PrepareOffersForCountriesRequest(nodeID, countries, language, bestOnly)
	if err != nil {
		return nil, err
	}
	doc, err := c.execute(ctx, request)
	if err != nil {
		return nil, err
	}
	return ParseOffersForCountriesResponse(doc, countries)
}

// GetTitles fetches details for multiple node IDs concurrently. Unknown node
// IDs map to a nil entry. The first transport or parse error cancels the
// remaining lookups.
func (c *Client) GetTitles(ctx context.Context, nodeIDs []string, country, language string, bestOnly bool) (map[string]*MediaEntry, error) {
	if err := validateCountryCode(country); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	var mu sync.Mutex
	entries := make(map[string]*MediaEntry, len(nodeIDs))

	for _, nodeID := range nodeIDs {
		nodeID := nodeID
		g.Go(func() error {
			entry, err := c.GetTitle(ctx, nodeID, country, language, bestOnly)
			if err != nil {
				return fmt.Errorf("node %s: %w", nodeID, err)
			}
			mu.Lock()
			entries[nodeID] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
