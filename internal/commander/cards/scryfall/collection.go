package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ramonehamilton/edh-power/internal/commander/cards"
)

// MaxBatchSize is the maximum number of cards per batch request (Scryfall limit is 75).
const MaxBatchSize = 75

// CardIdentifier represents a card identifier for the /cards/collection endpoint.
type CardIdentifier struct {
	ID   string `json:"id,omitempty"`   // Scryfall ID
	Name string `json:"name,omitempty"` // Card name
}

// CollectionRequest is the request body for /cards/collection.
type CollectionRequest struct {
	Identifiers []CardIdentifier `json:"identifiers"`
}

// CollectionResponse is the response from /cards/collection.
type CollectionResponse struct {
	Object   string           `json:"object"`
	NotFound []CardIdentifier `json:"not_found"`
	Data     []Card           `json:"data"`
}

// FetchCollection looks up one batch of cards by exact name. Names Scryfall
// does not recognize are returned in notFound. It does not split or retry:
// callers own batching and pacing.
func (c *Client) FetchCollection(ctx context.Context, names []string) ([]Card, []string, error) {
	if len(names) == 0 {
		return []Card{}, nil, nil
	}
	if len(names) > MaxBatchSize {
		return nil, nil, fmt.Errorf("batch of %d names exceeds the %d card limit", len(names), MaxBatchSize)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter error: %w", err)
	}

	identifiers := make([]CardIdentifier, len(names))
	for i, name := range names {
		identifiers[i] = CardIdentifier{Name: name}
	}

	resp, err := c.doCollectionRequest(ctx, identifiers)
	if err != nil {
		return nil, nil, err
	}

	notFound := make([]string, 0, len(resp.NotFound))
	for _, id := range resp.NotFound {
		if id.Name != "" {
			notFound = append(notFound, id.Name)
		}
	}

	return resp.Data, notFound, nil
}

// FetchBatch resolves one batch of names into analyzer cards.
func (c *Client) FetchBatch(ctx context.Context, names []string) ([]cards.Card, error) {
	found, _, err := c.FetchCollection(ctx, names)
	if err != nil {
		return nil, err
	}
	return ToCards(found), nil
}

func (c *Client) doCollectionRequest(ctx context.Context, identifiers []CardIdentifier) (*CollectionResponse, error) {
	jsonBody, err := json.Marshal(CollectionRequest{Identifiers: identifiers})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/cards/collection"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards from Scryfall: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &NotFoundError{URL: url}
	default:
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Details != "" || apiErr.Code != "") {
			if apiErr.Status == 0 {
				apiErr.Status = resp.StatusCode
			}
			return nil, &apiErr
		}
		return nil, fmt.Errorf("scryfall API returned status %d: %s", resp.StatusCode, string(body))
	}

	var collectionResp CollectionResponse
	if err := json.Unmarshal(body, &collectionResp); err != nil {
		return nil, fmt.Errorf("failed to parse Scryfall response: %w", err)
	}

	return &collectionResp, nil
}
