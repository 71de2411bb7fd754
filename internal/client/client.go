// Package client provides an HTTP client for the Fintrack API. It backs the
// transaction form's Submitter and the command-line tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fintrack/internal/models"
)

// Client communicates with the Fintrack API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new Fintrack API client. token is a bearer access token.
func New(baseURL, token string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// apiError is the server's error envelope.
type apiError struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

// CreateTransaction submits a new transaction record.
func (c *Client) CreateTransaction(ctx context.Context, input map[string]any) error {
	return c.send(ctx, http.MethodPost, "/api/v1/transactions", input, http.StatusCreated, nil)
}

// UpdateTransaction replaces an existing transaction's attributes.
func (c *Client) UpdateTransaction(ctx context.Context, id string, input map[string]any) error {
	return c.send(ctx, http.MethodPut, "/api/v1/transactions/"+id, input, http.StatusOK, nil)
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/transactions/"+id, nil, http.StatusOK, nil)
}

// FetchTransactions returns one page of transactions within the range.
func (c *Client) FetchTransactions(ctx context.Context, preset models.RangePreset, offset, limit int) ([]models.Transaction, error) {
	query := url.Values{}
	if preset != "" {
		query.Set("range", string(preset))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/transactions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.send(ctx, http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Transactions, nil
}

// send issues one request and decodes the response into out when non-nil.
// Non-expected statuses are converted to errors carrying the server's
// message when the error envelope can be read.
func (c *Client) send(ctx context.Context, method, path string, body any, expectStatus int, out any) error {
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != expectStatus {
		var envelope apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, envelope.Error.Message, envelope.Error.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
