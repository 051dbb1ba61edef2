package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Client talks to the database server's HTTP API on behalf of the CLI.
type Client struct {
	baseURL    string
	httpClient *httpclient.HTTPClient
}

func NewClient(baseURL string, logger logging.Logger) (*Client, error) {
	httpClient, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPRetryConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

func (c *Client) Close() {
	c.httpClient.Close()
}

func (c *Client) DeployToken(ctx context.Context, request types.TokenDeployRequest) (types.DeploymentResult, error) {
	var result types.DeploymentResult
	err := c.post(ctx, "/api/tokens/deploy", request, &result)
	return result, err
}

func (c *Client) QuoteFees(ctx context.Context, hasMetadata bool) (map[string]string, error) {
	var breakdown map[string]string
	err := c.get(ctx, fmt.Sprintf("/api/fees/quote?hasMetadata=%t", hasMetadata), &breakdown)
	return breakdown, err
}

func (c *Client) CreatePayment(ctx context.Context, params types.CreateRecurringPaymentParams) (types.RecurringPayment, error) {
	var payment types.RecurringPayment
	err := c.post(ctx, "/api/payments", params, &payment)
	return payment, err
}

func (c *Client) ListPayments(ctx context.Context, status string) ([]types.RecurringPayment, error) {
	path := "/api/payments"
	if status != "" {
		path += "?status=" + status
	}
	var payments []types.RecurringPayment
	err := c.get(ctx, path, &payments)
	return payments, err
}

func (c *Client) TransitionPayment(ctx context.Context, id, action string) (types.RecurringPayment, error) {
	var payment types.RecurringPayment
	err := c.post(ctx, fmt.Sprintf("/api/payments/%s/%s", id, action), nil, &payment)
	return payment, err
}

func (c *Client) PaymentHistory(ctx context.Context, id string) ([]types.RecurringPaymentHistory, error) {
	var history []types.RecurringPaymentHistory
	err := c.get(ctx, fmt.Sprintf("/api/payments/%s/history", id), &history)
	return history, err
}

func (c *Client) WalletState(ctx context.Context) (types.WalletState, error) {
	var state types.WalletState
	err := c.get(ctx, "/api/wallet", &state)
	return state, err
}

func (c *Client) ListTokens(ctx context.Context) ([]types.TokenInfo, error) {
	var tokens []types.TokenInfo
	err := c.get(ctx, "/api/tokens", &tokens)
	return tokens, err
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}
	resp, err := c.httpClient.Post(ctx, c.baseURL+path, "application/json", &payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return json.NewDecoder(resp.Body).Decode(out)
}
