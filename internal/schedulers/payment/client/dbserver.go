package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	httpclient "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// DBServerClient talks to the database server's payment API. All scheduling
// decisions stay in the scheduler; this client only moves records.
type DBServerClient struct {
	baseURL    string
	httpClient *httpclient.HTTPClient
	logger     logging.Logger
}

func NewDBServerClient(logger logging.Logger, baseURL string) (*DBServerClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("DBServerURL is required")
	}

	client, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPRetryConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %v", err)
	}

	return &DBServerClient{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: client,
	}, nil
}

// SchedulablePayments fetches every payment in active or due status.
func (c *DBServerClient) SchedulablePayments(ctx context.Context) ([]types.RecurringPayment, error) {
	url := fmt.Sprintf("%s/api/payments/schedulable", c.baseURL)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedulable payments: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var payments []types.RecurringPayment
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %v", err)
	}

	c.logger.Debugf("Fetched %d schedulable payments", len(payments))
	return payments, nil
}

// Payments fetches every payment regardless of status.
func (c *DBServerClient) Payments(ctx context.Context) ([]types.RecurringPayment, error) {
	url := fmt.Sprintf("%s/api/payments", c.baseURL)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var payments []types.RecurringPayment
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %v", err)
	}
	return payments, nil
}

// Payment fetches the current stored state of one payment.
func (c *DBServerClient) Payment(ctx context.Context, paymentID string) (types.RecurringPayment, error) {
	url := fmt.Sprintf("%s/api/payments/%s", c.baseURL, paymentID)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return types.RecurringPayment{}, fmt.Errorf("failed to fetch payment %s: %v", paymentID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.RecurringPayment{}, fmt.Errorf("failed to read response body: %v", err)
	}

	var payment types.RecurringPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return types.RecurringPayment{}, fmt.Errorf("failed to unmarshal response body: %v", err)
	}
	return payment, nil
}

// UpdatePayment overwrites the scheduler-owned fields of one payment.
func (c *DBServerClient) UpdatePayment(ctx context.Context, payment types.RecurringPayment) error {
	url := fmt.Sprintf("%s/api/payments/%s", c.baseURL, payment.ID)

	payload, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment %s: %v", payment.ID, err)
	}

	resp, err := c.httpClient.Put(ctx, url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %v", payment.ID, err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("Updated payment %s (status %s, next %d)", payment.ID, payment.Status, payment.NextPaymentTime)
	return nil
}

// AppendHistory records one execution attempt. The log is append-only; the
// server rejects anything but inserts.
func (c *DBServerClient) AppendHistory(ctx context.Context, entry types.RecurringPaymentHistory) error {
	url := fmt.Sprintf("%s/api/payments/%s/history", c.baseURL, entry.PaymentID)

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %v", err)
	}

	resp, err := c.httpClient.Post(ctx, url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to append history for payment %s: %v", entry.PaymentID, err)
	}
	defer resp.Body.Close()

	return nil
}

// PaymentHistory fetches the full execution log for one payment, oldest
// first. Used to rebuild counters on startup.
func (c *DBServerClient) PaymentHistory(ctx context.Context, paymentID string) ([]types.RecurringPaymentHistory, error) {
	url := fmt.Sprintf("%s/api/payments/%s/history", c.baseURL, paymentID)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for payment %s: %v", paymentID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	var history []types.RecurringPaymentHistory
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %v", err)
	}
	return history, nil
}

// HealthCheck verifies the database server is reachable.
func (c *DBServerClient) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("database server health check failed: %v", err)
	}
	defer resp.Body.Close()
	return nil
}

func (c *DBServerClient) Close() {
	c.httpClient.Close()
}
