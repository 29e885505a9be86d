package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lumen/internal/shared/logger"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 1 << 20 // 1MB
)

// Config carries the Mayar client settings. All values come from explicit
// configuration; the client never reads the environment.
type Config struct {
	APIBase string
	APIKey  string
	Timeout time.Duration
}

// MayarClient talks to the Mayar headless invoice API.
type MayarClient struct {
	apiBase    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

// NewMayarClient builds a client. An empty API key is a configuration error
// caught here rather than on the first request.
func NewMayarClient(cfg Config, log logger.Interface) (*MayarClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mayar API key is required")
	}
	if cfg.APIBase == "" {
		return nil, fmt.Errorf("mayar API base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MayarClient{
		apiBase: cfg.APIBase,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("mayar"),
	}, nil
}

type createInvoiceRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	RedirectURL string            `json:"redirect_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type createInvoiceResponse struct {
	ID         string `json:"id"`
	PaymentURL string `json:"payment_url"`
}

// CreateInvoice creates a hosted invoice and returns its id and payment URL.
func (c *MayarClient) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(createInvoiceRequest{
		Amount:      req.AmountInCents,
		Currency:    req.Currency,
		RedirectURL: req.RedirectURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/invoice/create", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warnw("invoice create request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var decoded createInvoiceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode invoice response: %w", err)
	}
	if decoded.ID == "" || decoded.PaymentURL == "" {
		return nil, fmt.Errorf("%w: incomplete invoice response", ErrGatewayRejected)
	}

	c.logger.Debugw("invoice created", "invoice_id", decoded.ID)
	return &Invoice{
		ID:         decoded.ID,
		PaymentURL: decoded.PaymentURL,
	}, nil
}

type transactionResponse struct {
	Data struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// VerifyTransaction looks up a single transaction by invoice id. An unpaid
// transaction is a normal result, not an error.
func (c *MayarClient) VerifyTransaction(ctx context.Context, invoiceID string) (*VerificationResult, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("invoice ID is required")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/transactions/"+invoiceID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warnw("transaction lookup request failed", "invoice_id", invoiceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, invoiceID)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var decoded transactionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode transaction response: %w", err)
	}

	return &VerificationResult{
		ID:            decoded.Data.ID,
		Status:        decoded.Data.Status,
		AmountInCents: decoded.Data.Amount,
		Currency:      decoded.Data.Currency,
	}, nil
}

func (c *MayarClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
