package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/infrastructure/config"
)

// maxResponseSize limits response bodies to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Client talks to the upstream CRM API. Responses are consumed as opaque
// JSON; beyond optional-field defaults no schema validation is performed.
// The client never retries: recovery is always user-initiated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a CRM API client
func NewClient(cfg config.CRMConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// errorEnvelope is the recognized shape of upstream error bodies. Anything
// that does not decode into it is surfaced as the raw body.
type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	// Some endpoints return a flat message instead
	Message string `json:"message"`
}

// doJSON performs a request and decodes a JSON response into out. A bearer
// token is attached when non-empty. Failures are classified per the
// taxonomy in errors.go.
func (c *Client) doJSON(ctx context.Context, method, path, bearer string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classifyError builds an APIError, extracting the structured shape when
// recognized
func (c *Client) classifyError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		RawBody:    string(raw),
	}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error.Message != "" || env.Error.Code != "" {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Fields = env.Error.Fields
		} else if env.Message != "" {
			apiErr.Message = env.Message
		}
	}

	c.logger.Debug("crm api rejected request",
		zap.Int("status", status),
		zap.String("code", apiErr.Code),
	)
	return apiErr
}
