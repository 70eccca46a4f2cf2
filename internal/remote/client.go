// Package remote submits questionnaire documents to a remote questionnaire
// repository over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxResponseSize caps how much of a repository response is read.
const maxResponseSize = 10 << 20

// Client posts questionnaires to a fixed endpoint. It is safe for
// concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds every submission round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Response is a successful repository answer.
type Response struct {
	SubmissionID string
	StatusCode   int
	Location     string // Location header of a created resource, if any
	Body         string // Response body re-indented for display
}

// Submit parses a carried-forward serialized questionnaire and posts it.
//
// Errors: core.ErrNoPayload for blank input, core.ErrInvalidPayload when the
// input is not a questionnaire document, *core.RemoteStatusError for a
// non-success status, core.ErrTransport for connection failures and
// core.ErrInvalidResponse when a success body is not JSON.
func (c *Client) Submit(ctx context.Context, payload string) (*Response, error) {
	doc, err := core.ParseQuestionnaire(payload)
	if err != nil {
		return nil, err
	}
	return c.SubmitDocument(ctx, doc)
}

// SubmitDocument posts an already parsed questionnaire.
func (c *Client) SubmitDocument(ctx context.Context, doc *core.Questionnaire) (*Response, error) {
	submissionID := middleware.GetReqID(ctx)
	if submissionID == "" {
		submissionID = uuid.NewString()
	}
	logger := logging.WithFields(ctx,
		"submission_id", submissionID,
		"endpoint", c.endpoint,
	)

	body, err := doc.MarshalCompact()
	if err != nil {
		return nil, err
	}
	if pretty, err := doc.MarshalIndent(); err == nil {
		logger.Debug("uploading questionnaire", "payload", string(pretty))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", core.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/fhir+json, application/json")
	req.Header.Set("X-Request-ID", submissionID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("questionnaire submission failed", "error", err)
		return nil, fmt.Errorf("%w: %w", core.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", core.ErrTransport, err)
	}

	logger.Info("questionnaire submitted",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.RemoteStatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	pretty, err := indentResponse(raw)
	if err != nil {
		return nil, err
	}

	return &Response{
		SubmissionID: submissionID,
		StatusCode:   resp.StatusCode,
		Location:     resp.Header.Get("Location"),
		Body:         pretty,
	}, nil
}

// indentResponse re-indents a JSON body, keeping the server's key order.
// An empty body is accepted as-is.
func indentResponse(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	if !json.Valid(raw) {
		return "", core.ErrInvalidResponse
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidResponse, err)
	}
	return buf.String(), nil
}
