package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facilityhub/maintenance-backend/pkg/config"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

const errorBodyReadLimit int64 = 4096

var errBaseURLRequired = errors.New("api base url is required")

// Client is the typed consumer of the maintenance API. The base URL always
// comes from the caller's configuration, never from a baked-in literal.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds an API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// FromConfig builds a client dialing the configured API base URL.
func FromConfig(cfg config.HTTPConfig, opts ...Option) (*Client, error) {
	return NewClient(cfg.BaseURL, opts...)
}

// Record mirrors the maintenance resource as served by the API.
type Record struct {
	ID             uint           `json:"id"`
	Equipment      string         `json:"equipment"`
	Description    string         `json:"description"`
	Requestor      string         `json:"requestor"`
	Responsible    string         `json:"responsible"`
	Priority       enums.Priority `json:"priority"`
	Status         enums.Status   `json:"status"`
	Location       *string        `json:"location"`
	Sector         *string        `json:"sector"`
	Department     *string        `json:"department"`
	Notes          *string        `json:"notes"`
	StartDate      *time.Time     `json:"startDate"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt"`
	CompletionDate *time.Time     `json:"completionDate"`
}

// CreateRequest is the payload for Create.
type CreateRequest struct {
	Equipment   string  `json:"equipment"`
	Description string  `json:"description"`
	Requestor   string  `json:"requestor"`
	Responsible string  `json:"responsible"`
	Priority    string  `json:"priority,omitempty"`
	Status      string  `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
	Sector      *string `json:"sector,omitempty"`
	Department  *string `json:"department,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
}

// UpdateRequest is the payload for Update. Only non-nil fields are applied.
type UpdateRequest struct {
	Equipment   *string `json:"equipment,omitempty"`
	Description *string `json:"description,omitempty"`
	Requestor   *string `json:"requestor,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
	Sector      *string `json:"sector,omitempty"`
	Department  *string `json:"department,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
}

// Stats mirrors the dashboard counters payload.
type Stats struct {
	OpenCount            int                   `json:"openCount"`
	HighPriorityCount    int                   `json:"highPriorityCount"`
	HighPriorityRequests []HighPriorityRequest `json:"highPriorityRequests"`
}

// HighPriorityRequest is the projection listed under Stats.
type HighPriorityRequest struct {
	ID        uint    `json:"id"`
	Equipment string  `json:"equipment"`
	Location  *string `json:"location"`
}

// FlowBucket is one day of the 30-day created/completed series.
type FlowBucket struct {
	Date       string `json:"date"`
	Criados    int    `json:"Criados"`
	Concluidos int    `json:"Concluídos"`
}

// List fetches every maintenance record, newest first.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/maintenance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a new maintenance record.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPost, "/maintenance", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, id uint) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/maintenance/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a record.
func (c *Client) Update(ctx context.Context, id uint, req UpdateRequest) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/maintenance/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a record permanently.
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/maintenance/%d", id), nil, nil)
}

// Stats fetches the dashboard counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Flow fetches the 30-day series ending at reference.
func (c *Client) Flow(ctx context.Context, reference time.Time) ([]FlowBucket, error) {
	path := "/dashboard/flow?reference=" + reference.Format("2006-01-02")
	var out []FlowBucket
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "maintenance api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	msg := strings.TrimSpace(string(raw))
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	code := pkgerrors.CodeDependency
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = pkgerrors.CodeValidation
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	}

	return pkgerrors.New(code, msg)
}
