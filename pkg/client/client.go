// Package client talks to the form service: one call to register the user,
// one call to fetch the form keyed to their roll number. Every call is a
// single attempt with no retry; failures come back as errors for the caller
// to surface or log.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/formflow/formflow/pkg/schema"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response whose body carried a service message. The
// message is suitable for inline display.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("client: unexpected status %d", e.StatusCode)
}

// Client issues requests against one form service base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New constructs a Client for the given base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("client: base URL is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// CreateUser registers the user identity with the service. A non-2xx
// response is returned as an *APIError carrying the service's message so it
// can be shown inline; the caller may retry immediately.
func (c *Client) CreateUser(ctx context.Context, user schema.User) error {
	body, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("client: encode user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create-user", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: create user: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	return apiErr
}

// FetchForm retrieves the form for a roll number. Failures are generic: the
// caller logs them and shows the empty-form state rather than a message.
func (c *Client) FetchForm(ctx context.Context, rollNumber string) (schema.Form, error) {
	if strings.TrimSpace(rollNumber) == "" {
		return schema.Form{}, errors.New("client: roll number is required")
	}

	endpoint := c.baseURL + "/get-form?rollNumber=" + url.QueryEscape(rollNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch form request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch form: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return schema.Form{}, fmt.Errorf("client: fetch form: unexpected status %s", resp.Status)
	}

	var envelope struct {
		Message string      `json:"message"`
		Form    schema.Form `json:"form"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return schema.Form{}, fmt.Errorf("client: decode form: %w", err)
	}

	form := envelope.Form
	schema.Normalize(&form)
	if err := schema.Validate(form); err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch form: %w", err)
	}
	return form, nil
}
