// Package api is the typed HTTP client for the Rentify marketplace backend.
//
// One method per backend capability; every failure surfaces as a coded error
// from internal/errors. Calls are single best-effort requests: no retries and
// no client-side timeout, cancellation happens through the caller's context.
package api

import (
	"bytes"
	"context"
	json "github.com/go-json-experiment/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	errs "github.com/rentifyapp/rentify-client/internal/errors"
	"github.com/rentifyapp/rentify-client/internal/id"
)

const userAgent = "Rentify/1.0"

// Client talks to the Rentify backend.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a new backend client for the given base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds a request against the backend with the standard headers.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", id.RequestID())

	return req, nil
}

// doJSON executes a request with a JSON body and parses the response into out.
// out may be nil when the caller ignores the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any, fallback string, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errs.Network(fallback).WithCause(err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return errs.Network(fallback).WithCause(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, fallback, out)
}

// do executes the request and parses the response.
func (c *Client) do(req *http.Request, fallback string, out any) error {
	c.logger.Debug("api request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Network(fallback).WithCause(err)
	}

	return c.parse(resp, fallback, out)
}

// parse applies the uniform response policy.
//
// Any non-success status is an API error regardless of body content; a JSON
// body's "error" or "message" field is extracted for diagnostics when present.
// A success response with an empty body or a non-JSON content type yields the
// zero value of out rather than a parse failure, so empty-bodied success
// responses never look like errors.
func (c *Client) parse(resp *http.Response, fallback string, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Network(fallback).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := serverDetail(body)
		c.logger.Debug("api error",
			"status", resp.StatusCode,
			"detail", detail,
		)
		return errs.APIStatus(resp.StatusCode, fallback, detail)
	}

	if out == nil {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if len(bytes.TrimSpace(body)) == 0 || !strings.Contains(contentType, "application/json") {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Parse(fallback + ": invalid response format").WithCause(err)
	}
	return nil
}

// serverDetail pulls a human-readable message out of an error body, if any.
func serverDetail(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
