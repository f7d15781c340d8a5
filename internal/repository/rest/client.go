// Package rest talks to the upstream HR API. Every response is decoded into
// wire structs and normalised into domain types before leaving the package.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/gateway"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"golang.org/x/oauth2"
)

const maxErrorBody = 64 << 10

// Client is the shared upstream HTTP client.
type Client struct {
	baseURL string
	timeout time.Duration
	base    *http.Client
}

// NewClient targets baseURL (e.g. https://host/api). A zero timeout means 15s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		base:    &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
	}
}

// httpClient returns a client that injects the session's upstream bearer
// token when ctx carries a session.
func (c *Client) httpClient(ctx context.Context) *http.Client {
	s, ok := session.FromContext(ctx)
	if !ok || s.UpstreamToken == "" {
		return c.base
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: s.UpstreamToken,
		TokenType:   "Bearer",
	}))
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return &gateway.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &gateway.NetworkError{Op: op, Err: fmt.Errorf("%w: %v", gateway.ErrBadResponse, err)}
	}
	return nil
}

// statusError maps a non-2xx answer onto the gateway taxonomy.
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := errorMessage(raw)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode >= 500:
		return &gateway.NetworkError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, msg)}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", op, gateway.ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w: %s", op, gateway.ErrNotFound, msg)
	default:
		return &gateway.RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// errorMessage pulls "error" or "message" out of a JSON body, else returns
// the trimmed text.
func errorMessage(raw []byte) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if s, ok := body.Error.(string); ok && s != "" {
			return s
		}
		if body.Message != "" {
			return body.Message
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func badResponse(op, detail string) error {
	return &gateway.NetworkError{Op: op, Err: fmt.Errorf("%w: %s", gateway.ErrBadResponse, detail)}
}
