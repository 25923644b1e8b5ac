package apiclient

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

	"golang.org/x/oauth2"
)

// ErrSessionExpired is returned for any response whose body carries the
// server's credential-rejection message, regardless of endpoint. Callers log
// out and re-authenticate; detection lives here so no view has to duplicate
// the string match.
var ErrSessionExpired = errors.New("session expired")

// sessionExpiredMarker is the exact phrase the server embeds when a bearer
// token no longer validates. It can arrive with a 200 status.
const sessionExpiredMarker = "Could not validate credentials"

// ConflictError is returned by dependency-checked deletes. AffectedLogs
// holds the JSON-encoded dependent-record strings the server reports.
type ConflictError struct {
	AffectedLogs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("delete blocked by %d dependent records", len(e.AffectedLogs))
}

// Client wraps the back-office REST API. All persisted state lives behind
// this API; the client only shuttles JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an unauthenticated client (only the token endpoint works
// without a bearer token).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithToken creates a client whose requests carry the bearer token.
// The authorized transport comes from a static oauth2 token source so the
// header is applied uniformly.
func NewClientWithToken(ctx context.Context, baseURL string, timeout time.Duration, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = timeout
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// get issues a GET and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

// getList issues a GET expecting a JSON array. A non-array body (typically a
// backend error object) decodes to an empty list rather than failing, which
// is how the listing views treat it.
func (c *Client) getList(ctx context.Context, path string, query url.Values, out any) error {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	return nil
}

// patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// delete issues a DELETE; conflict responses surface as *ConflictError.
func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, nil)
}

// do executes the request, sniffs for the session-expired marker, maps
// dependency conflicts, and decodes the body into out when provided.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// The expiry marker can arrive inside a 200 payload, so check before
	// the status code.
	if bytes.Contains(body, []byte(sessionExpiredMarker)) {
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if conflict := parseConflict(body); conflict != nil {
			return conflict
		}
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, summarizeBody(body))
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// parseConflict extracts the affected_logs list from a dependency-checked
// delete failure, if present.
func parseConflict(body []byte) *ConflictError {
	var payload struct {
		AffectedLogs []string `json:"affected_logs"`
		Detail       struct {
			AffectedLogs []string `json:"affected_logs"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	logs := payload.AffectedLogs
	if len(logs) == 0 {
		logs = payload.Detail.AffectedLogs
	}
	if len(logs) == 0 {
		return nil
	}
	return &ConflictError{AffectedLogs: logs}
}

func summarizeBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
