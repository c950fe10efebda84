package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	loginPath       = "/auth/login/"
	maxBodyBytes    = 1 << 20
	maxSnippetBytes = 128
)

// HTTPClient talks to the remote authentication service over JSON/HTTP.
type HTTPClient struct {
	baseURL  string
	language string
	http     *http.Client
	log      zerolog.Logger
}

type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.http = c }
}

// WithLanguage sets the Accept-Language header sent with every request.
func WithLanguage(tag string) HTTPOption {
	return func(h *HTTPClient) { h.language = strings.TrimSpace(tag) }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l zerolog.Logger) HTTPOption {
	return func(h *HTTPClient) { h.log = l }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts the credentials once. It never retries.
func (h *HTTPClient) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	const op = "auth: login"

	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return LoginResponse{}, Generic(op, 0, fmt.Errorf("encode request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return LoginResponse{}, Generic(op, 0, fmt.Errorf("build request: %w", err))
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if h.language != "" {
		req.Header.Set("Accept-Language", h.language)
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		h.log.Warn().Err(err).Str("request_id", reqID).Dur("latency", time.Since(start)).Msg("login request failed")
		return LoginResponse{}, Generic(op, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	h.log.Debug().Str("request_id", reqID).Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Msg("login response")
	if err != nil {
		return LoginResponse{}, Generic(op, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var out LoginResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return LoginResponse{}, Generic(op, resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return LoginResponse{}, NotFound(op, resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest && credentialsRejected(body):
		return LoginResponse{}, NotFound(op, resp.StatusCode)
	default:
		return LoginResponse{}, Generic(op, resp.StatusCode, fmt.Errorf("unexpected status: %s", bodySnippet(body)))
	}
}

// bodySnippet trims a response body to a short prefix fit for error text.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxSnippetBytes {
		return s
	}
	return strings.ToValidUTF8(s[:maxSnippetBytes], "") + "..."
}

// credentialsRejected reports whether a 400 body is the service's
// "no account matches these credentials" answer rather than a field error.
func credentialsRejected(body []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	raw, ok := fields["non_field_errors"]
	if !ok {
		return false
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return false
	}
	return len(msgs) > 0
}
