package httpapi

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

	"auction-storefront/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID carries a per-request correlation id
const HeaderRequestID = "X-Request-ID"

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request is sent anonymously.
type TokenSource interface {
	AuthToken(ctx context.Context) (string, error)
}

// Client is the single choke point for calls to the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
}

type ClientParams struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     zerolog.Logger
}

// NewClient creates a new backend client. A zero timeout leaves requests
// bounded only by their context.
func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: params.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     params.Tokens,
		logger:     params.Logger.With().Str("component", "http_client").Logger(),
	}
}

// BaseURL returns the base URL requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one backend call. Body may be nil, raw JSON bytes, or any
// value encodable as JSON. Public requests never carry the bearer token.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	Header http.Header
	Public bool
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string) (*Payload, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Payload, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Payload, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*Payload, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Do sends the request and returns the payload unchanged. Non-2xx responses
// are returned as *APIError.
func (c *Client) Do(ctx context.Context, r Request) (*Payload, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.resolve(r.Path, r.Query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// caller headers replace the defaults
	for key, values := range r.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if !r.Public {
		c.authorize(ctx, req)
	}
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req *http.Request) (*Payload, error) {
	requestID := uuid.New().String()
	req.Header.Set(HeaderRequestID, requestID)

	logger := c.logger.With().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("Backend request failed")
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	payload := &Payload{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Raw:         raw,
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(payload)
		logger.Warn().
			Int("status", apiErr.Status).
			Str("category", string(apiErr.Category)).
			Str("backend_message", apiErr.Raw).
			Msg("Backend returned an error")
		return nil, apiErr
	}

	return payload, nil
}

// authorize attaches the bearer token when one is stored
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}

	token, err := c.tokens.AuthToken(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read auth token, sending request without it")
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) resolve(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// handleRequestError converts transport failures to categorized errors
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return shared.ErrRequestCanceled
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return shared.ErrRequestTimedOut
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return shared.ErrRequestTimedOut
	}
	return fmt.Errorf("%w at %s: %v", shared.ErrBackendOffline, c.baseURL, err)
}

func encodeBody(body interface{}) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}
