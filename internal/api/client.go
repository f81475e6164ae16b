// Package api is the HTTP client for the storefront backend. Every wrapper
// goes through one authenticated do() path: bearer token attached when held,
// and a single refresh-and-replay on 401 backed by the session manager's
// single-flight gate. Nothing else is ever retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/creamcroissant/shopfront/internal/cache"
	"github.com/creamcroissant/shopfront/internal/session"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Store      session.Store
	Logger     *slog.Logger
	HTTPClient *http.Client
	CacheTTL   time.Duration
}

// Client talks to the storefront backend.
type Client struct {
	baseURL  string
	http     *http.Client
	log      *slog.Logger
	session  *session.Manager
	catalog  cache.Store
	sanitize *bluemonday.Policy
}

// New builds a client and its session manager from persisted credentials.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	c := &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		log:      log,
		catalog:  cache.NewStore(cache.Options{DefaultTTL: opts.CacheTTL, Prefix: "catalog"}),
		sanitize: bluemonday.StrictPolicy(),
	}

	mgr, err := session.NewManager(ctx, session.Options{
		Store:   opts.Store,
		Refresh: c.exchangeRefreshToken,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	c.session = mgr
	return c, nil
}

// Session exposes the session manager to the command layer.
func (c *Client) Session() *session.Manager {
	return c.session
}

// exchangeRefreshToken implements session.RefreshFunc. It is the only call
// that sends the refresh token, and it never carries a bearer header.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (session.Credentials, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return session.Credentials{}, fmt.Errorf("marshal refresh request: %w", err)
	}
	requestID := uuid.NewString()
	status, body, err := c.send(ctx, http.MethodPost, "/auth/refresh-token", payload, "", requestID, nil)
	if err != nil {
		return session.Credentials{}, err
	}
	var pair TokenPair
	if err := decode(status, body, requestID, &pair); err != nil {
		return session.Credentials{}, err
	}
	return session.Credentials{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// do performs one authenticated request. A 401 on a request that carried a
// token triggers exactly one refresh-and-replay; if the replay 401s again,
// that error propagates without another refresh cycle.
func (c *Client) do(ctx context.Context, method, path string, body, result any, headers http.Header) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	requestID := uuid.NewString()
	token := c.session.AccessToken()

	status, respBody, err := c.send(ctx, method, path, payload, token, requestID, headers)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && token != "" {
		newToken, rerr := c.session.RefreshAccessToken(ctx)
		if rerr != nil {
			return rerr
		}
		c.log.Debug("replaying request after token refresh", "method", method, "path", path, "request_id", requestID)
		status, respBody, err = c.send(ctx, method, path, payload, newToken, requestID, headers)
		if err != nil {
			return err
		}
	}

	return decode(status, respBody, requestID, result)
}

// send issues a single HTTP attempt and returns the raw status and body.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token, requestID string, headers http.Header) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// decode maps a settled response to either the result value or an *APIError
// carrying the backend's message verbatim.
func decode(status int, body []byte, requestID string, result any) error {
	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status, RequestID: requestID}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result, nil)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result, nil)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result, nil)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result, nil)
}
