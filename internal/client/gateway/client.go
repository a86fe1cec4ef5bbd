// Package gateway implements the typed HTTP client for the hosted backend
// platform: account/session endpoints, document collections, and serverless
// function executions. All responses are parsed into explicit DTOs at this
// boundary; shape mismatches surface as *ParseError instead of being trusted
// downstream.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/logging"
)

// Config carries the deployment identifiers the gateway needs. Collection and
// function ids are deployment configuration, not part of the client's
// contract.
type Config struct {
	Endpoint  string
	ProjectID string

	DatabaseID            string
	MoviesCollectionID    string
	MetricsCollectionID   string
	PurchasesCollectionID string
	UsersCollectionID     string

	RequestTimeout time.Duration
}

// Client is the remote data gateway. It holds the session token for the
// lifetime of the signed-in user; the token is injected by the auth service,
// never read from ambient globals.
type Client struct {
	cfg  Config
	http *http.Client
	log  logging.Logger

	mu      sync.RWMutex
	session string
}

func New(cfg Config, log logging.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// SetSession installs the session token used on subsequent requests.
func (c *Client) SetSession(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = token
}

// ClearSession drops the session token.
func (c *Client) ClearSession() {
	c.SetSession("")
}

// Session returns the current session token, or "" when signed out.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// do performs one request against the platform. A non-2xx response is decoded
// as a platform error envelope and mapped onto the shared error taxonomy;
// transport failures wrap common.ErrUnavailable. When out is non-nil the
// response body is decoded into it, failing with *ParseError on mismatch.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	u := c.cfg.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-Id", c.cfg.ProjectID)
	if token := c.Session(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapFailure(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// platformError is the error envelope the platform returns on non-2xx
// responses.
type platformError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (c *Client) mapFailure(resp *http.Response) error {
	var pe platformError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &pe)
	if pe.Code == 0 {
		pe.Code = resp.StatusCode
	}

	switch pe.Code {
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		if pe.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, pe.Message)
		}
		return common.ErrUnauthorized
	default:
		return &PlatformError{Code: pe.Code, Type: pe.Type, Message: pe.Message}
	}
}
