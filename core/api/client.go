package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultPageLimit is the page size used for offset-paginated listings.
const DefaultPageLimit = 100

// DefaultChunkSize is the number of ids resolved per batch lookup call.
const DefaultChunkSize = 25

// Client is a long-lived remote API client. It owns the HTTP session,
// authentication headers and the rate-limit retry policy; one instance is
// constructed at process start and shared by every operation.
type Client struct {
	httpc     *http.Client
	baseURL   string
	token     string
	userAgent string
	log       *zap.Logger
	inv       *Invoker

	// selfID memoizes the invoking account id. Calls are sequential by
	// design, so no locking is needed.
	selfID string
}

// NewClient creates a client from the configuration.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		httpc:     &http.Client{Transport: transport},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		log:       log,
		inv:       NewInvoker(log),
	}, nil
}

// Invoker exposes the retry policy so drivers can reuse its pacing helpers.
func (c *Client) Invoker() *Invoker {
	return c.inv
}

// params is a convenience alias for query parameters. Slice values are
// joined with commas; the server side expects comma separated lists.
type params map[string]any

func (c *Client) buildURL(path string, p params) string {
	q := url.Values{}
	// Bypass the Angular service worker cache on every request.
	q.Set("ngsw-bypass", "true")
	for k, v := range p {
		switch val := v.(type) {
		case []string:
			q.Set(k, strings.Join(val, ","))
		case string:
			q.Set(k, val)
		default:
			q.Set(k, fmt.Sprint(val))
		}
	}
	return c.baseURL + path + "?" + q.Encode()
}

// getJSON performs a GET through the invoker and decodes the response
// envelope into out.
func (c *Client) getJSON(ctx context.Context, path string, p params, out any) error {
	return c.inv.Invoke(ctx, "GET "+path, func() error {
		return c.do(ctx, http.MethodGet, path, p, nil, out)
	})
}

// postJSON performs a mutating POST through the invoker, including the
// post-success jitter sleep.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	return c.inv.InvokeMutation(ctx, "POST "+path, func() error {
		return c.do(ctx, http.MethodPost, path, nil, body, out)
	})
}

func (c *Client) do(ctx context.Context, method, path string, p params, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, p), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://fansly.com/")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Debug("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{
			Code:   resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}

	// Every payload is wrapped in a {"response": ...} envelope.
	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", method, path, err)
	}
	if len(envelope.Response) == 0 || string(envelope.Response) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Response, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
