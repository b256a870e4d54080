package snapd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapwatch/internal/config"
)

const userAgent = "snapwatch/0.1.0"

// Client talks to snapd over its Unix domain socket.
type Client struct {
	socketPath string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient constructs a client for the given socket path. A non-positive
// timeout disables the per-request deadline; the notices long-poll manages
// its own.
func NewClient(socketPath string, timeout time.Duration) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			dialer := net.Dialer{}
			return dialer.DialContext(ctx, "unix", socketPath)
		},
		DisableKeepAlives: false,
	}
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{Transport: transport},
		timeout:    timeout,
	}
}

// NewClientFromConfig constructs a client honouring the sandbox socket
// override.
func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.SnapdSocketPath(), time.Duration(cfg.Snapd.RequestTimeout)*time.Second)
}

// SocketPath returns the socket this client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetChange fetches a change with its task list.
func (c *Client) GetChange(ctx context.Context, id string) (*Change, error) {
	var change Change
	if err := c.get(ctx, "/v2/changes/"+url.PathEscape(id), nil, &change); err != nil {
		return nil, fmt.Errorf("get change %s: %w", id, err)
	}
	return &change, nil
}

// GetSnap fetches a single installed snap by name.
func (c *Client) GetSnap(ctx context.Context, name string) (*Snap, error) {
	var snap Snap
	if err := c.get(ctx, "/v2/snaps/"+url.PathEscape(name), nil, &snap); err != nil {
		return nil, fmt.Errorf("get snap %s: %w", name, err)
	}
	return &snap, nil
}

// RefreshInhibited lists the snaps whose refresh is currently withheld
// pending user consent.
func (c *Client) RefreshInhibited(ctx context.Context) ([]Snap, error) {
	query := url.Values{"select": []string{"refresh-inhibited"}}
	var snaps []Snap
	if err := c.get(ctx, "/v2/snaps", query, &snaps); err != nil {
		return nil, fmt.Errorf("list refresh-inhibited snaps: %w", err)
	}
	return snaps, nil
}

// Notices long-polls the notice stream. It returns the notices that occurred
// after the given cursor, blocking up to wait for one to arrive. An empty
// result with a nil error means the wait elapsed quietly.
func (c *Client) Notices(ctx context.Context, after time.Time, wait time.Duration) ([]Notice, error) {
	query := url.Values{
		"types": []string{strings.Join([]string{NoticeChangeUpdate, NoticeRefreshInhibit, NoticeSnapRunInhibit}, ",")},
	}
	if !after.IsZero() {
		query.Set("after", after.Format(time.RFC3339Nano))
	}
	if wait > 0 {
		query.Set("timeout", wait.String())
	}

	// The long-poll deadline must outlive the server-side wait.
	reqCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, wait+5*time.Second)
		defer cancel()
	}

	var notices []Notice
	if err := c.do(reqCtx, "/v2/notices", query, &notices); err != nil {
		return nil, fmt.Errorf("poll notices: %w", err)
	}
	return notices, nil
}

// get performs a request with the configured per-call timeout applied.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.do(ctx, path, query, result)
}

type responseEnvelope struct {
	Type       string          `json:"type"`
	StatusCode int             `json:"status-code"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result"`
}

type errorResult struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func (c *Client) do(ctx context.Context, path string, query url.Values, result any) error {
	endpoint := "http://localhost" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Unwrap url.Error so context cancellation stays detectable
		// with errors.Is upstream.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return urlErr.Err
		}
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}

	if envelope.Type == "error" || resp.StatusCode >= 400 {
		var failure errorResult
		if err := json.Unmarshal(envelope.Result, &failure); err == nil && failure.Message != "" {
			return fmt.Errorf("snapd: %s", failure.Message)
		}
		return fmt.Errorf("snapd returned status %d", resp.StatusCode)
	}

	if result == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
