package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transit-dashboard/model"
	"transit-dashboard/screen"
	"transit-dashboard/utils"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// StatusError is a non-2xx answer from the API
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.Code)
	}
	return fmt.Sprintf("api returned %d: %s", e.Code, e.Message)
}

// Client talks to the dashboard API
type Client struct {
	baseURL    string
	token      string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithToken authenticates with a bearer token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithAPIKey authenticates with the admin API key
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := utils.ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Admin-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err != nil {
		return &StatusError{Code: resp.StatusCode}
	}
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}

// DashboardSnapshot fetches the Dashboard screen data
func (c *Client) DashboardSnapshot(ctx context.Context) (*model.DashboardSnapshot, error) {
	var snap model.DashboardSnapshot
	if err := c.get(ctx, "/api/v1/snapshots/"+screen.ScreenDashboard, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// AdvancedSnapshot fetches the AdvancedAnalytics screen data
func (c *Client) AdvancedSnapshot(ctx context.Context) (*model.AdvancedAnalyticsSnapshot, error) {
	var snap model.AdvancedAnalyticsSnapshot
	if err := c.get(ctx, "/api/v1/snapshots/"+screen.ScreenAdvanced, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Screen fetches a view rendered by the server
func (c *Client) Screen(ctx context.Context, name string, section screen.Section) (*screen.View, error) {
	var view screen.View
	query := url.Values{}
	if section != "" {
		query.Set("section", string(section))
	}
	if err := c.get(ctx, "/api/v1/screens/"+url.PathEscape(name), query, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// DashboardSource adapts the client to a dashboard loader
func (c *Client) DashboardSource() screen.Source[model.DashboardSnapshot] {
	return screen.SourceFunc[model.DashboardSnapshot](c.DashboardSnapshot)
}

// AdvancedSource adapts the client to an advanced analytics loader
func (c *Client) AdvancedSource() screen.Source[model.AdvancedAnalyticsSnapshot] {
	return screen.SourceFunc[model.AdvancedAnalyticsSnapshot](c.AdvancedSnapshot)
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden)
}
