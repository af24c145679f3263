package cronpost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

const defaultTimeout = 30 * time.Second

// Client is the HTTP client for the CronPost REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Entry
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger; the default discards nothing but logs at
// the standard logrus level.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a CronPost API client authenticated with a static
// bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: logrus.WithField("component", "cronpost"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FullState fetches the single source of truth for the check-in flow.
func (c *Client) FullState(ctx context.Context) (*FullStateResponse, error) {
	var state FullStateResponse
	if err := c.do(ctx, http.MethodGet, "/full-state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// CreateIM creates the initial message with its schedule.
func (c *Client) CreateIM(ctx context.Context, req *IMRequest) error {
	return c.do(ctx, http.MethodPost, "/im", req, nil)
}

// UpdateIM updates the initial message. The sending method is immutable
// here; use ChangeIMMethod.
func (c *Client) UpdateIM(ctx context.Context, req *IMRequest) error {
	return c.do(ctx, http.MethodPut, "/im", req, nil)
}

// ActivateIM starts a fresh check-in loop.
func (c *Client) ActivateIM(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/im/activate", nil, nil)
}

// StopIM halts the loop and clears any pending countdown.
func (c *Client) StopIM(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/im/stop", nil, nil)
}

// DeleteIM removes the initial message. Only valid while inactive.
func (c *Client) DeleteIM(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/im", nil, nil)
}

// CheckIn confirms the user is present. pin is included only when the
// user's preference requires it.
func (c *Client) CheckIn(ctx context.Context, pin string) error {
	body := map[string]string{}
	if pin != "" {
		body["pin_code"] = pin
	}
	return c.do(ctx, http.MethodPost, "/check-in", body, nil)
}

// ChangeIMMethod is the dedicated method-reassignment call. The message
// content is not resubmitted here; the caller re-confirms it in compose
// afterwards.
func (c *Client) ChangeIMMethod(ctx context.Context, method domain.SendingMethod) error {
	body := map[string]string{"sending_method": string(method)}
	return c.do(ctx, http.MethodPut, "/im/method", body, nil)
}

// CreateFM creates a follow-up message and returns its id.
func (c *Client) CreateFM(ctx context.Context, req *FMRequest) (string, error) {
	var created CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/fm", req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateFM updates a follow-up message.
func (c *Client) UpdateFM(ctx context.Context, id string, req *FMRequest) error {
	return c.do(ctx, http.MethodPut, "/fm/"+url.PathEscape(id), req, nil)
}

// DeleteFM removes a follow-up message.
func (c *Client) DeleteFM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/fm/"+url.PathEscape(id), nil, nil)
}

// CancelFM cancels a pending follow-up message.
func (c *Client) CancelFM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/fm/"+url.PathEscape(id)+"/cancel", nil, nil)
}

// ListSCM fetches all scheduled cron messages.
func (c *Client) ListSCM(ctx context.Context) ([]SCMEntryResponse, error) {
	var result struct {
		Entries []SCMEntryResponse `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/scm", nil, &result); err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// CreateSCM creates a scheduled cron message and returns its id.
func (c *Client) CreateSCM(ctx context.Context, req *SCMRequest) (string, error) {
	var created CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/scm", req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateSCM updates a scheduled cron message.
func (c *Client) UpdateSCM(ctx context.Context, id string, req *SCMRequest) error {
	return c.do(ctx, http.MethodPut, "/scm/"+url.PathEscape(id), req, nil)
}

// DeleteSCM removes a scheduled cron message.
func (c *Client) DeleteSCM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/scm/"+url.PathEscape(id), nil, nil)
}

// PauseSCM pauses an active cron message.
func (c *Client) PauseSCM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/scm/"+url.PathEscape(id)+"/pause", nil, nil)
}

// ResumeSCM resumes a paused cron message.
func (c *Client) ResumeSCM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/scm/"+url.PathEscape(id)+"/resume", nil, nil)
}

// CancelSCM cancels a cron message.
func (c *Client) CancelSCM(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/scm/"+url.PathEscape(id)+"/cancel", nil, nil)
}

// do performs one JSON round trip. Non-2xx responses decode into a
// typed *domain.APIError carrying the server error code so the
// translation layer can localize it.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Warn("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(resp.Body)

	apiErr := &domain.APIError{Status: resp.StatusCode}
	var envelope errorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.ErrorCode
		apiErr.Message = envelope.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = string(raw)
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
		"code":   apiErr.Code,
	}).Warn("api error")
	return apiErr
}
