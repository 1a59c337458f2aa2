package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks to the timetable backend's series endpoints. It performs no
// automatic retries: transient failures are reported to the caller, which
// surfaces a user-driven retry instead.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	csrfToken     string
	sessionCookie string
	logger        *zap.Logger
}

// NewClient creates a client for the backend at baseURL. csrfToken is sent
// with every POST as csrfmiddlewaretoken; sessionCookie, when non-empty, is
// the value of the backend's sessionid cookie. Both are supplied by the
// caller; obtaining them is outside this subsystem.
func NewClient(baseURL, csrfToken, sessionCookie string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: defaultTimeout},
		csrfToken:     csrfToken,
		sessionCookie: sessionCookie,
		logger:        logger,
	}
}

// ListEvents fetches the event fragment for a series. With writable set the
// fragment includes editable field markup and the series' save path.
func (c *Client) ListEvents(ctx context.Context, seriesID string, writable bool) (*Fragment, error) {
	endpoint := fmt.Sprintf("%s/series/%s/list-events", c.baseURL, url.PathEscape(seriesID))
	if writable {
		endpoint += "?writeable=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.addSession(req)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for series %s: %w", seriesID, err)
	}

	frag, err := ParseFragment(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events for series %s: %w", seriesID, err)
	}

	c.logger.Debug("fetched series events",
		zap.String("series_id", seriesID),
		zap.Int("events", len(frag.Events)),
		zap.Bool("writable", writable))

	return frag, nil
}

// SaveEvents posts the combined event payload to a series' save endpoint and
// parses the fresh fragment the server responds with. savePath may be
// relative, as delivered in the fragment's data-save-path attribute.
func (c *Client) SaveEvents(ctx context.Context, savePath string, payload url.Values) (*Fragment, error) {
	endpoint := savePath
	if strings.HasPrefix(endpoint, "/") {
		endpoint = c.baseURL + endpoint
	}

	data := url.Values{}
	for key, vals := range payload {
		data[key] = vals
	}
	if c.csrfToken != "" {
		data.Set("csrfmiddlewaretoken", c.csrfToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.addSession(req)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to save events: %w", err)
	}

	frag, err := ParseFragment(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse save response: %w", err)
	}

	c.logger.Debug("saved series events",
		zap.String("save_path", savePath),
		zap.Int("events", len(frag.Events)))

	return frag, nil
}

func (c *Client) addSession(req *http.Request) {
	if c.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.sessionCookie})
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
