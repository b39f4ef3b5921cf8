// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultEndpoint is the production homework status API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Custom errors specific to the status API client. The poll loop treats all
// of them as report-and-continue, but tests and logs need to tell them apart.
var (
	ErrRequestFailed = fmt.Errorf("API request failed")
	ErrBadStatusCode = fmt.Errorf("status code of API response is not OK")
	ErrInvalidJSON   = fmt.Errorf("API response contains invalid JSON")
)

// Client fetches homework statuses over HTTPS with an OAuth token.
// It implements the homework.Client interface.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a status API client. The timeout bounds the whole
// request; its expiry surfaces as ErrRequestFailed.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchStatuses requests all homework status changes after fromTimestamp
// (unix seconds, passed as the from_date query parameter).
func (c *Client) FetchStatuses(ctx context.Context, fromTimestamp int64) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	query := req.URL.Query()
	query.Set("from_date", strconv.FormatInt(fromTimestamp, 10))
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d, endpoint: %s", ErrBadStatusCode, resp.StatusCode, c.endpoint)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJSON, truncate(body, 256))
	}
	return json.RawMessage(body), nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
