package devicecloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the attendance-device vendor cloud. Authentication uses the
// OAuth2 client-credentials grant; the underlying http.Client refreshes the
// token transparently.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL, clientID, clientSecret, tokenURL string) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{
		baseURL: baseURL,
		http:    cfg.Client(context.Background()),
	}
}

// PunchLog is one raw punch row as the vendor cloud reports it.
type PunchLog struct {
	DeviceUserID string `json:"device_user_id"`
	Timestamp    string `json:"timestamp"`
	Function     string `json:"function"`
}

type punchLogPage struct {
	Logs []PunchLog `json:"logs"`
}

// FetchPunchLogs pulls the punch logs recorded by one device since the given
// instant. Timestamps in the response stay as strings; the ingest path decides
// what is malformed.
func (c *Client) FetchPunchLogs(ctx context.Context, serial string, since time.Time) ([]PunchLog, error) {
	endpoint := fmt.Sprintf("%s/v1/devices/%s/punch-logs?since=%s",
		c.baseURL, url.PathEscape(serial), url.QueryEscape(since.UTC().Format(time.RFC3339)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch punch logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device cloud returned status %d for device %s", resp.StatusCode, serial)
	}

	var page punchLogPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode punch logs: %w", err)
	}
	return page.Logs, nil
}
