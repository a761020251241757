package mapdata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client fetches level documents from a map server that serves one document
// per area at {BaseURL}/{area}.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for the map server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch downloads and decodes the level document for area.
func (c *Client) Fetch(ctx context.Context, area AreaID) (*LevelData, error) {
	url := c.BaseURL + "/" + strconv.Itoa(int(area))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch area %d: %w", area, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch area %d: unexpected status %s", area, resp.Status)
	}

	level, err := Read(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch area %d: %w", area, err)
	}
	if level.Area == 0 {
		level.Area = area
	}
	return level, nil
}
