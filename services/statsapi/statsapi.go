// Package statsapi notifies the facility's stats service when a
// controller session opens. Delivery is best-effort; failures are
// logged by the caller, not retried.
package statsapi

import (
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ReportSession credits a newly opened controller session to the cid.
func (c *Client) ReportSession(cid int) error {
	url := fmt.Sprintf("%s/stats/fifty/%d", c.baseURL, cid)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("stats api returned status %d", resp.StatusCode)
	}
	return nil
}
