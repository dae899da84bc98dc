// Package minutes provides an HTTP client for the minutes archive service.
package minutes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/archivedesk/minutes/internal/model"
	"github.com/archivedesk/minutes/internal/service"
)

// Client talks to a running minutes server. UserID is sent as the acting
// user on every request.
type Client struct {
	BaseURL    string
	UserID     string
	HTTPClient *http.Client
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		BaseURL: baseURL,
		UserID:  userID,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Request performs a JSON round trip and returns the raw data payload.
func (c *Client) Request(method, endpoint string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.UserID != "" {
		req.Header.Set("X-User-Id", c.UserID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, string(respBody))
	}
	if !env.Success {
		return nil, fmt.Errorf("server error (status %d): %s", resp.StatusCode, env.Error)
	}
	return env.Data, nil
}

func (c *Client) CreateMom(in service.CreateMomInput) (*model.Mom, error) {
	data, err := c.Request(http.MethodPost, "/v1/moms", in)
	if err != nil {
		return nil, err
	}
	var mom model.Mom
	if err := json.Unmarshal(data, &mom); err != nil {
		return nil, err
	}
	return &mom, nil
}

func (c *Client) GetMom(id string) (*model.MomWithCounters, error) {
	data, err := c.Request(http.MethodGet, "/v1/moms/"+id, nil)
	if err != nil {
		return nil, err
	}
	var mom model.MomWithCounters
	if err := json.Unmarshal(data, &mom); err != nil {
		return nil, err
	}
	return &mom, nil
}

func (c *Client) ListMoms(status, search string, limit, offset int) (*service.MomPage, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if search != "" {
		q.Set("q", search)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	data, err := c.Request(http.MethodGet, "/v1/moms?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var page service.MomPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CloseMom(id string) error {
	_, err := c.Request(http.MethodPost, "/v1/moms/"+id+"/close", nil)
	return err
}

func (c *Client) ReopenMom(id string) error {
	_, err := c.Request(http.MethodPost, "/v1/moms/"+id+"/reopen", nil)
	return err
}

func (c *Client) GetStats() (*model.MomStats, error) {
	data, err := c.Request(http.MethodGet, "/v1/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats model.MomStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
