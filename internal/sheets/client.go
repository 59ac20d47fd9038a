// Package sheets provides a client for the spreadsheet store that serves as
// the system of record for inquiries and pricing configuration. The store is
// an external collaborator accessed through its tabular values API; it is not
// redesigned here.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"agency_backend/platform/config"

	"golang.org/x/time/rate"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultBaseURL  = "https://sheets.googleapis.com/v4/spreadsheets"

	// Sheets API quota is 60 requests per minute per user; stay under it.
	requestsPerSecond = 0.9

	tokenExpirySlack = time.Minute
)

// Client talks to the spreadsheet values API. Access tokens are obtained via
// the OAuth refresh-token flow and cached until shortly before expiry. All
// outbound calls pass a client-side rate limiter.
type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	spreadsheetID string
	clientID      string
	clientSecret  string
	refreshToken  string
	tokenURL      string
	baseURL       string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a sheets client from configuration.
func NewClient(cfg config.SheetsConfig) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(requestsPerSecond), 3),
		spreadsheetID: cfg.GetSheetsSpreadsheetID(),
		clientID:      cfg.GetSheetsClientID(),
		clientSecret:  cfg.GetSheetsClientSecret(),
		refreshToken:  cfg.GetSheetsRefreshToken(),
		tokenURL:      defaultTokenURL,
		baseURL:       defaultBaseURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a valid access token, refreshing it when the cached one is
// absent or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpirySlack)) {
		return c.accessToken, nil
	}

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"refresh_token": {c.refreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token exchange: status %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("token decode: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token exchange: empty access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type valueRange struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values"`
}

// ReadRange fetches the cell values of the given A1-notation range.
// Missing trailing cells are absent from the returned rows, matching the API.
func (c *Client) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(rng))

	var out valueRange
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return out.Values, nil
}

// Append appends a single row after the last row of the given range.
func (c *Client) Append(ctx context.Context, rng string, row []string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.baseURL, c.spreadsheetID, url.PathEscape(rng))

	body := valueRange{MajorDimension: "ROWS", Values: [][]string{row}}
	if err := c.do(ctx, http.MethodPost, endpoint, &body, nil); err != nil {
		return fmt.Errorf("append %s: %w", rng, err)
	}
	return nil
}

// Update overwrites the cell values of the given range.
func (c *Client) Update(ctx context.Context, rng string, values [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		c.baseURL, c.spreadsheetID, url.PathEscape(rng))

	body := valueRange{MajorDimension: "ROWS", Values: values}
	if err := c.do(ctx, http.MethodPut, endpoint, &body, nil); err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
