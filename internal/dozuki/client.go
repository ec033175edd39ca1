// Package dozuki is a minimal client for the Dozuki REST API: token
// authentication, fetching a single guide, and paging the site's guide
// list.
package dozuki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to one Dozuki site. Token may be empty until Login (or
// SetToken) is called; only Authenticate works without it.
type Client struct {
	baseURL    string
	appID      string
	token      string
	httpClient *http.Client
}

func New(baseURL, appID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SetToken installs a previously obtained auth token.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current auth token, empty if not authenticated.
func (c *Client) Token() string { return c.token }

// Authenticate exchanges credentials for an auth token and installs it
// on the client. The API answers 201 on success.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/2.0/user/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-App-Id", c.appID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", apiError("authentication failed", resp)
	}
	var out struct {
		AuthToken string `json:"authToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.AuthToken == "" {
		return "", fmt.Errorf("authentication succeeded but no token returned")
	}
	c.token = out.AuthToken
	return out.AuthToken, nil
}

// Guide fetches one guide with all of its steps.
func (c *Client) Guide(ctx context.Context, guideID int) (*Guide, error) {
	var g Guide
	if err := c.get(ctx, "/api/2.0/guides/"+strconv.Itoa(guideID), nil, &g); err != nil {
		return nil, fmt.Errorf("fetch guide %d: %w", guideID, err)
	}
	return &g, nil
}

// GuideTitle fetches just the title and canonical URL of a guide, for
// source attribution on answers.
func (c *Client) GuideTitle(ctx context.Context, guideID int) (string, string, error) {
	g, err := c.Guide(ctx, guideID)
	if err != nil {
		return "", "", err
	}
	return g.Title, g.URL, nil
}

// Guides fetches one page of guide summaries. The API returns the array
// directly, not wrapped in an envelope.
func (c *Client) Guides(ctx context.Context, offset, limit int) ([]Summary, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	var out []Summary
	if err := c.get(ctx, "/api/2.0/guides", q, &out); err != nil {
		return nil, fmt.Errorf("fetch guide list: %w", err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-App-Id", c.appID)
	if c.token != "" {
		req.Header.Set("Authorization", "api "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError("request failed", resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(msg string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s: %d - %s", msg, resp.StatusCode, strings.TrimSpace(string(b)))
}
