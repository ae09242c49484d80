// Package client implements the user-facing core of the helpdesk chat: the
// login gateway, the conversation engine driving classify round trips, and
// the route guard deciding which view an identity may reach. It talks to the
// backend described by the api package and keeps the authenticated identity
// in a session.Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"helpdesk/session"
)

// Client is the session-aware HTTP access point to the helpdesk backend.
// The cookie jar carries the backend session cookie across calls, so a
// classify request after login is authenticated automatically. No client
// timeout is set: resolution depends on the remote service or network
// failure.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
}

// New creates a Client for the backend at baseURL, reading the current
// identity from store.
func New(baseURL string, store *session.Store) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		store:   store,
	}, nil
}

// Store exposes the session store this client reads identity from.
func (c *Client) Store() *session.Store { return c.store }

type errorBody struct {
	Detail string `json:"detail"`
}

// detailOr extracts the server's detail message, falling back when the body
// is not the expected error shape.
func detailOr(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Detail == "" {
		return fallback
	}
	return eb.Detail
}

// postJSON issues a JSON POST and returns the status code and raw body.
// Transport-level failures come back as-is for the caller to classify.
func (c *Client) postJSON(ctx context.Context, path string, payload any, header http.Header) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("client: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindUnreachable, Message: msgUnexpected, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindServiceError, Message: detailOr(body, msgUnexpected)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindUnexpected, Message: msgUnexpected, cause: err}
	}
	return nil
}

// IssueRecord is a previously classified exchange as the backend reports it.
type IssueRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Query       string    `json:"query"`
	Response    string    `json:"response"`
	ProductCode int       `json:"product_code"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Users lists all registered accounts; data source for the admin dashboard.
func (c *Client) Users(ctx context.Context) ([]session.Identity, error) {
	var out []session.Identity
	if err := c.getJSON(ctx, "/users/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserIssues lists the prior exchanges recorded for a user.
func (c *Client) UserIssues(ctx context.Context, userID string) ([]IssueRecord, error) {
	var out []IssueRecord
	if err := c.getJSON(ctx, "/issues/user/"+userID, &out); err != nil {
		return nil, err
	}
	return out, nil
}
