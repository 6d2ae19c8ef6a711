// Package supabase is a thin client for the Supabase PostgREST and auth
// endpoints. It is the only place HTTP details of the persistence
// collaborator live; repositories build on it.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a Supabase project with the service key by default, or a
// user JWT when one is supplied (row-level security).
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a client for the given project URL and service key.
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) setAuth(req *http.Request, userToken string) {
	req.Header.Set("apikey", c.ServiceKey)
	if userToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", userToken))
	} else {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Query runs a GET against a table. query maps PostgREST parameters, e.g.
// {"user_id": "eq.<id>", "order": "date.asc", "select": "*"}.
func (c *Client) Query(ctx context.Context, table string, query map[string]string) ([]byte, error) {
	return c.QueryWithToken(ctx, table, query, "")
}

// QueryWithToken runs a GET with an optional user JWT for RLS.
func (c *Client) QueryWithToken(ctx context.Context, table string, query map[string]string, userToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	c.setAuth(req, userToken)
	return c.do(req)
}

// Insert POSTs a record and returns the representation.
func (c *Client) Insert(ctx context.Context, table string, data interface{}) ([]byte, error) {
	return c.write(ctx, http.MethodPost, fmt.Sprintf("%s/rest/v1/%s", c.URL, table), data, "")
}

// Upsert POSTs with merge-duplicates resolution. onConflict names the
// uniqueness columns, e.g. "user_id,date".
func (c *Client) Upsert(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?on_conflict=%s", c.URL, table, onConflict)
	return c.write(ctx, http.MethodPost, url, data, "resolution=merge-duplicates,return=representation")
}

// Update PATCHes the row with the given id.
func (c *Client) Update(ctx context.Context, table, id string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s", c.URL, table, id)
	return c.write(ctx, http.MethodPatch, url, data, "")
}

// UpdateWhere PATCHes rows matching the given filter parameters.
func (c *Client) UpdateWhere(ctx context.Context, table string, filter map[string]string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range filter {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	c.setAuth(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(req)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	url := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s", c.URL, table, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	c.setAuth(req, "")
	_, err = c.do(req)
	return err
}

func (c *Client) write(ctx context.Context, method, url string, data interface{}, prefer string) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	c.setAuth(req, "")
	req.Header.Set("Content-Type", "application/json")
	if prefer == "" {
		prefer = "return=representation"
	}
	req.Header.Set("Prefer", prefer)
	return c.do(req)
}

// User is the subset of the Supabase auth user the backend cares about.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken resolves a user JWT against the Supabase auth endpoint.
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
