// Package pocketbase implements backend.Client against the PocketBase
// records REST API (/api/collections/{name}/records).
package pocketbase

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

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *backend.AuthStore
}

var _ backend.Client = (*Client)(nil)

// NewClient builds a PocketBase client. The http.Client carries the single,
// global request timeout; there is no per-call override and no retrying.
func NewClient(baseURL string, httpClient *http.Client, store *backend.AuthStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
	}
}

func (c *Client) AuthStore() *backend.AuthStore {
	return c.store
}

// errorResponse is PocketBase's error envelope.
type errorResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// authResponse is returned by auth-with-password.
type authResponse struct {
	Token  string          `json:"token"`
	Record json.RawMessage `json:"record"`
}

func (c *Client) AuthWithPassword(ctx context.Context, identity, password string) (*backend.AuthResult, error) {
	body := map[string]string{
		"identity": identity,
		"password": password,
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/auth-with-password", c.baseURL, backend.CollectionUsers)

	raw, err := c.send(ctx, http.MethodPost, endpoint, body, false)
	if err != nil {
		return nil, err
	}

	var authResp authResponse
	if err := json.Unmarshal(raw, &authResp); err != nil {
		return nil, apperr.Server("malformed auth response: %v", err)
	}
	var user domain.User
	if err := json.Unmarshal(authResp.Record, &user); err != nil {
		return nil, apperr.Server("malformed auth record: %v", err)
	}

	c.store.Save(authResp.Token, user)
	log.Debugf("authenticated as %s (%s)", user.Email, user.ID)

	return &backend.AuthResult{Token: authResp.Token, User: user}, nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	body := map[string]string{
		"email":           email,
		"password":        password,
		"passwordConfirm": password,
		"name":            name,
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, backend.CollectionUsers)

	raw, err := c.send(ctx, http.MethodPost, endpoint, body, false)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, apperr.Server("malformed user record: %v", err)
	}
	return &user, nil
}

func (c *Client) Logout() {
	c.store.Clear()
}

func (c *Client) List(ctx context.Context, collection string, opts backend.ListOptions) (*backend.RecordList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(opts.Page))
	query.Set("perPage", strconv.Itoa(opts.PerPage))
	if opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	if opts.Expand != "" {
		query.Set("expand", opts.Expand)
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s", c.baseURL, collection, query.Encode())

	raw, err := c.send(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}

	var list backend.RecordList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperr.Server("malformed list response: %v", err)
	}
	return &list, nil
}

func (c *Client) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, url.PathEscape(id))
	return c.send(ctx, http.MethodGet, endpoint, nil, true)
}

func (c *Client) Create(ctx context.Context, collection string, body any) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, collection)
	return c.send(ctx, http.MethodPost, endpoint, body, true)
}

func (c *Client) Update(ctx context.Context, collection, id string, body any) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, url.PathEscape(id))
	return c.send(ctx, http.MethodPatch, endpoint, body, true)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, url.PathEscape(id))
	_, err := c.send(ctx, http.MethodDelete, endpoint, nil, true)
	return err
}

// send performs one request and classifies any failure. A transport error
// becomes a NetworkError, 401/403 an AuthenticationError, any other non-2xx
// a ServerError carrying the backend's message.
func (c *Client) send(ctx context.Context, method, endpoint string, body any, authed bool) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Unknown(fmt.Errorf("marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apperr.Unknown(fmt.Errorf("build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		// Lets the backend deduplicate a create retried by a flaky caller.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	if authed {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	log.Tracef("pocketbase: %s %s", method, endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Network(err, "request to %s failed", endpoint)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network(err, "read response from %s", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		message := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(respBytes, &errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, apperr.Authentication("%s", message)
		}
		return nil, apperr.Server("%s (status %d)", message, resp.StatusCode)
	}

	return respBytes, nil
}
