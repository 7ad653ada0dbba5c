// Package appwrite implements backend.Client against the Appwrite databases
// REST API. Documents are normalized on the way in ($id/$createdAt/$updatedAt
// become id/created/updated) so the same domain types unmarshal from either
// backend.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

type Client struct {
	endpoint   string // e.g. https://cloud.appwrite.io/v1
	projectID  string
	databaseID string
	httpClient *http.Client
	store      *backend.AuthStore
}

var _ backend.Client = (*Client)(nil)

func NewClient(endpoint, projectID, databaseID string, httpClient *http.Client, store *backend.AuthStore) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		projectID:  projectID,
		databaseID: databaseID,
		httpClient: httpClient,
		store:      store,
	}
}

func (c *Client) AuthStore() *backend.AuthStore {
	return c.store
}

type errorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

type sessionResponse struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

type listResponse struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func (c *Client) AuthWithPassword(ctx context.Context, identity, password string) (*backend.AuthResult, error) {
	body := map[string]string{
		"email":    identity,
		"password": password,
	}
	raw, err := c.send(ctx, http.MethodPost, c.endpoint+"/account/sessions/email", body, false)
	if err != nil {
		return nil, err
	}

	var session sessionResponse
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, apperr.Server("malformed session response: %v", err)
	}
	// Session secret authenticates follow-up calls via X-Appwrite-Session.
	c.store.Save(session.Secret, domain.User{ID: session.UserID})

	// Fetch the account record so the stored user carries email and name.
	accRaw, err := c.send(ctx, http.MethodGet, c.endpoint+"/account", nil, true)
	if err != nil {
		c.store.Clear()
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(normalizeDocument(accRaw), &user); err != nil {
		c.store.Clear()
		return nil, apperr.Server("malformed account record: %v", err)
	}
	c.store.Save(session.Secret, user)
	log.Debugf("authenticated as %s (%s)", user.Email, user.ID)

	return &backend.AuthResult{Token: session.Secret, User: user}, nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	body := map[string]string{
		"userId":   "unique()",
		"email":    email,
		"password": password,
		"name":     name,
	}
	raw, err := c.send(ctx, http.MethodPost, c.endpoint+"/account", body, false)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(normalizeDocument(raw), &user); err != nil {
		return nil, apperr.Server("malformed account record: %v", err)
	}
	return &user, nil
}

func (c *Client) Logout() {
	c.store.Clear()
}

func (c *Client) List(ctx context.Context, collection string, opts backend.ListOptions) (*backend.RecordList, error) {
	offset := (opts.Page - 1) * opts.PerPage

	query := url.Values{}
	query.Add("queries[]", fmt.Sprintf("limit(%d)", opts.PerPage))
	query.Add("queries[]", fmt.Sprintf("offset(%d)", offset))
	for _, q := range filterToQueries(opts.Filter) {
		query.Add("queries[]", q)
	}
	if q := sortToQuery(opts.Sort); q != "" {
		query.Add("queries[]", q)
	}

	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents?%s",
		c.endpoint, c.databaseID, collection, query.Encode())

	raw, err := c.send(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperr.Server("malformed list response: %v", err)
	}

	items := make([]json.RawMessage, 0, len(list.Documents))
	for _, doc := range list.Documents {
		items = append(items, normalizeDocument(doc))
	}

	totalPages := 0
	if opts.PerPage > 0 {
		totalPages = (list.Total + opts.PerPage - 1) / opts.PerPage
	}
	return &backend.RecordList{
		Page:       opts.Page,
		PerPage:    opts.PerPage,
		TotalItems: list.Total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

func (c *Client) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents/%s",
		c.endpoint, c.databaseID, collection, url.PathEscape(id))
	raw, err := c.send(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}
	return normalizeDocument(raw), nil
}

func (c *Client) Create(ctx context.Context, collection string, body any) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents",
		c.endpoint, c.databaseID, collection)
	payload := map[string]any{
		"documentId": "unique()",
		"data":       body,
	}
	raw, err := c.send(ctx, http.MethodPost, endpoint, payload, true)
	if err != nil {
		return nil, err
	}
	return normalizeDocument(raw), nil
}

func (c *Client) Update(ctx context.Context, collection, id string, body any) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents/%s",
		c.endpoint, c.databaseID, collection, url.PathEscape(id))
	payload := map[string]any{"data": body}
	raw, err := c.send(ctx, http.MethodPatch, endpoint, payload, true)
	if err != nil {
		return nil, err
	}
	return normalizeDocument(raw), nil
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	endpoint := fmt.Sprintf("%s/databases/%s/collections/%s/documents/%s",
		c.endpoint, c.databaseID, collection, url.PathEscape(id))
	_, err := c.send(ctx, http.MethodDelete, endpoint, nil, true)
	return err
}

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
	req.Header.Set("X-Appwrite-Project", c.projectID)
	req.Header.Set("X-Appwrite-Response-Format", "1.4.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.store.Token(); token != "" {
			req.Header.Set("X-Appwrite-Session", token)
		}
	}

	log.Tracef("appwrite: %s %s", method, endpoint)

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

// normalizeDocument maps Appwrite's $-prefixed system attributes onto the
// field names the domain types expect and drops the rest of them.
func normalizeDocument(doc json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return doc
	}

	renames := map[string]string{
		"$id":        "id",
		"$createdAt": "created",
		"$updatedAt": "updated",
	}
	for from, to := range renames {
		if v, ok := fields[from]; ok {
			fields[to] = v
		}
	}
	for key := range fields {
		if strings.HasPrefix(key, "$") {
			delete(fields, key)
		}
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return doc
	}
	return out
}

// filterToQueries translates the small subset of PocketBase filter syntax the
// services emit (clauses joined by &&, each `field = "v"` or `field ~ "v"` or
// `field >= "v"` / `field <= "v"`) into Appwrite query strings. Values are
// double-quoted with backslash escapes, so both the clause split and the
// operator search must ignore quoted text.
func filterToQueries(filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return nil
	}
	operators := []struct {
		pb string
		aw string
	}{
		{" >= ", "greaterThanEqual"},
		{" <= ", "lessThanEqual"},
		{" ~ ", "search"},
		{" = ", "equal"},
	}

	var queries []string
	for _, clause := range splitClauses(filter) {
		clause = strings.TrimSpace(clause)

		// Field and operator sit before the opening quote of the value.
		head := clause
		if quote := strings.IndexByte(clause, '"'); quote >= 0 {
			head = clause[:quote]
		}
		for _, op := range operators {
			idx := strings.Index(head, op.pb)
			if idx <= 0 {
				continue
			}
			field := strings.TrimSpace(clause[:idx])
			value := unquoteFilterValue(clause[idx+len(op.pb):])
			queries = append(queries, fmt.Sprintf(`%s("%s", ["%s"])`, op.aw, field, escapeQueryValue(value)))
			break
		}
	}
	return queries
}

// splitClauses splits a filter on " && " outside of double quotes.
func splitClauses(filter string) []string {
	var clauses []string
	var sb strings.Builder
	inQuotes := false
	for i := 0; i < len(filter); i++ {
		ch := filter[i]
		switch {
		case inQuotes && ch == '\\' && i+1 < len(filter):
			sb.WriteByte(ch)
			i++
			sb.WriteByte(filter[i])
		case ch == '"':
			inQuotes = !inQuotes
			sb.WriteByte(ch)
		case !inQuotes && strings.HasPrefix(filter[i:], " && "):
			clauses = append(clauses, sb.String())
			sb.Reset()
			i += 3
		default:
			sb.WriteByte(ch)
		}
	}
	if sb.Len() > 0 {
		clauses = append(clauses, sb.String())
	}
	return clauses
}

// unquoteFilterValue strips the surrounding quotes and resolves backslash
// escapes produced when the filter was built.
func unquoteFilterValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		sb.WriteByte(raw[i])
	}
	return sb.String()
}

func escapeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

func sortToQuery(sort string) string {
	if sort == "" {
		return ""
	}
	if strings.HasPrefix(sort, "-") {
		return fmt.Sprintf(`orderDesc("%s")`, sort[1:])
	}
	return fmt.Sprintf(`orderAsc("%s")`, strings.TrimPrefix(sort, "+"))
}
