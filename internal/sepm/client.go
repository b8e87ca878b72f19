package sepm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

// REST paths under the management server's API root.
const (
	apiBasePath        = "/sepm/api/v1"
	authenticatePath   = apiBasePath + "/identity/authenticate"
	logoutPath         = apiBasePath + "/identity/logout"
	inventoryPath      = apiBasePath + "/computers"
	pageIndexParam     = "pageIndex"
	pageSizeParam      = "pageSize"
	authorizationValue = "Bearer "
)

// Client talks to the management server's REST API. It is not safe for
// concurrent use; the run is strictly sequential by design.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	domain  string
}

// New creates a client for the configured server. Certificate
// verification is on unless explicitly disabled in the config.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("server address is required")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // explicit operator opt-in
		},
	}

	if cfg.InsecureSkipVerify {
		slog.Warn("TLS certificate verification disabled", slog.String("server", cfg.Server))
	}

	return &Client{
		baseURL: fmt.Sprintf("https://%s:%d", cfg.Server, cfg.Port),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		domain: cfg.Domain,
	}, nil
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Domain   string `json:"domain"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Authenticate obtains a bearer token for the given principal and
// attaches it to all subsequent requests.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	body, err := json.Marshal(authRequest{
		Username: username,
		Password: password,
		Domain:   c.domain,
	})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authenticatePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build authenticate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("authenticate request failed: %w", err)
	}
	defer c.closeBody(resp)

	if err := statusError(resp.StatusCode); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("failed to decode authenticate response: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("authenticate: %w", ErrEmptyToken)
	}

	c.token = auth.Token
	slog.Debug("session established", slog.String("server", c.baseURL))
	return nil
}

// ListPage fetches one page of the inventory listing. pageIndex is
// 1-based, matching the server's paging contract.
func (c *Client) ListPage(ctx context.Context, pageIndex, pageSize int) (*models.Page, error) {
	query := url.Values{}
	query.Set(pageIndexParam, strconv.Itoa(pageIndex))
	query.Set(pageSizeParam, strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+inventoryPath+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list page %d failed: %w", pageIndex, err)
	}
	defer c.closeBody(resp)

	if err := statusError(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("list page %d: %w", pageIndex, err)
	}

	var page models.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page %d: %w", pageIndex, err)
	}

	return &page, nil
}

// DeleteRecord removes one record by its unique identifier. Deletion is
// terminal server-side; there is no undo.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("record id is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+inventoryPath+"/"+url.PathEscape(id), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s failed: %w", id, err)
	}
	defer c.closeBody(resp)

	if err := statusError(resp.StatusCode); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	return nil
}

// Logout invalidates the session token. Best-effort: callers log a
// warning on failure and carry on.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+logoutPath, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer c.closeBody(resp)

	if err := statusError(resp.StatusCode); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	c.token = ""
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", authorizationValue+c.token)
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Warn("failed to close response body", slog.String("error", err.Error()))
	}
}
