package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/common"
	"github.com/dmitrijs2005/radiologix/internal/logging"
)

const (
	defaultBaseURL = "http://localhost:8001"
	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is read for its detail.
	maxErrorBody = 64 << 10
)

// APIClient talks to the backend over HTTP/JSON.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	newID      func() string
}

var _ Client = (*APIClient)(nil)

// Option customises NewAPIClient.
type Option func(*APIClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *APIClient) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *APIClient) {
		if l != nil {
			c.log = l
		}
	}
}

// NewAPIClient points a client at base, e.g. "http://localhost:8001". A
// missing scheme defaults to http and the /api prefix is added when absent.
func NewAPIClient(base string, opts ...Option) (*APIClient, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: missing host", base)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(u.Path, common.APIPrefix) {
		u.Path += common.APIPrefix
	}

	c := &APIClient{
		baseURL:    u.String(),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logging.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root, including the /api prefix.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *APIClient) Login(ctx context.Context, email, password string) (Credential, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", Credential{}, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Credential{}, err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return Credential{}, errors.New("login response carries no access token")
	}
	return Credential{Token: resp.AccessToken}, nil
}

func (c *APIClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var u models.User
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", Credential{}, registerRequest{Name: name, Email: email, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *APIClient) Me(ctx context.Context, cred Credential) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", cred, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SubmitScan posts scan_type and image_data as a multipart form.
func (c *APIClient) SubmitScan(ctx context.Context, cred Credential, scanType models.ScanType, imageData string) (*models.ScanReport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("scan_type", string(scanType)); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	if err := mw.WriteField("image_data", imageData); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	var r models.ScanReport
	if err := c.do(ctx, http.MethodPost, "/scans", cred, mw.FormDataContentType(), &buf, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *APIClient) ListScans(ctx context.Context, cred Credential) ([]models.ScanReport, error) {
	var out []models.ScanReport
	if err := c.doJSON(ctx, http.MethodGet, "/scans", cred, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GetScan(ctx context.Context, cred Credential, id string) (*models.ScanReport, error) {
	var r models.ScanReport
	if err := c.doJSON(ctx, http.MethodGet, "/scans/"+url.PathEscape(id), cred, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Health reports nil when the backend answers its health probe.
func (c *APIClient) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/health", Credential{}, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnavailable, resp.Status)
	}
	return nil
}

func (c *APIClient) doJSON(ctx context.Context, method, path string, cred Credential, body, v any) error {
	if body == nil {
		return c.do(ctx, method, path, cred, "", nil, v)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, method, path, cred, "application/json", bytes.NewReader(payload), v)
}

func (c *APIClient) do(ctx context.Context, method, path string, cred Credential, contentType string, body io.Reader, v any) error {
	reqID := c.newID()
	log := c.log.With("method", method, "path", path, "request_id", reqID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if h := cred.AuthorizationHeader(); h != "" {
		req.Header.Set(common.AuthorizationHeaderName, h)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp.StatusCode, extractError(io.LimitReader(resp.Body, maxErrorBody)))
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *APIClient) mapTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func mapStatus(status int, msg string) error {
	e := &APIError{Status: status, Message: msg}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Err = ErrUnauthorized
	case http.StatusNotFound:
		e.Err = ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Err = ErrUnavailable
	}
	return e
}

// extractError pulls a message out of {"detail": ...} or {"error": ...}
// bodies. Validation errors carry detail as a list; the first msg is used.
func extractError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	if len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return strings.TrimSpace(s)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(payload.Detail, &items) == nil && len(items) > 0 {
			return strings.TrimSpace(items[0].Msg)
		}
	}
	if payload.Error != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(payload.Message)
}
