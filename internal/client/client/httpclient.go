package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/logging"
	"github.com/google/uuid"
)

type authMode int

const (
	authNone authMode = iota
	authBasic
	authBearer
)

func (m authMode) String() string {
	switch m {
	case authBasic:
		return "basic"
	case authBearer:
		return "bearer"
	default:
		return "none"
	}
}

// maxErrorBody caps how much of an error payload is read.
const maxErrorBody = 64 << 10

// HTTPClient implements Client against the JSON API rooted at baseURL.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger
	timeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client (e.g. httptest's).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout bounds every request; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func NewHTTPClient(baseURL string, creds CredentialSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{},
		creds:   creds,
		log:     logging.Discard(),
		timeout: 15 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	var res models.LoginResult
	if err := c.do(ctx, http.MethodPost, authNone, &res, models.AuthRequest{Username: username, Password: password}, "auth", "login"); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login response carries no token")
	}
	return &res, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, authNone, nil, models.AuthRequest{Username: username, Password: password}, "auth", "signup")
}

func (c *HTTPClient) Search(ctx context.Context, q models.SearchQuery) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodPost, authBasic, &users, q, "users", "search"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, u models.NewUser) error {
	return c.do(ctx, http.MethodPost, authBearer, nil, u, "users")
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id models.ID, u models.UserUpdate) error {
	return c.do(ctx, http.MethodPut, authBearer, nil, u, "users", url.PathEscape(id.String()))
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, authBasic, nil, nil, "users", url.PathEscape(id.String()))
}

func (c *HTTPClient) do(ctx context.Context, method string, auth authMode, out any, in any, path ...string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL.JoinPath(path...)
	requestID := uuid.NewString()
	log := c.log.With("method", method, "path", endpoint.Path, "request_id", requestID)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set(common.ContentTypeHeaderName, common.ContentTypeJSON)
	}
	if err := c.authorize(ctx, req, auth); err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(started))
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "auth", auth, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		log.Warn(ctx, "api returned error", "status", apiErr.Status, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request, auth authMode) error {
	if auth == authNone {
		return nil
	}
	if c.creds == nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrNoSession)
	}
	creds, err := c.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	switch auth {
	case authBasic:
		if creds.Basic == "" {
			return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrNoSession)
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BasicScheme+" "+creds.Basic)
	case authBearer:
		if creds.Token == "" {
			return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrNoSession)
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+creds.Token)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(b, &payload) == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}
