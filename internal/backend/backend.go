// Package backend wraps the sensor network REST API.
package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

// Credentials supplies the bearer token for authorized calls.
type Credentials interface {
	BearerToken() (string, error)
}

// errorBody is the error shape the backend returns on non-2xx responses.
type errorBody struct {
	Error string `json:"error"`
}

// Client calls the backend API. It never retries; every failure is returned
// to the caller as an *errors.APIError.
type Client struct {
	http  *resty.Client
	paths config.BackendConfig
}

// New creates a Client for cfg.
func New(cfg config.BackendConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, paths: cfg}
}

// request starts a request bound to ctx. When creds is non-nil the token is
// required and attached; a missing token fails before any network call.
func (c *Client) request(ctx context.Context, creds Credentials) (*resty.Request, error) {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if creds == nil {
		return req, nil
	}
	token, err := creds.BearerToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.NewAuthError("no hay token de autenticación", nil)
	}
	return req.SetAuthToken(token), nil
}

// check turns a transport error or a non-2xx response into an APIError,
// preferring the backend's message over the fallback.
func check(resp *resty.Response, err error, fallback string) error {
	if err != nil {
		nuts.L.Errorf("[Backend] Request failed: %v", err)
		return errors.NewBackendError(fallback, 0, err)
	}
	if !resp.IsError() {
		return nil
	}
	msg := fallback
	if body, ok := resp.Error().(*errorBody); ok && strings.TrimSpace(body.Error) != "" {
		msg = body.Error
	}
	nuts.L.Warnf("[Backend] %s %s returned %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), msg)
	return errors.NewBackendError(msg, resp.StatusCode(), fmt.Errorf("status %d", resp.StatusCode()))
}

func itemPath(base string, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}
