package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const msgLogin = "Error desconocido durante el inicio de sesión"

// tokenBody covers the shapes the login endpoint has answered with.
type tokenBody struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// Authenticate exchanges credentials for a bearer token. No token is needed
// for this call.
func (c *Client) Authenticate(ctx context.Context, creds models.Credentials) (string, error) {
	req, err := c.request(ctx, nil)
	if err != nil {
		return "", err
	}
	resp, err := req.SetBody(creds.Payload()).Post(c.paths.LoginPath)
	if err := check(resp, err, msgLogin); err != nil {
		return "", err
	}
	token, err := parseToken(resp.Body())
	if err != nil {
		nuts.L.Errorf("[Backend] Login answered without a usable token: %v", err)
		return "", errors.NewBackendError(msgLogin, 0, err)
	}
	return token, nil
}

// parseToken accepts {"token": "..."}, {"accessToken": "..."}, a JSON string
// or a bare token.
func parseToken(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", fmt.Errorf("empty body")
	}
	switch body[0] {
	case '{':
		var tb tokenBody
		if err := json.Unmarshal(body, &tb); err != nil {
			return "", err
		}
		if tb.Token != "" {
			return tb.Token, nil
		}
		if tb.AccessToken != "" {
			return tb.AccessToken, nil
		}
		return "", fmt.Errorf("no token field")
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
		return "", fmt.Errorf("empty token")
	}
	if bytes.ContainsAny(body, " \t\r\n<") {
		return "", fmt.Errorf("unexpected body")
	}
	return string(body), nil
}
