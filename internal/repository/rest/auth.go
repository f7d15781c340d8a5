package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/domain/gateway"
)

type loginWire struct {
	ID                  *string  `json:"_id"`
	Username            *string  `json:"username"`
	Role                *string  `json:"role"`
	Token               string   `json:"token"`
	ForceChangePassword *bool    `json:"forceChangePassword"`
	Manager             *string  `json:"manager"`
	LastLogin           flexTime `json:"lastLogin"`
}

type authGateway struct {
	c *Client
}

func NewAuthenticator(c *Client) auth.Authenticator {
	return &authGateway{c: c}
}

// Login posts the credentials without a session; upstream 400/401/403 mean
// bad credentials.
func (g *authGateway) Login(ctx context.Context, username, password string) (auth.UpstreamLogin, error) {
	body := map[string]string{"username": username, "password": password}

	var out loginWire
	err := g.c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out)
	if err != nil {
		var remote *gateway.RemoteError
		if errors.Is(err, gateway.ErrUnauthorized) ||
			(errors.As(err, &remote) && remote.StatusCode == http.StatusBadRequest) {
			return auth.UpstreamLogin{}, fmt.Errorf("%w: %v", auth.ErrInvalidCredentials, err)
		}
		return auth.UpstreamLogin{}, err
	}
	if out.Token == "" {
		return auth.UpstreamLogin{}, auth.ErrMissingToken
	}
	return auth.UpstreamLogin{
		ID:                  out.ID,
		Username:            out.Username,
		Role:                out.Role,
		Token:               out.Token,
		ForceChangePassword: out.ForceChangePassword,
		Manager:             out.Manager,
		LastLogin:           out.LastLogin.Value,
	}, nil
}

func (g *authGateway) ChangePassword(ctx context.Context, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return g.c.do(ctx, http.MethodPost, "/user/change-password", nil, body, nil)
}
