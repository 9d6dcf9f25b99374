package api

import (
	"context"
	"net/http"

	"yatra/internal/domain"
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	var out domain.User
	if err := checkInput(in); err != nil {
		return out, err
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathRegister, Body: in}, &out)
	return out, err
}

// Login exchanges a username and password for a token pair.
func (c *Client) Login(ctx context.Context, username domain.Username, password string) (domain.TokenPair, error) {
	var out domain.TokenPair
	in := domain.LoginInput{Username: username, Password: password}
	if err := checkInput(in); err != nil {
		return out, err
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathLogin, Body: in}, &out)
	return out, err
}

// Refresh exchanges a refresh token for a new access token. Refresh is set
// only when the server rotates refresh tokens.
func (c *Client) Refresh(ctx context.Context, refresh string) (domain.TokenPair, error) {
	var out domain.TokenPair
	body := map[string]string{"refresh": refresh}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathRefresh, Body: body}, &out)
	return out, err
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := c.Do(ctx, Request{Path: "/auth/me/"}, &out)
	return out, err
}
