package client

import (
	"context"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates an account and logs the client in with the returned
// token.
func (c *Client) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	req := registerRequest{Email: email, Name: name, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "register"), req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

// Login authenticates and stores the token for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	req := loginRequest{Email: email, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "login"), req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

// Logout revokes the current token on the server and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "logout"), nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
