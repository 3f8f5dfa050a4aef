package client

import (
	"context"
	"net/http"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/session"
)

// tokenResponse is the shape of the token generate/refresh endpoints.
type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates with username/password and stores the session.
func (c *Client) Login(ctx context.Context) (string, error) {
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return "", errors.New(errors.ErrCodeUnauthorized,
			"username and password are required for API version 3; set them in the config or log in")
	}
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, c.url("/api/v2/auth/token/generate"),
		map[string]string{"username": c.cfg.Username, "password": c.cfg.Password},
		&resp, "")
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New(errors.ErrCodeUnauthorized, "login succeeded but returned no token")
	}
	if err := c.sessions.Set(ctx, session.New(c.cfg.Server, resp.Token, session.DefaultTTL)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "store session")
	}
	return resp.Token, nil
}

// Refresh exchanges the stored token for a fresh one. If the server rejects
// the old token, it falls back to a full login.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	sess, err := c.sessions.Get(ctx, c.cfg.Server)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "load session")
	}
	if sess == nil {
		return c.Login(ctx)
	}

	var resp tokenResponse
	err = c.doJSON(ctx, http.MethodPost, c.url("/api/v2/auth/token/refresh"),
		map[string]string{"token": sess.Token}, &resp, "")
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnauthorized) {
			return c.Login(ctx)
		}
		return "", err
	}
	if err := c.sessions.Set(ctx, session.New(c.cfg.Server, resp.Token, session.DefaultTTL)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "store session")
	}
	return resp.Token, nil
}

// token returns a usable JWT, refreshing or logging in as needed.
func (c *Client) token(ctx context.Context) (string, error) {
	sess, err := c.sessions.Get(ctx, c.cfg.Server)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "load session")
	}
	if sess != nil {
		return sess.Token, nil
	}
	return c.Login(ctx)
}

// Logout discards the stored session.
func (c *Client) Logout(ctx context.Context) error {
	return c.sessions.Delete(ctx, c.cfg.Server)
}
