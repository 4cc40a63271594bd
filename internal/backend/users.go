// README: Auth and user endpoints of the backend API.
package backend

import (
	"context"
	"net/http"

	"keepify/internal/modules/user"
)

// Credentials is a login or signup result: the user record plus the bearer
// token to attach to everything that follows.
type Credentials struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var out Credentials
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, email, password, firstName, lastName string) (*Credentials, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"fname":    firstName,
		"lname":    lastName,
	}
	var out Credentials
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateMe(ctx context.Context, upd user.Update) (*user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/me", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
