package api

import (
	"context"
	"net/http"

	"homequest-admin/internal/models"
	"homequest-admin/internal/transport"
)

var epLogin = register(Endpoint{Name: "login", Method: http.MethodPost, Path: "/auth/login/", Kind: KindMutation})

// AuthService exchanges credentials for a session and manages logout.
type AuthService struct {
	c *Client
}

func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

// Login exchanges phone+password for a bearer token and user record
// and persists them in the credential store.
func (s *AuthService) Login(ctx context.Context, phone, password string) (models.LoginResponse, error) {
	req := &transport.Request{
		Method: epLogin.Method,
		Path:   epLogin.Path,
		Body:   models.LoginRequest{Phone: phone, Password: password},
	}
	out, err := runMutation[models.LoginResponse](ctx, s.c, req, nil)
	if err != nil {
		return out, err
	}
	if err := s.c.creds.Set(out.Token, &out.User); err != nil {
		return out, err
	}
	return out, nil
}

// Logout clears the stored session. It is purely local; the bearer
// token is stateless server-side.
func (s *AuthService) Logout() error {
	return s.c.creds.Clear()
}
