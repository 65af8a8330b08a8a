package apiclient

import (
	"context"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
