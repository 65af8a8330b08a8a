package apiclient

import (
	"context"
	"net/url"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "/users")
}

// ListLecturers narrows ListUsers to lecturer accounts.
func (c *Client) ListLecturers(ctx context.Context) ([]models.User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	lecturers := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleLecturer {
			lecturers = append(lecturers, u)
		}
	}
	return lecturers, nil
}

func (c *Client) CreateUser(ctx context.Context, p models.CreateUserPayload) error {
	return c.post(ctx, "/users/create", p, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, p models.UpdateUserPayload) error {
	return c.put(ctx, "/users/"+url.PathEscape(id), p, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+url.PathEscape(id))
}

func (c *Client) UpdateProfile(ctx context.Context, p models.ProfileUpdate) error {
	return c.put(ctx, "/users/me", p, nil)
}

func (c *Client) ChangePassword(ctx context.Context, p models.PasswordChange) error {
	return c.post(ctx, "/users/me/change-password", p, nil)
}
