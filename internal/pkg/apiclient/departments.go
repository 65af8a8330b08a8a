package apiclient

import (
	"context"
	"net/url"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return list[models.Department](ctx, c, "/departments")
}

func (c *Client) CreateDepartment(ctx context.Context, p models.DepartmentPayload) error {
	return c.post(ctx, "/departments", p, nil)
}

func (c *Client) UpdateDepartment(ctx context.Context, id string, p models.DepartmentPayload) error {
	return c.put(ctx, "/departments/"+url.PathEscape(id), p, nil)
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.delete(ctx, "/departments/"+url.PathEscape(id))
}

// EnrollStudent places a student in a department.
func (c *Client) EnrollStudent(ctx context.Context, departmentID, studentID string) error {
	return c.post(ctx, "/departments/"+url.PathEscape(departmentID)+"/enroll/"+url.PathEscape(studentID), nil, nil)
}
