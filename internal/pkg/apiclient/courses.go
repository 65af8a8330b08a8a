package apiclient

import (
	"context"
	"net/url"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	return list[models.Course](ctx, c, "/courses")
}

func (c *Client) CreateCourse(ctx context.Context, p models.CoursePayload) error {
	return c.post(ctx, "/courses", p, nil)
}

func (c *Client) UpdateCourse(ctx context.Context, id string, p models.CoursePayload) error {
	return c.put(ctx, "/courses/"+url.PathEscape(id), p, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.delete(ctx, "/courses/"+url.PathEscape(id))
}

// MyCourses lists the courses of the calling user (lecturer view).
func (c *Client) MyCourses(ctx context.Context) ([]models.Course, error) {
	return list[models.Course](ctx, c, "/courses/me")
}

func (c *Client) StudentCourses(ctx context.Context, studentID string) ([]models.EnrolledCourse, error) {
	return list[models.EnrolledCourse](ctx, c, "/courses/student/"+url.PathEscape(studentID)+"/courses")
}

// Enroll enrolls the calling student in a course.
func (c *Client) Enroll(ctx context.Context, courseID string) error {
	return c.post(ctx, "/courses/"+url.PathEscape(courseID)+"/enroll", nil, nil)
}

func (c *Client) AssignLecturer(ctx context.Context, courseID, lecturerID string) error {
	body := struct {
		LecturerID string `json:"lecturer_id"`
	}{lecturerID}
	return c.post(ctx, "/courses/"+url.PathEscape(courseID)+"/assign-lecturer", body, nil)
}
