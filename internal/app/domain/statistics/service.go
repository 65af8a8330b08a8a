package statistics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// RecentLimit is how many newest accounts the admin dashboard lists.
const RecentLimit = 5

// Backend is the part of the LMS API the dashboards read.
type Backend interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	MyCourses(ctx context.Context) ([]models.Course, error)
	StudentCourses(ctx context.Context, studentID string) ([]models.EnrolledCourse, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	AdminOverview(ctx context.Context, b Backend) (*models.AdminOverview, error)
	LecturerCourses(ctx context.Context, b Backend) ([]models.Course, error)
	StudentCourses(ctx context.Context, b Backend, studentID string) ([]models.EnrolledCourse, error)
}

type ServiceImpl struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceImpl{logger: logger}
}

// AdminOverview fetches users, courses and departments concurrently. All
// three must succeed; the first failure cancels the others.
func (s *ServiceImpl) AdminOverview(ctx context.Context, b Backend) (*models.AdminOverview, error) {
	l := s.logger.With(zap.String("method", "AdminOverview"))

	var (
		users   []models.User
		courses []models.Course
		depts   []models.Department
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = b.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = b.ListCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		depts, err = b.ListDepartments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.Error("Failed to load dashboard metrics", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard metrics: %w", err)
	}

	overview := Summarize(users, courses, depts)
	l.Debug("Dashboard metrics loaded",
		zap.Int("students", overview.Stats.Students),
		zap.Int("lecturers", overview.Stats.Lecturers))
	return &overview, nil
}

func (s *ServiceImpl) LecturerCourses(ctx context.Context, b Backend) ([]models.Course, error) {
	l := s.logger.With(zap.String("method", "LecturerCourses"))
	courses, err := b.MyCourses(ctx)
	if err != nil {
		l.Error("Failed to get lecturer courses", zap.Error(err))
		return nil, err
	}
	return courses, nil
}

func (s *ServiceImpl) StudentCourses(ctx context.Context, b Backend, studentID string) ([]models.EnrolledCourse, error) {
	l := s.logger.With(zap.String("method", "StudentCourses"), zap.String("studentID", studentID))
	courses, err := b.StudentCourses(ctx, studentID)
	if err != nil {
		l.Error("Failed to get student courses", zap.Error(err))
		return nil, err
	}
	return courses, nil
}

// Summarize counts accounts by role and picks the newest users.
func Summarize(users []models.User, courses []models.Course, depts []models.Department) models.AdminOverview {
	var stats models.DashboardStats
	for _, u := range users {
		switch u.Role {
		case models.RoleStudent:
			stats.Students++
		case models.RoleLecturer:
			stats.Lecturers++
		}
	}
	stats.Courses = len(courses)
	stats.Departments = len(depts)
	return models.AdminOverview{Stats: stats, RecentUsers: Recent(users, RecentLimit)}
}

// Recent returns up to n users, newest first. Users without a creation
// time sort after all dated ones, keeping their listed order.
func Recent(users []models.User, n int) []models.User {
	sorted := append([]models.User(nil), users...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
