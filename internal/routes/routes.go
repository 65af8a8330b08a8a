package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/auth"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/course"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/department"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/home"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/profiles"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/settings"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/statistics"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/user"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/config"
)

type AppHandlers struct {
	Home        *home.HomeHandlers
	Auth        *auth.AuthHandlers
	Dashboard   *dashboard.DashboardHandlers
	Users       *user.UserHandlers
	Courses     *course.CourseHandlers
	Departments *department.DepartmentHandlers
	Profiles    *profiles.ProfilesHandler
	Settings    *settings.SettingsHandlers
}

// Setup registers every portal route. The session middleware must already
// be installed on r.
func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	setupRouter(r, setupDependencies(cfg, log))
}

func setupDependencies(cfg *config.Config, log *zap.Logger) *AppHandlers {
	base := domain.NewBaseHandler(log, cfg.Session.LogoutOnUnauthorized)
	ttl := cfg.Session.SnapshotTTL

	return &AppHandlers{
		Home:        home.NewHomeHandlers(base),
		Auth:        auth.NewAuthHandlers(base),
		Dashboard:   dashboard.NewDashboardHandlers(base, statistics.NewService(log), ttl),
		Users:       user.NewUserHandlers(base, ttl),
		Courses:     course.NewCourseHandlers(base, ttl),
		Departments: department.NewDepartmentHandlers(base, ttl),
		Profiles:    profiles.NewProfilesHandler(base),
		Settings:    settings.NewSettingsHandlers(base),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	{
		public.GET("/", h.Home.ShowHomePage)
		public.GET("/login", h.Auth.LoginPage)
		public.POST("/login", h.Auth.Login)
		public.POST("/logout", h.Auth.Logout)
	}

	signedIn := r.Group("/", middleware.RequireSession(middleware.Policy{}))
	{
		signedIn.GET("/dashboard", h.Dashboard.Dashboard)
		signedIn.GET("/profile", h.Profiles.ShowProfilePage)
		signedIn.POST("/profile", h.Profiles.UpdateProfile)
		signedIn.POST("/profile/password", h.Settings.ChangePassword)
	}

	admin := r.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", h.Dashboard.Admin)

		users := admin.Group("/users")
		users.GET("", h.Users.List)
		users.GET("/rows", h.Users.Rows)
		users.GET("/new", h.Users.NewForm)
		users.POST("", h.Users.Create)
		users.GET("/:id/edit", h.Users.EditForm)
		users.POST("/:id", h.Users.Update)
		users.GET("/:id/delete", h.Users.ConfirmDelete)
		users.POST("/:id/delete", h.Users.Delete)

		courses := admin.Group("/courses")
		courses.GET("", h.Courses.List)
		courses.GET("/rows", h.Courses.Rows)
		courses.GET("/new", h.Courses.NewForm)
		courses.POST("", h.Courses.Create)
		courses.GET("/:id/edit", h.Courses.EditForm)
		courses.POST("/:id", h.Courses.Update)
		courses.GET("/:id/lecturer", h.Courses.AssignForm)
		courses.POST("/:id/lecturer", h.Courses.Assign)
		courses.GET("/:id/delete", h.Courses.ConfirmDelete)
		courses.POST("/:id/delete", h.Courses.Delete)

		departments := admin.Group("/departments")
		departments.GET("", h.Departments.List)
		departments.GET("/rows", h.Departments.Rows)
		departments.GET("/new", h.Departments.NewForm)
		departments.POST("", h.Departments.Create)
		departments.GET("/:id/edit", h.Departments.EditForm)
		departments.POST("/:id", h.Departments.Update)
		departments.GET("/:id/delete", h.Departments.ConfirmDelete)
		departments.POST("/:id/delete", h.Departments.Delete)

		admin.GET("/enrollment", h.Departments.EnrollmentPage)
		admin.POST("/enrollment", h.Departments.Enroll)
	}

	lecturer := r.Group("/lecturer", middleware.RequireRole(models.RoleLecturer))
	{
		lecturer.GET("", h.Dashboard.Lecturer)
	}

	student := r.Group("/student", middleware.RequireRole(models.RoleStudent))
	{
		student.GET("", h.Dashboard.Student)
		student.GET("/rows", h.Dashboard.StudentRows)
		student.GET("/catalog", h.Courses.Catalog)
		student.GET("/catalog/rows", h.Courses.CatalogRows)
		student.POST("/catalog/:id/enroll", h.Courses.Enroll)
	}
}
