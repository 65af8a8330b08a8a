package domain

import (
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/components"
	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
)

const pendingToastsKey = "pendingToasts"

type BaseHandler struct {
	Logger *zap.Logger
	// LogoutOnUnauthorized ends the session when the backend rejects the
	// credential instead of only reporting the failed operation.
	LogoutOnUnauthorized bool
}

func NewBaseHandler(logger *zap.Logger, logoutOnUnauthorized bool) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger, LogoutOnUnauthorized: logoutOnUnauthorized}
}

func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	user := middleware.GetSessionFromContext(c)
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.NavFor(user),
		ActiveNav: activeNav,
		User:      user,
		Toasts:    h.takeToasts(c),
	}
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", c.FullPath())))
}

// RenderPage renders content inside the layout, or alone for HTMX requests.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	h.RenderPageStatus(c, http.StatusOK, title, activeNav, content)
}

func (h *BaseHandler) RenderPageStatus(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	if IsHTMX(c) {
		h.RenderPartial(c, status, content)
		return
	}
	h.render(c, status, components.Layout(h.newLayoutData(c, title, activeNav, content)))
}

// RenderPartial renders HTMX fragments plus any pending notifications
// swapped out of band into the toast region.
func (h *BaseHandler) RenderPartial(c *gin.Context, status int, parts ...templ.Component) {
	if toasts := h.takeToasts(c); len(toasts) > 0 {
		parts = append(parts, components.Toasts(toasts, true))
	}
	h.render(c, status, templ.Join(parts...))
}

// Notify queues a notification for whatever this request renders next.
func (h *BaseHandler) Notify(c *gin.Context, kind, message string) {
	pending, _ := c.Get(pendingToastsKey)
	toasts, _ := pending.([]models.Toast)
	c.Set(pendingToastsKey, append(toasts, models.Toast{Kind: kind, Message: message}))
}

func (h *BaseHandler) Success(c *gin.Context, message string) { h.Notify(c, "success", message) }

func (h *BaseHandler) Failure(c *gin.Context, message string) { h.Notify(c, "error", message) }

func (h *BaseHandler) takeToasts(c *gin.Context) []models.Toast {
	pending, _ := c.Get(pendingToastsKey)
	toasts, _ := pending.([]models.Toast)
	c.Set(pendingToastsKey, []models.Toast(nil))
	return append(session.TakeFlashes(c), toasts...)
}

// Redirect navigates away, carrying pending notifications in the session
// flash so the next page shows them.
func (h *BaseHandler) Redirect(c *gin.Context, location string) {
	pending, _ := c.Get(pendingToastsKey)
	if toasts, _ := pending.([]models.Toast); len(toasts) > 0 {
		for _, t := range toasts {
			session.AddFlash(c, t.Kind, t.Message)
		}
		c.Set(pendingToastsKey, []models.Toast(nil))
	}
	if IsHTMX(c) {
		c.Header("HX-Redirect", location)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

// API returns the backend client bound to the request's credential.
func (h *BaseHandler) API(c *gin.Context) *apiclient.Client {
	return middleware.GetAPIFromContext(c)
}

// Session returns the logged-in session; route guards make it non-nil.
func (h *BaseHandler) Session(c *gin.Context) *models.Session {
	return middleware.GetSessionFromContext(c)
}

// Owner keys per-session caches.
func (h *BaseHandler) Owner(c *gin.Context) string {
	if s := h.Session(c); s != nil {
		return s.ID
	}
	return ""
}

// ExpiredSession handles a backend 401 when the portal is configured to
// treat it as the end of the session. It reports whether it redirected.
func (h *BaseHandler) ExpiredSession(c *gin.Context, err error) bool {
	if !h.LogoutOnUnauthorized || !errors.Is(err, models.ErrUnauthenticated) {
		return false
	}
	if mgr := middleware.GetManagerFromContext(c); mgr != nil {
		if lerr := mgr.Logout(); lerr != nil {
			h.Logger.Warn("Failed to clear session", zap.Error(lerr))
		}
	}
	h.Failure(c, "Your session has expired. Please sign in again.")
	h.Redirect(c, middleware.LoginPath)
	return true
}

// BackendError logs a failed backend call and returns the message to show.
func (h *BaseHandler) BackendError(c *gin.Context, op string, err error, fallback string) string {
	h.Logger.Warn("Backend call failed",
		zap.String("op", op),
		zap.Int("status", apiclient.StatusOf(err)),
		zap.Error(err))
	if apiclient.StatusOf(err) == 0 {
		if errors.Is(err, models.ErrTransport) {
			return apiclient.Message(err)
		}
		return fallback
	}
	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	return fallback
}

// FailureStatus is the response status for a failed backend call: the
// backend's own, or 502 when it could not be reached.
func FailureStatus(err error) int {
	if s := apiclient.StatusOf(err); s != 0 {
		return s
	}
	return http.StatusBadGateway
}
