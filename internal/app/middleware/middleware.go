package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
)

// Define typed context keys
type contextKey string

const (
	SessionContextKey contextKey = "session"
	ManagerContextKey contextKey = "sessionManager"
	APIContextKey     contextKey = "api"
)

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL, HX-Trigger")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// htmx and tailwind are loaded from CDNs
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com https://cdn.jsdelivr.net https://cdn.tailwindcss.com; " +
			"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
			"font-src 'self' https://fonts.gstatic.com; " +
			"img-src 'self' data:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// SessionMiddleware gives every request its own session Manager over the
// browser's cookie store and an API client bound to the same store.
// The decoded session (possibly nil) is placed in the context for views.
func SessionMiddleware(api *apiclient.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := session.NewCookieStore(c)
		bound := api.ForTokens(store)
		mgr := session.NewManager(store, bound, logger)

		c.Set(string(ManagerContextKey), mgr)
		c.Set(string(APIContextKey), bound)
		if s := mgr.Current(); s != nil {
			c.Set(string(SessionContextKey), s)
		}
		c.Next()
	}
}

// GetSessionFromContext returns the request's session, or nil when logged out.
func GetSessionFromContext(c *gin.Context) *models.Session {
	v, exists := c.Get(string(SessionContextKey))
	if !exists {
		return nil
	}
	s, ok := v.(*models.Session)
	if !ok {
		return nil
	}
	return s
}

// GetManagerFromContext returns the request's session Manager.
func GetManagerFromContext(c *gin.Context) *session.Manager {
	v, exists := c.Get(string(ManagerContextKey))
	if !exists {
		return nil
	}
	mgr, _ := v.(*session.Manager)
	return mgr
}

// GetAPIFromContext returns the API client bound to the request's credential.
func GetAPIFromContext(c *gin.Context) *apiclient.Client {
	v, exists := c.Get(string(APIContextKey))
	if !exists {
		return nil
	}
	api, _ := v.(*apiclient.Client)
	return api
}

// handleAuthRedirect handles redirects for both regular and HTMX requests
func handleAuthRedirect(c *gin.Context, redirectURL string) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Redirect(http.StatusSeeOther, redirectURL)
	c.Abort()
}
