package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// CookieName is the browser cookie holding the signed session.
const CookieName = "lms_session"

const flashKey = "_flash"

var _ TokenStore = (*CookieStore)(nil)

// CookieStore keeps the credential in the browser's signed session cookie,
// so it survives reloads for as long as the cookie lives.
type CookieStore struct {
	c *gin.Context
	s sessions.Session
}

// NewCookieStore binds to the session loaded by the Sessions middleware.
func NewCookieStore(c *gin.Context) *CookieStore {
	return &CookieStore{c: c, s: sessions.Default(c)}
}

func (s *CookieStore) Get() (string, bool) {
	token, ok := s.s.Get(TokenKey).(string)
	return token, ok && token != ""
}

func (s *CookieStore) Set(token string) error {
	s.s.Set(TokenKey, token)
	if err := save(s.c, s.s); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

func (s *CookieStore) Clear() error {
	s.s.Delete(TokenKey)
	if err := save(s.c, s.s); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Secret string
	MaxAge time.Duration
	Secure bool
}

// Middleware installs the signed cookie session the CookieStore reads from.
func Middleware(opts CookieOptions) gin.HandlerFunc {
	store := cookie.NewStore([]byte(opts.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(CookieName, store)
}

// AddFlash queues a one-shot notification for the next rendered page.
func AddFlash(c *gin.Context, kind, message string) {
	s, ok := current(c)
	if !ok {
		return
	}
	s.AddFlash(kind+"|"+message, flashKey)
	_ = save(c, s)
}

// TakeFlashes pops every queued notification.
func TakeFlashes(c *gin.Context) []models.Toast {
	s, ok := current(c)
	if !ok {
		return nil
	}
	raw := s.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	_ = save(c, s)

	out := make([]models.Toast, 0, len(raw))
	for _, r := range raw {
		str, ok := r.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(str, "|")
		if !found {
			kind, msg = "info", str
		}
		out = append(out, models.Toast{Kind: kind, Message: msg})
	}
	return out
}

// save writes the session cookie, replacing any copy an earlier save in the
// same response already queued, so each response carries one session cookie.
func save(c *gin.Context, s sessions.Session) error {
	h := c.Writer.Header()
	prefix := CookieName + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	return s.Save()
}

// current returns the cookie session if the Sessions middleware ran.
func current(c *gin.Context) (sessions.Session, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil, false
	}
	return sessions.Default(c), true
}
