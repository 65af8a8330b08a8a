package session

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// Listener observes session changes made through Login and Logout.
type Listener func(*models.Session)

// Manager is the single owner of "who is logged in" for one token store.
// The session is derived from the stored token and recomputed whenever the
// token value changes.
type Manager struct {
	store  TokenStore
	auth   Authenticator
	logger *zap.Logger

	mu         sync.Mutex
	decoded    bool
	decodedFor string
	current    *models.Session
	listeners  []Listener
}

func NewManager(store TokenStore, auth Authenticator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, auth: auth, logger: logger}
}

// Store exposes the underlying token store for request-bound API clients.
func (m *Manager) Store() TokenStore { return m.store }

// Token returns the raw credential if one is stored.
func (m *Manager) Token() (string, bool) {
	return m.store.Get()
}

// Current returns the decoded session, or nil when no token is stored or
// the stored token does not decode.
func (m *Manager) Current() *models.Session {
	token, _ := m.store.Get()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.decoded || token != m.decodedFor {
		m.current = Decode(token)
		m.decodedFor = token
		m.decoded = true
	}
	return m.current
}

// Subscribe registers l to be called after every login and logout.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Login authenticates, stores the returned token and hands back a session
// built from the login response itself. Authenticator errors are returned
// as-is and leave the store untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, span := otel.Tracer("SessionManager").Start(ctx, "Login")
	defer span.End()

	l := m.logger.With(zap.String("method", "Login"))
	l.Debug("Attempting login")

	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login rejected")
		l.Warn("Login rejected", zap.Error(err))
		return nil, err
	}
	if result == nil || result.AccessToken == "" {
		span.SetStatus(codes.Error, "empty token")
		return nil, fmt.Errorf("login response carried no access token: %w", models.ErrUnauthenticated)
	}

	if err := m.store.Set(result.AccessToken); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		return nil, err
	}

	sess := result.Session()
	span.SetAttributes(
		attribute.String("user.id", sess.ID),
		attribute.String("user.role", string(sess.Role)),
	)
	l.Info("Login succeeded", zap.String("userID", sess.ID), zap.String("role", string(sess.Role)))

	m.notify(sess)
	return sess, nil
}

// Logout forgets the stored token. Nothing is sent to the backend.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.logger.Debug("Session cleared")
	m.notify(nil)
	return nil
}

func (m *Manager) notify(s *models.Session) {
	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()
	for _, l := range listeners {
		l(s)
	}
}
