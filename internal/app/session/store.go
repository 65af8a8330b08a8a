package session

import "sync"

// TokenKey is the single named entry the credential lives under.
const TokenKey = "token"

// TokenReader is the read side of a TokenStore; the API client only needs this.
type TokenReader interface {
	Get() (string, bool)
}

// TokenStore persists exactly one credential string.
type TokenStore interface {
	TokenReader
	Set(token string) error
	Clear() error
}

var _ TokenStore = (*MemoryStore)(nil)

// MemoryStore keeps the credential in process memory. It does not survive a
// restart and is meant for tests and short-lived tools.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{token: initial}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Set("")
}
