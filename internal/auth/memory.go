package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/cache"
)

// MemorySessions is a process-local Sessions for single-instance runs
// without Redis. Sessions end on Logout, after their TTL, or on restart.
type MemorySessions struct {
	sessions *cache.Cache[string]
}

func NewMemorySessions() *MemorySessions {
	return NewMemorySessionsWithTTL(DefaultSessionTTL)
}

func NewMemorySessionsWithTTL(ttl time.Duration) *MemorySessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemorySessions{
		sessions: cache.New[string]("admin-sessions", ttl, cache.DefaultCleanupInterval, nil),
	}
}

func (m *MemorySessions) Create(_ context.Context, email string) (string, error) {
	sid := uuid.New().String()
	m.sessions.Set(sid, email, 0)
	return sid, nil
}

// Get returns the email for a session, or "" if not found or expired.
func (m *MemorySessions) Get(_ context.Context, sessionID string) (string, error) {
	email, _ := m.sessions.Get(sessionID)
	return email, nil
}

func (m *MemorySessions) Delete(_ context.Context, sessionID string) error {
	m.sessions.Delete(sessionID)
	return nil
}
