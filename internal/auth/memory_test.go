package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessions_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	sid, err := s.Create(ctx, "admin@expo.edu")
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	email, err := s.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "admin@expo.edu", email)

	require.NoError(t, s.Delete(ctx, sid))
	email, err = s.Get(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestMemorySessions_Expire(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionsWithTTL(20 * time.Millisecond)

	sid, err := s.Create(ctx, "admin@expo.edu")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		email, _ := s.Get(ctx, sid)
		return email == ""
	}, time.Second, 10*time.Millisecond)
}
