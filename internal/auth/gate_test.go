package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyAdminCredentials(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

type brokenSessions struct {
	err error
}

func (b brokenSessions) Create(context.Context, string) (string, error) { return "", b.err }
func (b brokenSessions) Get(context.Context, string) (string, error)    { return "", b.err }
func (b brokenSessions) Delete(context.Context, string) error           { return b.err }

func TestGate_LoginWithCorrectPairLogsIn(t *testing.T) {
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, "admin@expo.edu", "s3cret").Return(true, nil)
	gate := NewGate(v, NewMemorySessions(), nil, nil)
	ctx := context.Background()

	sid, err := gate.Login(ctx, "admin@expo.edu", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	require.Equal(t, LoggedIn, gate.State(ctx, sid))
	v.AssertExpectations(t)
}

func TestGate_LoginWithWrongPairStaysLoggedOut(t *testing.T) {
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	sessions := NewMemorySessions()
	gate := NewGate(v, sessions, nil, nil)

	sid, err := gate.Login(context.Background(), "admin@expo.edu", "wrong")
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Empty(t, sid)
	require.Zero(t, sessions.sessions.Len(), "a denied login creates no session")
}

func TestGate_LoginTrimsEmail(t *testing.T) {
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, "admin@expo.edu", "pw").Return(true, nil)
	gate := NewGate(v, NewMemorySessions(), nil, nil)

	_, err := gate.Login(context.Background(), "  admin@expo.edu ", "pw")
	require.NoError(t, err)
	v.AssertExpectations(t)
}

func TestGate_LoginMissingCredentialsSkipsVerifier(t *testing.T) {
	v := new(mockVerifier)
	gate := NewGate(v, NewMemorySessions(), nil, nil)

	for _, pair := range [][2]string{{"", "pw"}, {"admin@expo.edu", ""}, {"   ", "pw"}} {
		_, err := gate.Login(context.Background(), pair[0], pair[1])
		require.ErrorIs(t, err, ErrMissingCredentials)
	}
	v.AssertNotCalled(t, "VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_LoginVerifierFailureIsDistinctFromDenial(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything).Return(false, boom)
	gate := NewGate(v, NewMemorySessions(), nil, nil)

	_, err := gate.Login(context.Background(), "admin@expo.edu", "s3cret")
	require.ErrorIs(t, err, ErrVerificationFailed)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrAccessDenied)
}

func TestGate_LoginSessionFailure(t *testing.T) {
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	gate := NewGate(v, brokenSessions{err: errors.New("redis down")}, nil, nil)

	_, err := gate.Login(context.Background(), "admin@expo.edu", "s3cret")
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestGate_LogoutReturnsToLoggedOut(t *testing.T) {
	v := new(mockVerifier)
	v.On("VerifyAdminCredentials", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	gate := NewGate(v, NewMemorySessions(), nil, nil)
	ctx := context.Background()

	sid, err := gate.Login(ctx, "admin@expo.edu", "s3cret")
	require.NoError(t, err)
	require.NoError(t, gate.Logout(ctx, sid))
	require.Equal(t, LoggedOut, gate.State(ctx, sid))

	require.NoError(t, gate.Logout(ctx, sid), "logging out twice is fine")
	require.NoError(t, gate.Logout(ctx, ""))
}

func TestGate_StateUnknownOrBrokenSessionIsLoggedOut(t *testing.T) {
	gate := NewGate(new(mockVerifier), NewMemorySessions(), nil, nil)
	assert.Equal(t, LoggedOut, gate.State(context.Background(), ""))
	assert.Equal(t, LoggedOut, gate.State(context.Background(), "no-such-session"))

	broken := NewGate(new(mockVerifier), brokenSessions{err: errors.New("redis down")}, nil, nil)
	assert.Equal(t, LoggedOut, broken.State(context.Background(), "anything"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "logged_in", LoggedIn.String())
	assert.Equal(t, "logged_out", LoggedOut.String())
}
