// Package auth is the admin authorization gate: it checks the admin
// credential pair against the store, tracks sessions and answers whether
// a request is logged in.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
)

var (
	// ErrAccessDenied means the store rejected the pair. It never says
	// which half was wrong.
	ErrAccessDenied = errors.New("access denied")
	// ErrVerificationFailed means the check itself could not complete.
	ErrVerificationFailed = errors.New("credential verification failed")
	// ErrMissingCredentials is a local validation error; nothing is sent.
	ErrMissingCredentials = errors.New("email and password are required")
)

// State is the gate's view of a session.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// CredentialVerifier checks an admin email/password pair.
type CredentialVerifier interface {
	VerifyAdminCredentials(ctx context.Context, email, password string) (bool, error)
}

// Sessions persists logged-in sessions. SessionStore is the Redis
// implementation.
type Sessions interface {
	Create(ctx context.Context, email string) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type Gate struct {
	verifier CredentialVerifier
	sessions Sessions
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewGate(verifier CredentialVerifier, sessions Sessions, m *metrics.Metrics, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{verifier: verifier, sessions: sessions, metrics: m, log: log}
}

// Login verifies the pair and opens a session, returning its id.
func (g *Gate) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	ok, err := g.verifier.VerifyAdminCredentials(ctx, email, password)
	if err != nil {
		g.metrics.Login(metrics.OutcomeError)
		g.log.Error("admin credential check failed", "err", err)
		return "", fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	if !ok {
		g.metrics.Login(metrics.OutcomeDenied)
		g.log.Warn("admin login denied")
		return "", ErrAccessDenied
	}

	sid, err := g.sessions.Create(ctx, email)
	if err != nil {
		g.metrics.Login(metrics.OutcomeError)
		g.log.Error("admin session create failed", "err", err)
		return "", fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	g.metrics.Login(metrics.OutcomeOK)
	g.log.Info("admin logged in")
	return sid, nil
}

// State reports whether sessionID is a live session. Lookup failures
// read as LoggedOut.
func (g *Gate) State(ctx context.Context, sessionID string) State {
	if sessionID == "" {
		return LoggedOut
	}
	email, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		g.log.Error("admin session lookup failed", "err", err)
		return LoggedOut
	}
	if email == "" {
		return LoggedOut
	}
	return LoggedIn
}

// Logout ends the session. The caller is LoggedOut afterwards whatever
// the returned error says.
func (g *Gate) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := g.sessions.Delete(ctx, sessionID); err != nil {
		g.log.Error("admin session delete failed", "err", err)
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
