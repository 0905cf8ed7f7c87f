// Package lookup lets a visitor fetch their own registration by the email
// they registered with. Input is validated before any store call.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

var (
	ErrEmptyEmail     = errors.New("email is required")
	ErrMalformedEmail = errors.New("enter a valid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail accepts local@domain.tld shaped input after trimming.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrMalformedEmail
	}
	return nil
}

// Finder returns the registration for an email, or nil when there is none.
type Finder interface {
	GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error)
}

// State is where a Flow is in its search.
type State int

const (
	NotSearched State = iota
	Searching
	Found
	NoMatch
	Failed
)

func (s State) String() string {
	switch s {
	case NotSearched:
		return "not_searched"
	case Searching:
		return "searching"
	case Found:
		return "found"
	case NoMatch:
		return "no_match"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Flow tracks one visitor's lookup. A validation failure leaves the
// state where it was; a store failure moves it to Failed.
type Flow struct {
	finder Finder

	mu     sync.Mutex
	state  State
	result *models.Registration
}

func NewFlow(finder Finder) *Flow {
	return &Flow{finder: finder}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result is the registration found by the last search, or nil.
func (f *Flow) Result() *models.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Search validates email and, if it is well-formed, asks the finder.
// A nil registration with a nil error means no match.
func (f *Flow) Search(ctx context.Context, email string) (*models.Registration, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.state = Searching
	f.result = nil
	f.mu.Unlock()

	reg, err := f.finder.GetRegistrationByEmail(ctx, strings.TrimSpace(email))

	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case err != nil:
		f.state = Failed
		return nil, fmt.Errorf("lookup registration: %w", err)
	case reg == nil:
		f.state = NoMatch
	default:
		f.state = Found
		f.result = reg
	}
	return reg, nil
}
