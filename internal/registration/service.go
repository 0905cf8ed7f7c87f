// Package registration creates, edits, deletes and reads registration
// records. Successful mutations invalidate the cached list and count so
// the next read reflects them.
package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/cache"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

const (
	keyAll   = "registrations:all"
	keyCount = "registrations:count"
)

// Store is the persistence the service needs. PostgresStore and
// SQLiteStore both satisfy it.
type Store interface {
	InsertRegistration(ctx context.Context, f models.RegistrationFields) (int64, error)
	UpdateRegistration(ctx context.Context, id int64, f models.RegistrationFields) (bool, error)
	DeleteRegistration(ctx context.Context, id int64) (bool, error)
	ListRegistrations(ctx context.Context) ([]models.Registration, error)
	GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error)
	CountRegistrations(ctx context.Context) (int, error)
}

type Service struct {
	store    Store
	list     *cache.Cache[[]models.Registration]
	count    *cache.Cache[int]
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCacheTTL sets how long list and count reads are served from cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		cacheTTL: cache.DefaultExpiration,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.list = cache.New[[]models.Registration]("registrations", s.cacheTTL, cache.DefaultCleanupInterval, s.log)
	s.count = cache.New[int]("registration-count", s.cacheTTL, cache.DefaultCleanupInterval, s.log)
	return s
}

// Submit validates and stores a new registration, returning its id.
func (s *Service) Submit(ctx context.Context, f models.RegistrationFields) (int64, error) {
	if err := Validate(f); err != nil {
		s.metrics.Submission(metrics.OutcomeInvalid)
		return 0, err
	}
	id, err := s.store.InsertRegistration(ctx, f)
	if err != nil {
		s.metrics.Submission(metrics.OutcomeError)
		return 0, fmt.Errorf("submit registration: %w", err)
	}
	s.invalidate()
	s.metrics.Submission(metrics.OutcomeOK)
	s.log.Info("registration submitted", "id", id, "category", f.Category)
	return id, nil
}

// Update replaces every editable field of registration id. It reports
// false, with no error, when id does not exist.
func (s *Service) Update(ctx context.Context, id int64, f models.RegistrationFields) (bool, error) {
	if err := Validate(f); err != nil {
		s.metrics.Mutation("update", metrics.OutcomeInvalid)
		return false, err
	}
	ok, err := s.store.UpdateRegistration(ctx, id, f)
	if err != nil {
		s.metrics.Mutation("update", metrics.OutcomeError)
		return false, fmt.Errorf("update registration: %w", err)
	}
	if !ok {
		s.metrics.Mutation("update", metrics.OutcomeNotFound)
		return false, nil
	}
	s.invalidate()
	s.metrics.Mutation("update", metrics.OutcomeOK)
	s.log.Info("registration updated", "id", id)
	return true, nil
}

// Delete removes registration id. It reports false, with no error, when
// id does not exist.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.DeleteRegistration(ctx, id)
	if err != nil {
		s.metrics.Mutation("delete", metrics.OutcomeError)
		return false, fmt.Errorf("delete registration: %w", err)
	}
	if !ok {
		s.metrics.Mutation("delete", metrics.OutcomeNotFound)
		return false, nil
	}
	s.invalidate()
	s.metrics.Mutation("delete", metrics.OutcomeOK)
	s.log.Info("registration deleted", "id", id)
	return true, nil
}

// List returns every registration in id order. The slice is the
// caller's to modify.
func (s *Service) List(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.list.ReadThrough(ctx, keyAll, s.cacheTTL, s.store.ListRegistrations)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	out := make([]models.Registration, len(regs))
	copy(out, regs)
	return out, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.count.ReadThrough(ctx, keyCount, s.cacheTTL, s.store.CountRegistrations)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// GetRegistrationByEmail returns the registration for email or nil. It is
// never cached.
func (s *Service) GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error) {
	r, err := s.store.GetRegistrationByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get registration by email: %w", err)
	}
	return r, nil
}

func (s *Service) invalidate() {
	s.list.Delete(keyAll)
	s.count.Delete(keyCount)
}
