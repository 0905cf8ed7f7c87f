// Package content serves the editable marketing copy: hero, about, event
// details, coordinators and contact. Sections never saved fall back to
// Defaults.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// Section names, as used in URLs and as MongoDB document ids.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionEventDetails = "event-details"
	SectionCoordinators = "coordinators"
	SectionContact      = "contact"
)

var ErrUnknownSection = errors.New("unknown content section")

// Store persists sections. MongoStore implements it.
type Store interface {
	GetContent(ctx context.Context, section string, out any) (bool, error)
	PutContent(ctx context.Context, section string, v any) error
}

// Defaults is the copy shown before an admin edits a section.
func Defaults() map[string]any {
	return map[string]any{
		SectionHero: models.Hero{
			Title:       "National Level Project Expo 2026",
			Subtitle:    "Innovate. Build. Showcase.",
			EventDate:   "To be announced",
			Venue:       "Main Auditorium",
			CTALabel:    "Register Now",
			Description: "A national platform for student teams to present working projects to industry and academic judges.",
		},
		SectionAbout: models.About{
			Heading: "About the Expo",
			Body:    "The Project Expo brings together engineering students from across the country to demonstrate projects that solve real problems.",
			Highlights: []string{
				"Open to undergraduate and postgraduate teams",
				"Evaluation by industry experts",
				"Certificates for all participants",
			},
		},
		SectionEventDetails: models.EventDetails{
			Date:             "To be announced",
			Time:             "9:00 AM - 5:00 PM",
			Venue:            "Main Auditorium",
			RegistrationFee:  "Free",
			Deadline:         "To be announced",
			Eligibility:      "Students enrolled in any recognised college",
			Categories:       []string{"Artificial Intelligence", "IoT", "Robotics", "Healthcare", "Agriculture Tech", "Sustainability"},
			Prizes:           []string{"First prize", "Second prize", "Third prize"},
			TeamSizeGuidance: "Teams of 1 to 4 members",
		},
		SectionCoordinators: models.Coordinators{
			Faculty:  []models.Coordinator{},
			Students: []models.Coordinator{},
		},
		SectionContact: models.Contact{
			Address: "To be announced",
		},
	}
}

// newSection returns a pointer to an empty value of the section's type.
func newSection(section string) (any, error) {
	switch section {
	case SectionHero:
		return &models.Hero{}, nil
	case SectionAbout:
		return &models.About{}, nil
	case SectionEventDetails:
		return &models.EventDetails{}, nil
	case SectionCoordinators:
		return &models.Coordinators{}, nil
	case SectionContact:
		return &models.Contact{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
}

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log}
}

// Get returns the stored section, or its default when none is stored.
// A store failure also degrades to the default; the error is logged.
func (s *Service) Get(ctx context.Context, section string) (any, error) {
	out, err := newSection(section)
	if err != nil {
		return nil, err
	}
	found, err := s.store.GetContent(ctx, section, out)
	if err != nil {
		s.log.Error("content read failed, serving default", "section", section, "err", err)
		return Defaults()[section], nil
	}
	if !found {
		return Defaults()[section], nil
	}
	return out, nil
}

// Put decodes raw into the section's type and stores it.
func (s *Service) Put(ctx context.Context, section string, raw json.RawMessage) (any, error) {
	v, err := newSection(section)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &DecodeError{Section: section, Err: err}
	}
	if err := s.store.PutContent(ctx, section, v); err != nil {
		return nil, fmt.Errorf("save %s: %w", section, err)
	}
	s.log.Info("content updated", "section", section)
	return v, nil
}

// DecodeError is a malformed section body.
type DecodeError struct {
	Section string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s content: %v", e.Section, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
