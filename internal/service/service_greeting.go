package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/store"
	"github.com/MKhiriev/go-fall/models"
)

// MaxNameLength is the longest name, in characters, accepted by Visit.
const MaxNameLength = 64

const helloMessage = "Hello, world"

type greetingService struct {
	visits store.VisitCounter

	logger *logger.Logger
}

func NewGreetingService(visits store.VisitCounter, logger *logger.Logger) GreetingService {
	return &greetingService{visits: visits, logger: logger}
}

// Hello logs the greeting with the request-scoped logger and returns it.
func (s *greetingService) Hello(ctx context.Context) string {
	logger.FromContext(ctx).Info().Msg(helloMessage)
	return helloMessage
}

// Visit validates name and records a visit for it.
func (s *greetingService) Visit(ctx context.Context, name string) (models.Visit, error) {
	name, err := validateName(name)
	if err != nil {
		return models.Visit{}, err
	}

	visits, err := s.visits.Increment(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("name", name).Msg("error recording visit")
		return models.Visit{}, fmt.Errorf("error recording visit: %w", err)
	}

	return models.Visit{Name: name, Visits: visits}, nil
}

// Visits returns the recorded total for name without counting a new visit.
func (s *greetingService) Visits(ctx context.Context, name string) (models.Visit, error) {
	name, err := validateName(name)
	if err != nil {
		return models.Visit{}, err
	}

	visits, err := s.visits.Count(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("name", name).Msg("error reading visits")
		return models.Visit{}, fmt.Errorf("error reading visits: %w", err)
	}

	return models.Visit{Name: name, Visits: visits}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: more than %d characters", ErrNameTooLong, MaxNameLength)
	}
	return name, nil
}
