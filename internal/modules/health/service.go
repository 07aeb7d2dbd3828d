// README: Readiness aggregation over dependency checkers.
package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are ignored.
func NewService(checkers ...Checker) *Service {
	s := &Service{}
	for _, c := range checkers {
		if c != nil {
			s.checkers = append(s.checkers, c)
		}
	}
	return s
}

// Ready runs every checker and returns the failures keyed by checker name.
// The error is nil only when the map is empty.
func (s *Service) Ready(ctx context.Context) (map[string]string, error) {
	details := map[string]string{}
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			details[ch.Name()] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return details, errors.Join(errs...)
}
