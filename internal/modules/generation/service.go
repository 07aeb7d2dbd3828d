// README: Generation service; turns a request into one upstream call and a Result.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"travelbuddy/internal/ai"
)

// Service orchestrates prompt routing and the upstream generative call.
type Service struct {
	gen     ai.Generator
	router  *Router
	timeout time.Duration
}

// NewService creates a Service. A zero timeout leaves the upstream call
// bounded only by the caller's context.
func NewService(gen ai.Generator, router *Router, timeout time.Duration) *Service {
	return &Service{gen: gen, router: router, timeout: timeout}
}

// Plan exposes the routing decision without calling the provider.
func (s *Service) Plan(req Request) Plan {
	return s.router.Plan(req)
}

// Generate routes req, issues a single upstream call and extracts the reply.
// A malformed provider reply is not an error: it yields FallbackText.
// Any other upstream failure is returned wrapped.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	plan := s.router.Plan(req)

	if it, ok := req.(ItineraryRequest); ok && it.DiscardedChat != "" {
		log.Printf("generate: request carried both days=%d and chat (%d chars); chat discarded", it.Days, len(it.DiscardedChat))
	}

	// Neither field was supplied. The provider rejects an empty prompt, so
	// answer with the fallback instead of spending a call.
	if plan.Prompt == "" {
		log.Printf("generate: empty %s prompt; skipping upstream call", plan.Mode)
		return Result{Mode: plan.Mode, Model: plan.Model, Text: FallbackText, Fallback: true}, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, plan.Model, plan.Prompt)
	switch {
	case errors.Is(err, ai.ErrMalformedResponse):
		log.Printf("generate: %s via %s: %v; using fallback", plan.Mode, plan.Model, err)
		return Result{Mode: plan.Mode, Model: plan.Model, Text: FallbackText, Fallback: true}, nil
	case err != nil:
		log.Printf("Gemini API Error (%s via %s): %v", plan.Mode, plan.Model, err)
		return Result{}, fmt.Errorf("generate %s: %w", plan.Mode, err)
	}

	log.Printf("generate: %s via %s ok in %s", plan.Mode, plan.Model, time.Since(start).Round(time.Millisecond))
	return Result{Mode: plan.Mode, Model: plan.Model, Text: text}, nil
}
