package ai

import (
	"context"
	"fmt"
)

// Generator sends one rendered prompt to a generative-language model and
// returns the text of the first candidate.
// Implementations must report a reachable provider that answered without a
// usable candidate as ErrMalformedResponse, and every other failure as a
// plain error, so callers can tell the two apart.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Provider is a Generator that holds client resources.
type Provider interface {
	Generator
	Close()
}

const (
	TransportSDK  = "sdk"
	TransportREST = "rest"
)

// New builds the provider for transport. An empty transport means REST, which
// sends the plain generateContent request (model in the path, key in the
// query). baseURL only applies to the REST transport.
func New(ctx context.Context, transport, apiKey, baseURL string) (Provider, error) {
	switch transport {
	case TransportSDK:
		p, err := NewGeminiProvider(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TransportREST, "":
		p, err := NewRESTProvider(apiKey, baseURL, nil)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown gemini transport %q", transport)
	}
}
