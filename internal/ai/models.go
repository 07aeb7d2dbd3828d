package ai

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the provider answered but the reply did not carry
// candidates[0].content.parts[0].text (or the candidate was blocked).
var ErrMalformedResponse = errors.New("malformed provider response")

// Wire types for the generateContent REST endpoint.
// Only the fields we read or write are declared.

type generateContentRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []responseCandidate `json:"candidates"`
}

type responseCandidate struct {
	// Content is nil when the candidate was blocked before any text was produced.
	Content      *responseContent `json:"content"`
	FinishReason string           `json:"finishReason,omitempty"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
}

type responsePart struct {
	Text *string `json:"text"`
}

type apiErrorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// firstText walks candidates[0].content.parts[0].text.
func (r *generateContentResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	c := r.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		if c.FinishReason != "" {
			return "", fmt.Errorf("%w: empty candidate, finish reason %s", ErrMalformedResponse, c.FinishReason)
		}
		return "", fmt.Errorf("%w: candidate has no content parts", ErrMalformedResponse)
	}
	text := c.Content.Parts[0].Text
	if text == nil || *text == "" {
		return "", fmt.Errorf("%w: first part has no text", ErrMalformedResponse)
	}
	return *text, nil
}
