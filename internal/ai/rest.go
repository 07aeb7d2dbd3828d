package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public generative-language API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// RESTProvider calls the generateContent endpoint directly:
//
//	POST {base}/v1beta/models/{model}:generateContent?key={apiKey}
//	{"contents":[{"parts":[{"text":"..."}]}]}
type RESTProvider struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewRESTProvider returns a provider for baseURL (DefaultBaseURL when empty).
// A nil httpc means a client without a timeout; deadlines come from ctx.
func NewRESTProvider(apiKey, baseURL string, httpc *http.Client) (*RESTProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: missing api key")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &RESTProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}, nil
}

// Close drops idle upstream connections.
func (p *RESTProvider) Close() {
	p.httpc.CloseIdleConnections()
}

// Generate posts prompt to model and returns the first candidate's text.
// Transport errors, non-2xx statuses and undecodable bodies are call
// failures; a decodable body without text is ErrMalformedResponse.
func (p *RESTProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(model), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", redactURLError(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: do request: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini: api status %d: %s", resp.StatusCode, apiErrorMessage(body))
	}

	var gr generateContentResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	return gr.firstText()
}

func (p *RESTProvider) endpoint(model string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, url.PathEscape(model), url.QueryEscape(p.apiKey))
}

// apiErrorMessage prefers the provider's own error message over the raw body.
func apiErrorMessage(body []byte) string {
	var ae apiErrorResponse
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error != nil && ae.Error.Message != "" {
		return ae.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		return "empty body"
	}
	return msg
}

// redactURLError drops the request URL, which carries the API key, from
// transport errors before they reach logs or callers.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
