package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider targets OpenRouter's OpenAI-compatible endpoint.
// Model IDs such as "google/gemini-2.5-flash" are used as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Transport: &appHeaders{next: http.DefaultTransport}}
	return newOpenAIWithConfig(oc, cfg.Model), nil
}

// appHeaders sets the attribution headers OpenRouter shows on its
// dashboard.
type appHeaders struct {
	next http.RoundTripper
}

func (h *appHeaders) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", "https://github.com/abhisek/examdrill")
	r.Header.Set("X-Title", "examdrill")
	return h.next.RoundTrip(r)
}
