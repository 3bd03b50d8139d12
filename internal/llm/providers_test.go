package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

const gkQuestion = `{"question":"Which is the highest peak in Nepal?","options":["Everest","Lhotse"],"correctAnswer":0}`

func gkSchema() *Schema {
	return &Schema{
		Name: "providers-test-question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":      map[string]any{"type": "string"},
				"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
				"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	}
}

func serve(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 25},
	}
}

func openaiCompletion(text, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": text}, "finish_reason": finish}},
		"usage":   map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func apiError(kind, msg string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": msg}}
}

func newAnthropic(t *testing.T, srv *httptest.Server) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func newOpenAI(srv *httptest.Server) *OpenAIProvider {
	oc := openai.DefaultConfig("test-key")
	oc.BaseURL = srv.URL + "/v1"
	return newOpenAIWithConfig(oc, "gpt-4o-mini")
}

func TestAnthropicProvider_Generate(t *testing.T) {
	srv := serve(t, http.StatusOK, anthropicMessage(gkQuestion, "end_turn"))
	p := newAnthropic(t, srv)

	req := Ask("You write Loksewa questions.", "One question on geography.", gkSchema())
	req.MaxTokens = 256
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != gkQuestion {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 65 || resp.StopReason != StopEnd {
		t.Errorf("usage = %+v, stop = %q", resp.Usage, resp.StopReason)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, apiError("rate_limit_error", "slow down"), func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", http.StatusInternalServerError, apiError("api_error", "boom"), func(err error) bool {
			var u *ErrProviderUnavailable
			return errors.As(err, &u)
		}},
		{"bad key is final", http.StatusUnauthorized, apiError("authentication_error", "bad key"), func(err error) bool {
			return !retryable(err)
		}},
		{"truncated json", http.StatusOK, anthropicMessage(`{"question":"Which`, "max_tokens"), func(err error) bool {
			var mt *ErrMaxTokensExceeded
			return errors.As(err, &mt)
		}},
		{"schema mismatch", http.StatusOK, anthropicMessage(`{"question":"Q"}`, "end_turn"), func(err error) bool {
			var inv *ErrInvalidResponse
			return errors.As(err, &inv)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newAnthropic(t, serve(t, tt.status, tt.body))
			_, err := p.Generate(context.Background(), Ask("", "q", gkSchema()))
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error %T: %v", err, err)
			}
		})
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openaiCompletion(gkQuestion, "stop"))
	}))
	t.Cleanup(srv.Close)

	p := newOpenAI(srv)
	resp, err := p.Generate(context.Background(), Ask("You write Loksewa questions.", "One question.", gkSchema()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != gkQuestion || resp.Usage.TotalTokens != 65 {
		t.Errorf("resp = %+v", resp)
	}

	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	format, _ := gotBody["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format = %v", format)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		srv := serve(t, http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}})
		_, err := newOpenAI(srv).Generate(context.Background(), Ask("", "q", nil))
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T: %v", err, err)
		}
	})
	t.Run("length cut", func(t *testing.T) {
		srv := serve(t, http.StatusOK, openaiCompletion(`{"question":`, "length"))
		_, err := newOpenAI(srv).Generate(context.Background(), Ask("", "q", gkSchema()))
		var mt *ErrMaxTokensExceeded
		if !errors.As(err, &mt) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %T: %v", err, err)
		}
	})
	t.Run("free text length cut is fine", func(t *testing.T) {
		srv := serve(t, http.StatusOK, openaiCompletion("Revise the constitution chapter", "length"))
		resp, err := newOpenAI(srv).Generate(context.Background(), Ask("", "q", nil))
		if err != nil || resp.StopReason != StopMaxTokens {
			t.Fatalf("resp = %+v, err = %v", resp, err)
		}
	})
}

func TestOpenRouterProvider(t *testing.T) {
	var referer, title string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer, title = r.Header.Get("HTTP-Referer"), r.Header.Get("X-Title")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openaiCompletion(gkQuestion, "stop"))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("ModelID = %q, want pass-through", p.ModelID())
	}
	if _, err := p.Generate(context.Background(), Ask("", "q", gkSchema())); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if title != "examdrill" || !strings.Contains(referer, "examdrill") {
		t.Errorf("headers: referer=%q title=%q", referer, title)
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"claude-sonnet", anthropicModels, "claude-sonnet-4-5-20250929"},
		{"gpt-mini", openaiModels, "gpt-4o-mini"},
		{"gpt-4.1", openaiModels, "gpt-4.1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if LookupCost(tt.want) == nil {
			t.Errorf("no pricing for %s", tt.want)
		}
	}
}
