package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/abhisek/examdrill/internal/store"
)

// LoggingProvider stores every call, failed ones included, as an LLM
// request event.
type LoggingProvider struct {
	inner  Provider
	name   string
	events store.EventRepo
}

// WithLogging records calls to p under the provider name.
func WithLogging(p Provider, name string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, events: events}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := l.event(ctx, req, resp, err)
	ev.LatencyMs = time.Since(started).Milliseconds()

	// Recording must not fail the call, and must still happen after the
	// caller's context is cancelled.
	if rerr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
		log.Printf("llm: record %s request: %v", ev.Purpose, rerr)
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	return ev
}

// transcript renders a request as labelled blocks: system prompt, each
// message by role, then the output schema.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
