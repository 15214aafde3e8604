package llm

import (
	"context"
	"time"

	"github.com/tidwall/sjson"

	"github.com/abhisek/belajar/internal/logger"
	"github.com/abhisek/belajar/internal/store"
)

// LoggingProvider records each call in the event log and the app log.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps p. events is nil when the database could not be opened;
// calls are then only written to log.
func WithLogging(p Provider, provider string, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(began))

	log := l.log.With("provider", ev.Provider, "model", ev.Model,
		"purpose", ev.Purpose, "latency_ms", ev.LatencyMs)
	if err != nil {
		log.Warn("llm request failed", "error", err)
	} else {
		log.Info("llm request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	if l.events != nil {
		if appendErr := l.events.AppendLLMRequest(ctx, ev); appendErr != nil {
			l.log.Warn("record llm request event", "error", appendErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: requestJSON(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// requestJSON is the stored form of a request: system prompt, messages,
// limits and the schema name. The schema body is left out; it is fixed
// per purpose.
func requestJSON(req Request) string {
	doc := `{}`
	set := func(path string, v any) {
		if next, err := sjson.Set(doc, path, v); err == nil {
			doc = next
		}
	}
	if req.System != "" {
		set("system", req.System)
	}
	for _, m := range req.Messages {
		set("messages.-1", map[string]string{"role": string(m.Role), "content": m.Content})
	}
	if req.MaxTokens > 0 {
		set("max_tokens", req.MaxTokens)
	}
	if req.Temperature > 0 {
		set("temperature", req.Temperature)
	}
	if req.Schema != nil {
		set("schema", req.Schema.Name)
	}
	return doc
}
