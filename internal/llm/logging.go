package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/store"
)

// EventRecorder persists AI request events. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendAIRequest(ctx context.Context, data store.AIRequestEventData) error
}

// recorder is shared by the logging decorators.
type recorder struct {
	provider string
	events   EventRecorder
	log      *logger.Logger
}

func (r recorder) record(ctx context.Context, data store.AIRequestEventData, err error) {
	data.Provider = r.provider
	data.Purpose = PurposeFrom(ctx)
	data.Success = err == nil
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if err != nil {
		r.log.Warn("ai request failed", append(fields, "error", err)...)
	} else {
		r.log.Info("ai request", fields...)
	}

	if r.events == nil {
		return
	}
	// Log the event but don't fail the request if logging fails. The
	// caller's context may already be past its deadline.
	if logErr := r.events.AppendAIRequest(context.WithoutCancel(ctx), data); logErr != nil {
		r.log.Error("failed to record ai request event", "error", logErr)
	}
}

// LoggingProvider is a decorator that records every chat request as an event.
type LoggingProvider struct {
	inner Provider
	recorder
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, provider string, events EventRecorder, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, recorder: recorder{provider: provider, events: events, log: log}}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.AIRequestEventData{
		Model:       l.inner.ModelID(),
		LatencyMs:   time.Since(start).Milliseconds(),
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}
	l.record(ctx, data, err)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingImageGenerator records every image request as an event. Image bytes
// are summarized, never stored.
type LoggingImageGenerator struct {
	inner ImageGenerator
	recorder
}

// WithImageLogging wraps an ImageGenerator with event logging.
func WithImageLogging(g ImageGenerator, provider string, events EventRecorder, log *logger.Logger) ImageGenerator {
	return &LoggingImageGenerator{inner: g, recorder: recorder{provider: provider, events: events, log: log}}
}

func (l *LoggingImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateImage(ctx, req)

	data := store.AIRequestEventData{
		Model:       l.inner.ImageModelID(),
		LatencyMs:   time.Since(start).Milliseconds(),
		RequestBody: fmt.Sprintf("[prompt aspect=%s]\n%s\n", req.AspectRatio, req.Prompt),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = summarizeImages(resp)
	}
	l.record(ctx, data, err)

	return resp, err
}

func (l *LoggingImageGenerator) ImageModelID() string {
	return l.inner.ImageModelID()
}

// LoggingSearchGrounder records every grounded search as an event.
type LoggingSearchGrounder struct {
	inner SearchGrounder
	recorder
}

// WithSearchLogging wraps a SearchGrounder with event logging.
func WithSearchLogging(s SearchGrounder, provider string, events EventRecorder, log *logger.Logger) SearchGrounder {
	return &LoggingSearchGrounder{inner: s, recorder: recorder{provider: provider, events: events, log: log}}
}

func (l *LoggingSearchGrounder) GenerateGrounded(ctx context.Context, req Request) (*GroundedResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateGrounded(ctx, req)

	data := store.AIRequestEventData{
		Model:       l.inner.SearchModelID(),
		LatencyMs:   time.Since(start).Milliseconds(),
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = serializeGrounded(resp)
	}
	l.record(ctx, data, err)

	return resp, err
}

func (l *LoggingSearchGrounder) SearchModelID() string {
	return l.inner.SearchModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}

func summarizeImages(resp *ImageResponse) string {
	var b strings.Builder
	for i, img := range resp.Images {
		fmt.Fprintf(&b, "[image %d] %s, %d bytes\n", i+1, img.MIMEType, len(img.Data))
	}
	if resp.Text != "" {
		b.WriteString(resp.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func serializeGrounded(resp *GroundedResponse) string {
	var b strings.Builder
	b.WriteString(resp.Text)
	if len(resp.Sources) > 0 {
		b.WriteString("\n\n[sources]\n")
		for _, s := range resp.Sources {
			fmt.Fprintf(&b, "- %s <%s>\n", s.Title, s.URI)
		}
	}
	return b.String()
}
