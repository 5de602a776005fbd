// Package aiclient is the tour's AI backend: tutor chat, image generation and
// search-grounded answers, each bounded by a per-call timeout.
package aiclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/visiontour/internal/chat"
	"github.com/abhisek/visiontour/internal/llm"
	"github.com/abhisek/visiontour/internal/logger"
)

// imageAspectRatio is fixed for every generated image.
const imageAspectRatio = "1:1"

// Source is a web page a search answer is grounded on.
type Source = llm.Source

// SearchResult is a search-grounded answer. Degraded is set when the call
// failed and Text holds the apology instead of an answer.
type SearchResult struct {
	Text     string
	Sources  []Source
	Degraded bool
}

// Options configures a Client.
type Options struct {
	// Language is the answer language code. Default "es".
	Language string

	// Timeout bounds each backend call. Zero means no extra bound.
	Timeout time.Duration

	Logger *logger.Logger
}

// Client performs the three backend operations.
type Client struct {
	backend *llm.Backend
	lang    Language
	timeout time.Duration
	log     *logger.Logger
}

// New creates a Client over backend.
func New(backend *llm.Backend, opts Options) (*Client, error) {
	if backend == nil || backend.Chat == nil {
		return nil, errors.New("aiclient: backend without chat capability")
	}
	code := opts.Language
	if code == "" {
		code = "es"
	}
	lang, err := LookupLanguage(code)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		backend: backend,
		lang:    lang,
		timeout: opts.Timeout,
		log:     log.With("component", "aiclient"),
	}, nil
}

// Language returns the texts for the configured answer language.
func (c *Client) Language() Language {
	return c.lang
}

// CanGenerateImages reports whether the backend serves image generation.
func (c *Client) CanGenerateImages() bool {
	return c.backend.Image != nil
}

// CanSearch reports whether the backend serves search grounding.
func (c *Client) CanSearch() bool {
	return c.backend.Search != nil
}

func (c *Client) bound(ctx context.Context, purpose string) (context.Context, context.CancelFunc) {
	ctx = llm.WithPurpose(ctx, purpose)
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// SendMessage asks the tutor persona to answer newMessage given the prior
// transcript. An empty reply becomes the language's apology text.
func (c *Client) SendMessage(ctx context.Context, history []chat.Turn, newMessage string) (string, error) {
	ctx, cancel := c.bound(ctx, llm.PurposeTutorChat)
	defer cancel()

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == chat.RoleModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: strings.Join(turn.Parts, "\n")})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: newMessage})

	resp, err := c.backend.Chat.Generate(ctx, llm.Request{
		System:   c.lang.Persona,
		Messages: msgs,
	})
	if err != nil {
		return "", &CommunicationError{Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		c.log.Warn("tutor returned empty reply", "stop_reason", resp.StopReason)
		return c.lang.EmptyReply, nil
	}
	return resp.Text, nil
}

// GenerateImage synthesizes one square image from prompt. Blank prompts are
// rejected without contacting the backend.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &GenerationError{Message: c.lang.ImageNoPrompt, Err: ErrEmptyPrompt}
	}
	if c.backend.Image == nil {
		return nil, &GenerationError{
			Message: c.lang.ImageFailed,
			Err:     &llm.ErrCapabilityUnsupported{Provider: c.backend.Provider, Capability: "image generation"},
		}
	}

	ctx, cancel := c.bound(ctx, llm.PurposeImageGen)
	defer cancel()

	resp, err := c.backend.Image.GenerateImage(ctx, llm.ImageRequest{
		Prompt:      prompt,
		AspectRatio: imageAspectRatio,
	})
	if err != nil {
		return nil, &GenerationError{Message: c.lang.ImageFailed, Err: err}
	}
	if len(resp.Images) == 0 || len(resp.Images[0].Data) == 0 {
		return nil, &GenerationError{Message: c.lang.ImageNoPayload, Err: ErrNoImage}
	}

	first := resp.Images[0]
	return &Image{Prompt: prompt, MIMEType: first.MIMEType, Data: first.Data}, nil
}

// SearchGroundedAnswer answers query with live web grounding. It never
// fails: errors produce a degraded result with the apology text.
func (c *Client) SearchGroundedAnswer(ctx context.Context, query string) SearchResult {
	if c.backend.Search == nil {
		c.log.Warn("search requested but provider cannot ground", "provider", c.backend.Provider)
		return SearchResult{Text: c.lang.SearchFailed, Degraded: true}
	}

	ctx, cancel := c.bound(ctx, llm.PurposeSearch)
	defer cancel()

	resp, err := c.backend.Search.GenerateGrounded(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: query + c.lang.SearchSuffix}},
	})
	if err != nil {
		c.log.Warn("search failed", "error", err)
		return SearchResult{Text: c.lang.SearchFailed, Degraded: true}
	}

	text := resp.Text
	if strings.TrimSpace(text) == "" {
		text = c.lang.NoInformation
	}
	return SearchResult{Text: text, Sources: resp.Sources}
}
