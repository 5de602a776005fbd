package llm

import (
	"context"
)

// Provider is the core abstraction for text generation.
type Provider interface {
	// Generate sends a conversation to the model and returns its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ImageGenerator is implemented by providers that can synthesize images.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
	ImageModelID() string
}

// SearchGrounder is implemented by providers that can answer with live web
// search grounding.
type SearchGrounder interface {
	GenerateGrounded(ctx context.Context, req Request) (*GroundedResponse, error)
	SearchModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's persona and constraints.
	System string

	// Messages is the conversation history, oldest first. The last message
	// is the one being answered.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's text output.
type Response struct {
	// Text is the generated reply. It may be empty when the model returned
	// no text parts.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "safety"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ImageRequest asks for a single image synthesized from a text prompt.
type ImageRequest struct {
	Prompt string

	// AspectRatio such as "1:1" or "16:9".
	AspectRatio string
}

// InlineData is binary content returned inline by the model.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// ImageResponse holds the images (possibly none) and any accompanying text.
type ImageResponse struct {
	Images     []InlineData
	Text       string
	Usage      Usage
	Model      string
	StopReason string
}

// Source is a web page the model grounded its answer on.
type Source struct {
	Title string
	URI   string
}

// GroundedResponse is a text response plus the sources it cites.
type GroundedResponse struct {
	Response
	Sources []Source
}
