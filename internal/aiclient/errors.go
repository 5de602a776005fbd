package aiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPrompt is returned for blank image prompts; no request is sent.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrNoImage means the model answered without an inline image.
	ErrNoImage = errors.New("no image in response")
)

// CommunicationError reports a failed tutor chat exchange.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("tutor chat failed: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// GenerationError reports a failed image generation. Message is the text
// shown to the learner.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("image generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
