package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "visiontour://config.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Validate checks the resolved settings against the embedded JSON Schema.
// API keys are not part of the document and are checked when the provider
// is built.
func (c *Config) Validate() error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(c.document()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// document renders the settings as a JSON-like value with durations in seconds.
func (c *Config) document() map[string]any {
	return map[string]any{
		"provider":        c.Provider,
		"language":        c.Language,
		"timeout_seconds": c.Timeout.Seconds(),
		"db":              c.DB,
		"log": map[string]any{
			"file":  c.Log.File,
			"mode":  c.Log.Mode,
			"level": c.Log.Level,
		},
		"images": map[string]any{
			"dir": c.Images.Dir,
		},
		"gemini": map[string]any{
			"chat_model":   c.Gemini.ChatModel,
			"image_model":  c.Gemini.ImageModel,
			"search_model": c.Gemini.SearchModel,
		},
		"anthropic": map[string]any{
			"model": c.Anthropic.Model,
		},
		"openai": map[string]any{
			"model":    c.OpenAI.Model,
			"base_url": c.OpenAI.BaseURL,
		},
		"openrouter": map[string]any{
			"model":    c.OpenRouter.Model,
			"base_url": c.OpenRouter.BaseURL,
		},
		"retry": map[string]any{
			"max_attempts":         c.Retry.MaxAttempts,
			"initial_wait_seconds": c.Retry.InitialWait.Seconds(),
			"max_wait_seconds":     c.Retry.MaxWait.Seconds(),
			"multiplier":           c.Retry.Multiplier,
		},
	}
}
