package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configFileMode = 0o600
	configDirMode  = 0o700
	tempPattern    = ".config-*.toml.tmp"
)

// fileSchema is the on-disk TOML layout. Durations are written as strings
// such as "60s" which viper decodes back into time.Duration.
type fileSchema struct {
	Provider   string         `toml:"provider"`
	Language   string         `toml:"language"`
	Timeout    string         `toml:"timeout"`
	DB         string         `toml:"db,omitempty"`
	Log        logSchema      `toml:"log"`
	Images     imagesSchema   `toml:"images"`
	Gemini     geminiSchema   `toml:"gemini"`
	Anthropic  modelSchema    `toml:"anthropic"`
	OpenAI     endpointSchema `toml:"openai"`
	OpenRouter endpointSchema `toml:"openrouter"`
	Retry      retrySchema    `toml:"retry"`
}

type logSchema struct {
	File  string `toml:"file"`
	Mode  string `toml:"mode"`
	Level string `toml:"level"`
}

type imagesSchema struct {
	Dir string `toml:"dir"`
}

type geminiSchema struct {
	APIKey      string `toml:"api_key"`
	ChatModel   string `toml:"chat_model"`
	ImageModel  string `toml:"image_model"`
	SearchModel string `toml:"search_model"`
}

type modelSchema struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type endpointSchema struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url,omitempty"`
}

type retrySchema struct {
	MaxAttempts int     `toml:"max_attempts"`
	InitialWait string  `toml:"initial_wait"`
	MaxWait     string  `toml:"max_wait"`
	Multiplier  float64 `toml:"multiplier"`
}

func toSchema(c *Config) fileSchema {
	return fileSchema{
		Provider: c.Provider,
		Language: c.Language,
		Timeout:  c.Timeout.String(),
		DB:       c.DB,
		Log:      logSchema{File: c.Log.File, Mode: c.Log.Mode, Level: c.Log.Level},
		Images:   imagesSchema{Dir: c.Images.Dir},
		Gemini: geminiSchema{
			APIKey:      c.Gemini.APIKey,
			ChatModel:   c.Gemini.ChatModel,
			ImageModel:  c.Gemini.ImageModel,
			SearchModel: c.Gemini.SearchModel,
		},
		Anthropic:  modelSchema{APIKey: c.Anthropic.APIKey, Model: c.Anthropic.Model},
		OpenAI:     endpointSchema{APIKey: c.OpenAI.APIKey, Model: c.OpenAI.Model, BaseURL: c.OpenAI.BaseURL},
		OpenRouter: endpointSchema{APIKey: c.OpenRouter.APIKey, Model: c.OpenRouter.Model, BaseURL: c.OpenRouter.BaseURL},
		Retry: retrySchema{
			MaxAttempts: c.Retry.MaxAttempts,
			InitialWait: c.Retry.InitialWait.String(),
			MaxWait:     c.Retry.MaxWait.String(),
			Multiplier:  c.Retry.Multiplier,
		},
	}
}

// Save writes c to path as TOML, atomically and readable only by the owner
// since it may hold API keys.
func Save(path string, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(toSchema(c))
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
