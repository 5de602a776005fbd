// Package config loads visiontour settings from flags, environment variables
// and a TOML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/visiontour/internal/llm"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "VISIONTOUR"
	appDir     = "visiontour"
)

// Config is the resolved application configuration.
type Config struct {
	Provider   string         `mapstructure:"provider"`
	Language   string         `mapstructure:"language"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	DB         string         `mapstructure:"db"`
	Log        LogConfig      `mapstructure:"log"`
	Images     ImagesConfig   `mapstructure:"images"`
	Gemini     GeminiConfig   `mapstructure:"gemini"`
	Anthropic  ModelConfig    `mapstructure:"anthropic"`
	OpenAI     EndpointConfig `mapstructure:"openai"`
	OpenRouter EndpointConfig `mapstructure:"openrouter"`
	Retry      RetryConfig    `mapstructure:"retry"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

type ImagesConfig struct {
	Dir string `mapstructure:"dir"`
}

type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	ChatModel   string `mapstructure:"chat_model"`
	ImageModel  string `mapstructure:"image_model"`
	SearchModel string `mapstructure:"search_model"`
}

type ModelConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type EndpointConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// keys lists every setting so each can be bound to its VISIONTOUR_* variable.
var keys = []string{
	"provider", "language", "timeout", "db",
	"log.file", "log.mode", "log.level",
	"images.dir",
	"gemini.api_key", "gemini.chat_model", "gemini.image_model", "gemini.search_model",
	"anthropic.api_key", "anthropic.model",
	"openai.api_key", "openai.model", "openai.base_url",
	"openrouter.api_key", "openrouter.model", "openrouter.base_url",
	"retry.max_attempts", "retry.initial_wait", "retry.max_wait", "retry.multiplier",
}

// flagKeys maps command-line flag names to the setting they override.
var flagKeys = map[string]string{
	"db":       "db",
	"provider": "provider",
	"language": "language",
}

// Default returns the built-in configuration.
func Default() *Config {
	d := llm.DefaultConfig()
	return &Config{
		Provider: d.Provider,
		Language: "es",
		Timeout:  d.Timeout,
		Log: LogConfig{
			File:  DefaultLogPath(),
			Mode:  "dev",
			Level: "info",
		},
		Images: ImagesConfig{Dir: DefaultImagesDir()},
		Gemini: GeminiConfig{
			ChatModel:   d.Gemini.Model,
			ImageModel:  d.Gemini.ImageModel,
			SearchModel: d.Gemini.SearchModel,
		},
		Anthropic:  ModelConfig{Model: d.Anthropic.Model},
		OpenAI:     EndpointConfig{Model: d.OpenAI.Model},
		OpenRouter: EndpointConfig{Model: d.OpenRouter.Model},
		Retry: RetryConfig{
			MaxAttempts: d.Retry.MaxAttempts,
			InitialWait: d.Retry.InitialWait,
			MaxWait:     d.Retry.MaxWait,
			Multiplier:  d.Retry.Multiplier,
		},
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty, config.toml is looked up
	// in the default config directory and a missing file is not an error.
	File string

	// Flags, when set, override file and env values for the flags in flagKeys
	// that the user changed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration, validates it and fills API keys from the
// provider's conventional environment variable when not set otherwise.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType(configType)
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(DefaultDir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}

	discoverAPIKeys(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("provider", d.Provider)
	v.SetDefault("language", d.Language)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("db", d.DB)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("images.dir", d.Images.Dir)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.chat_model", d.Gemini.ChatModel)
	v.SetDefault("gemini.image_model", d.Gemini.ImageModel)
	v.SetDefault("gemini.search_model", d.Gemini.SearchModel)
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", d.Anthropic.Model)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", d.OpenAI.Model)
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.model", d.OpenRouter.Model)
	v.SetDefault("openrouter.base_url", "")
	v.SetDefault("retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("retry.multiplier", d.Retry.Multiplier)
}

// discoverAPIKeys fills empty provider keys from the SDKs' conventional
// environment variables.
func discoverAPIKeys(cfg *Config) {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	fill(&cfg.Gemini.APIKey, "GOOGLE_API_KEY")
	fill(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
}

// LLM converts the settings into the provider layer's configuration.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Provider: c.Provider,
		Gemini: llm.GeminiConfig{
			APIKey:      c.Gemini.APIKey,
			Model:       c.Gemini.ChatModel,
			ImageModel:  c.Gemini.ImageModel,
			SearchModel: c.Gemini.SearchModel,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: c.Anthropic.APIKey,
			Model:  c.Anthropic.Model,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenAI.APIKey,
			Model:   c.OpenAI.Model,
			BaseURL: c.OpenAI.BaseURL,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.OpenRouter.APIKey,
			Model:   c.OpenRouter.Model,
			BaseURL: c.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.Retry.MaxAttempts,
			InitialWait: c.Retry.InitialWait,
			MaxWait:     c.Retry.MaxWait,
			Multiplier:  c.Retry.Multiplier,
		},
		Timeout: c.Timeout,
	}
}

// DefaultDir returns $XDG_CONFIG_HOME/visiontour, falling back to
// ~/.config/visiontour.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appDir
	}
	return filepath.Join(home, ".config", appDir)
}

// DefaultPath returns the config file Load reads when no file is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), configName+"."+configType)
}

// DefaultLogPath returns $XDG_STATE_HOME/visiontour/visiontour.log, falling
// back to ~/.local/state.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir, "visiontour.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appDir, "visiontour.log")
}

// DefaultImagesDir is where generated images are saved.
func DefaultImagesDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDir, "images")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "images"
	}
	return filepath.Join(home, ".local", "share", appDir, "images")
}
