package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects a provider and carries the settings of every provider so
// switching only needs Provider to change.
type Config struct {
	Provider   string           `mapstructure:"provider"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one Generate call including its retries. Zero means
	// no bound.
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
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

// configDefaults lists every config key with its default. Each key is also
// read from the environment under envName(key).
var configDefaults = map[string]any{
	"provider":            ProviderGemini,
	"timeout":             "60s",
	"anthropic.api_key":   "",
	"anthropic.model":     "claude-haiku",
	"openai.api_key":      "",
	"openai.model":        "gpt-4o-mini",
	"openai.base_url":     "",
	"gemini.api_key":      "",
	"gemini.model":        "gemini-flash",
	"openrouter.api_key":  "",
	"openrouter.model":    "google/gemini-2.5-flash",
	"openrouter.base_url": "",
	"retry.max_attempts":  3,
	"retry.initial_wait":  "1s",
	"retry.max_wait":      "10s",
	"retry.multiplier":    2.0,
}

// envName maps a config key to its variable: anthropic.api_key is
// EXAMDRILL_ANTHROPIC_API_KEY. Top-level keys get an LLM_ infix.
func envName(key string) string {
	if !strings.Contains(key, ".") {
		key = "llm." + key
	}
	return "EXAMDRILL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func newConfigViper(withEnv bool) *viper.Viper {
	v := viper.New()
	for k, def := range configDefaults {
		v.SetDefault(k, def)
		if withEnv {
			_ = v.BindEnv(k, envName(k))
		}
	}
	return v
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode LLM config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig has Gemini selected and no API keys.
func DefaultConfig() Config {
	cfg, err := decodeConfig(newConfigViper(false))
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFromEnv overlays EXAMDRILL_* variables on DefaultConfig. A value
// that does not parse, such as a malformed EXAMDRILL_LLM_TIMEOUT, leaves
// its default in place.
func ConfigFromEnv() Config {
	v := newConfigViper(true)
	for k, def := range configDefaults {
		if os.Getenv(envName(k)) == "" {
			continue
		}
		single := viper.New()
		single.Set(k, v.Get(k))
		if _, err := decodeConfig(single); err != nil {
			v.Set(k, def)
		}
	}
	cfg, err := decodeConfig(v)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// standardKeys are the vendor variables DiscoverConfig checks, in order.
var standardKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig picks the first provider whose vendor API key variable is
// set. It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, sk := range standardKeys {
		key := os.Getenv(sk.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = sk.provider
		*cfg.apiKey() = key
		return cfg, true
	}
	return Config{}, false
}

// apiKey points at the key field of the selected provider, or nil for
// providers without one.
func (c *Config) apiKey() *string {
	switch c.Provider {
	case ProviderAnthropic:
		return &c.Anthropic.APIKey
	case ProviderOpenAI:
		return &c.OpenAI.APIKey
	case ProviderGemini:
		return &c.Gemini.APIKey
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate checks the provider name and that it has an API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	key := c.apiKey()
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName(c.Provider+".api_key"), c.Provider)
	}
	return nil
}
