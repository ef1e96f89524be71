package config

import (
	"fmt"
	"os"
	"strings"

	"eino_agentic_chat/pkg"

	"gopkg.in/yaml.v3"
)

const DefaultPageTitle = "LangGraph: Build Stateful Agentic AI graph"

// YAMLConfig represents the structure of config.yaml
type YAMLConfig struct {
	UI struct {
		PageTitle      string   `yaml:"page_title"`
		LLMOptions     []string `yaml:"llm_options"`
		UsecaseOptions []string `yaml:"usecase_options"`
	} `yaml:"ui"`
	Providers map[string]ProviderYAML `yaml:"providers"`
}

// ProviderYAML is one entry of the providers section
type ProviderYAML struct {
	Client         string   `yaml:"client"`
	BaseURL        string   `yaml:"base_url"`
	RequiresAPIKey *bool    `yaml:"requires_api_key"`
	Models         []string `yaml:"models"`
	Temperature    float64  `yaml:"temperature"`
	MaxTokens      int      `yaml:"max_tokens"`
}

// LoadConfig loads configuration from config.yaml
func LoadConfig(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates raw YAML configuration
func ParseConfig(data []byte) (*YAMLConfig, error) {
	var config YAMLConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	if len(config.UI.LLMOptions) == 0 {
		return nil, fmt.Errorf("ui.llm_options must list at least one provider")
	}
	for _, name := range config.UI.LLMOptions {
		p, ok := config.provider(name)
		if !ok {
			return nil, fmt.Errorf("llm option %q has no providers entry", name)
		}
		switch pkg.ClientType(strings.ToLower(p.Client)) {
		case pkg.ClientOpenAI, pkg.ClientDeepSeek, pkg.ClientArk, pkg.ClientOllama:
		default:
			return nil, fmt.Errorf("provider %q: unsupported client %q", name, p.Client)
		}
	}

	return &config, nil
}

// provider looks up a providers entry by display name, ignoring case
func (c *YAMLConfig) provider(name string) (ProviderYAML, bool) {
	if p, ok := c.Providers[name]; ok {
		return p, true
	}
	for key, p := range c.Providers {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return ProviderYAML{}, false
}

// PageTitle returns the header shown above the chat
func (c *YAMLConfig) PageTitle() string {
	if strings.TrimSpace(c.UI.PageTitle) == "" {
		return DefaultPageTitle
	}
	return c.UI.PageTitle
}

// LLMOptions returns the selectable providers in display order
func (c *YAMLConfig) LLMOptions() []string {
	return append([]string(nil), c.UI.LLMOptions...)
}

// UsecaseOptions returns the selectable use cases
func (c *YAMLConfig) UsecaseOptions() []string {
	return append([]string(nil), c.UI.UsecaseOptions...)
}

// ModelOptions returns the selectable models of a provider
func (c *YAMLConfig) ModelOptions(provider string) []string {
	p, ok := c.provider(provider)
	if !ok {
		return nil
	}
	return append([]string(nil), p.Models...)
}

// RequiresAPIKey reports whether a provider needs a credential. Providers
// require one unless the entry says otherwise.
func (c *YAMLConfig) RequiresAPIKey(provider string) bool {
	p, ok := c.provider(provider)
	if !ok || p.RequiresAPIKey == nil {
		return true
	}
	return *p.RequiresAPIKey
}

// BuildProviderConfigs creates the provider settings used by the model client factory
func (c *YAMLConfig) BuildProviderConfigs() []pkg.ProviderConfig {
	configs := make([]pkg.ProviderConfig, 0, len(c.UI.LLMOptions))
	for _, name := range c.UI.LLMOptions {
		p, _ := c.provider(name)
		configs = append(configs, pkg.ProviderConfig{
			Name:           name,
			Client:         pkg.ClientType(strings.ToLower(p.Client)),
			BaseURL:        p.BaseURL,
			RequiresAPIKey: c.RequiresAPIKey(name),
			Models:         append([]string(nil), p.Models...),
			Temperature:    p.Temperature,
			MaxTokens:      p.MaxTokens,
		})
	}
	return configs
}
