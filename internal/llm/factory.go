package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eino_agentic_chat/pkg"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/ollama/ollama/api"
)

var (
	// ErrUnknownProvider indicates the selected provider has no configuration.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingModel indicates no model was selected for the provider.
	ErrMissingModel = errors.New("no model selected")

	// ErrMissingCredential indicates the provider needs an API key and none was given.
	ErrMissingCredential = errors.New("api key is required")
)

// constructor builds a chat model for one client type
type constructor func(ctx context.Context, cfg pkg.ProviderConfig, creds pkg.Credentials) (model.BaseChatModel, error)

// Factory creates eino chat models for the configured providers
type Factory struct {
	providers    map[string]pkg.ProviderConfig
	constructors map[pkg.ClientType]constructor
}

// NewFactory creates a model client factory over the given providers
func NewFactory(providers []pkg.ProviderConfig) *Factory {
	f := &Factory{
		providers: make(map[string]pkg.ProviderConfig, len(providers)),
		constructors: map[pkg.ClientType]constructor{
			pkg.ClientOpenAI:   newOpenAIModel,
			pkg.ClientDeepSeek: newDeepSeekModel,
			pkg.ClientArk:      newArkModel,
			pkg.ClientOllama:   newOllamaModel,
		},
	}
	for _, p := range providers {
		f.providers[providerKey(p.Name)] = p
	}
	return f
}

// Provider returns the configuration of a provider by display name
func (f *Factory) Provider(name string) (pkg.ProviderConfig, bool) {
	p, ok := f.providers[providerKey(name)]
	return p, ok
}

// NewChatModel builds a chat model handle for the given credentials. Missing
// credentials are rejected before any client is constructed.
func (f *Factory) NewChatModel(ctx context.Context, creds pkg.Credentials) (model.BaseChatModel, error) {
	cfg, ok := f.Provider(creds.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, creds.Provider)
	}
	if strings.TrimSpace(creds.Model) == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrMissingModel)
	}
	if cfg.RequiresAPIKey && strings.TrimSpace(creds.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrMissingCredential)
	}

	build, ok := f.constructors[cfg.Client]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported client %q", cfg.Name, cfg.Client)
	}

	m, err := build(ctx, cfg, creds)
	if err != nil {
		return nil, fmt.Errorf("error creating %s chat model: %w", cfg.Name, err)
	}
	return m, nil
}

func providerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newOpenAIModel(ctx context.Context, cfg pkg.ProviderConfig, creds pkg.Credentials) (model.BaseChatModel, error) {
	modelConfig := &openai.ChatModelConfig{
		APIKey:  creds.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   creds.Model,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}
	if cfg.Temperature > 0 {
		temperature := float32(cfg.Temperature)
		modelConfig.Temperature = &temperature
	}

	m, err := openai.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newDeepSeekModel(ctx context.Context, cfg pkg.ProviderConfig, creds pkg.Credentials) (model.BaseChatModel, error) {
	m, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:      creds.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       creds.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: float32(cfg.Temperature),
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newArkModel(ctx context.Context, cfg pkg.ProviderConfig, creds pkg.Credentials) (model.BaseChatModel, error) {
	modelConfig := &ark.ChatModelConfig{
		APIKey:  creds.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   creds.Model,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}
	if cfg.Temperature > 0 {
		temperature := float32(cfg.Temperature)
		modelConfig.Temperature = &temperature
	}

	m, err := ark.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newOllamaModel(ctx context.Context, cfg pkg.ProviderConfig, creds pkg.Credentials) (model.BaseChatModel, error) {
	modelConfig := &ollama.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Model:   creds.Model,
	}
	if cfg.Temperature > 0 || cfg.MaxTokens > 0 {
		modelConfig.Options = &api.Options{
			Temperature: float32(cfg.Temperature),
			NumPredict:  cfg.MaxTokens,
		}
	}

	m, err := ollama.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}
	return m, nil
}
