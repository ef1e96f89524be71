package pkg

import (
	"strings"
)

// Selection keys collected from the sidebar
const (
	KeySelectedLLM     = "selected_llm"
	KeySelectedUsecase = "selected_usecase"
)

// ModelKey returns the selection key holding the chosen model for a provider,
// e.g. "Groq" -> "selected_groq_model".
func ModelKey(provider string) string {
	name := strings.ToLower(strings.TrimSpace(provider))
	name = strings.ReplaceAll(name, " ", "_")
	return "selected_" + name + "_model"
}

// CredentialKey returns the selection key holding the API key for a provider,
// e.g. "Groq" -> "GROQ_API_KEY".
func CredentialKey(provider string) string {
	name := strings.ToUpper(strings.TrimSpace(provider))
	name = strings.ReplaceAll(name, " ", "_")
	return name + "_API_KEY"
}

// Selections is the mapping of selection keys to the values a user picked
// during one interaction cycle.
type Selections map[string]string

// Get returns the trimmed value stored under key
func (s Selections) Get(key string) string {
	return strings.TrimSpace(s[key])
}

// Provider returns the selected LLM provider
func (s Selections) Provider() string {
	return s.Get(KeySelectedLLM)
}

// Model returns the model selected for the current provider
func (s Selections) Model() string {
	return s.Get(ModelKey(s.Provider()))
}

// APIKey returns the credential entered for the current provider
func (s Selections) APIKey() string {
	return s.Get(CredentialKey(s.Provider()))
}

// Usecase returns the selected use case
func (s Selections) Usecase() string {
	return s.Get(KeySelectedUsecase)
}

// Credentials builds the value handed to the model client factory
func (s Selections) Credentials() Credentials {
	return Credentials{
		Provider: s.Provider(),
		Model:    s.Model(),
		APIKey:   s.APIKey(),
	}
}

// Clone returns an independent copy of the mapping
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Credentials identifies the model a client should be built for
type Credentials struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"-"`
}

// ClientType names the eino-ext chat model implementation used for a provider
type ClientType string

const (
	ClientOpenAI   ClientType = "openai" // OpenAI-compatible endpoints (Groq, OpenAI, OpenRouter)
	ClientDeepSeek ClientType = "deepseek"
	ClientArk      ClientType = "ark"
	ClientOllama   ClientType = "ollama"
)

// ProviderConfig holds the settings of one selectable LLM provider
type ProviderConfig struct {
	Name           string     `json:"name"`
	Client         ClientType `json:"client"`
	BaseURL        string     `json:"base_url"`
	RequiresAPIKey bool       `json:"requires_api_key"`
	Models         []string   `json:"models"`
	Temperature    float64    `json:"temperature"`
	MaxTokens      int        `json:"max_tokens"`
}
