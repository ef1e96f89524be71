package src

import (
	"eino_agentic_chat/src/model"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment. Sections are embedded so their keys
// are not prefixed with the section name.
type Config struct {
	model.LogConfig
	model.AppConfig
}

func LoadConfig() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	return &config, nil
}
