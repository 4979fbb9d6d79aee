package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// GeminiConfig configures the generative-language client.
type GeminiConfig struct {
	Model          string `json:"model" mapstructure:"model"`
	EmbeddingModel string `json:"embedding_model" mapstructure:"embedding_model"`
	// APIKeyEnv names the environment variable holding the API key. The key
	// itself never appears in the config file.
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env"`
}

// Config represents the process configuration.
type Config struct {
	// ProjectID is the Google Cloud project identifier
	ProjectID string `json:"project_id" mapstructure:"project_id"`
	// Location is the Discovery Engine location
	Location string `json:"location" mapstructure:"location"`
	// Collection is the Discovery Engine collection
	Collection string `json:"collection" mapstructure:"collection"`
	// EngineID is the search engine serving Search and Answer calls
	EngineID string `json:"engine_id" mapstructure:"engine_id"`
	// DataStoreID is the default data store for chunk and document reads
	DataStoreID string `json:"data_store_id" mapstructure:"data_store_id"`
	// Branch is the data store branch documents are indexed under
	Branch string `json:"branch" mapstructure:"branch"`
	// HTTPTimeoutSeconds bounds every upstream HTTP exchange
	HTTPTimeoutSeconds int `json:"http_timeout_seconds" mapstructure:"http_timeout_seconds"`
	// Verbose enables request logging
	Verbose bool `json:"verbose" mapstructure:"verbose"`
	// Gemini configures the generative-language client
	Gemini GeminiConfig `json:"gemini" mapstructure:"gemini"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Failed to close config file: %v", err)
		}
	}()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Location == "" {
		c.Location = "global"
	}
	if c.Collection == "" {
		c.Collection = "default_collection"
	}
	if c.Branch == "" {
		c.Branch = "default_branch"
	}
	if c.HTTPTimeoutSeconds == 0 {
		c.HTTPTimeoutSeconds = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-pro"
	}
	if c.Gemini.EmbeddingModel == "" {
		c.Gemini.EmbeddingModel = "text-embedding-004"
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
}

// Validate reports the first missing mandatory field.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if c.EngineID == "" {
		return fmt.Errorf("engine_id is required")
	}
	return nil
}

// HTTPTimeout returns the upstream HTTP timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// GeminiAPIKey reads the API key from the configured environment variable.
func (c *Config) GeminiAPIKey() (string, error) {
	key := os.Getenv(c.Gemini.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.Gemini.APIKeyEnv)
	}
	return key, nil
}
