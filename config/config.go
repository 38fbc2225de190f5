package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the process configuration: directories, artifact locations,
// provider selection and model names. API keys come from the environment
// (or .env), never from the config file.
type Config struct {
	Port      string `mapstructure:"port"`
	PDFDir    string `mapstructure:"pdf_dir"`
	IndexDir  string `mapstructure:"index_dir"`
	StatsFile string `mapstructure:"stats_file"`
	Persona   string `mapstructure:"persona"`
	TopK      int    `mapstructure:"top_k"`

	// Provider is "gemini" or "openai" and selects both the embedder and
	// the generative client.
	Provider string `mapstructure:"provider"`

	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel          string `mapstructure:"gemini_model"`
	GeminiEmbeddingModel string `mapstructure:"gemini_embedding_model"`

	AIEndpoint           string `mapstructure:"ai_endpoint"`
	OpenAIAPIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel          string `mapstructure:"openai_model"`
	OpenAIEmbeddingModel string `mapstructure:"openai_embedding_model"`
}

// GeminiAPIKeys splits the GEMINI_API_KEY value on commas so several keys
// can be rotated through on failure.
func (c *Config) GeminiAPIKeys() []string {
	var keys []string
	for _, key := range strings.Split(c.GeminiAPIKey, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("pdf_dir", "PDF")
	v.SetDefault("index_dir", "indexed_pdfs")
	v.SetDefault("stats_file", "chunk_stats.json")
	v.SetDefault("top_k", 5)
	v.SetDefault("provider", "gemini")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("gemini_embedding_model", "text-embedding-004")
	v.SetDefault("ai_endpoint", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_embedding_model", "text-embedding-3-small")

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; defaults plus env cover a bare run.
		if _, statErr := os.Stat(configPath); statErr == nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}
