// Package config loads the revise configuration from a TOML file with
// environment variable overrides. A .env file in the working directory is
// loaded first, so credentials can live next to the notes project instead
// of the shell profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/revisehq/revise-cli/internal/chunker"
	"github.com/revisehq/revise-cli/internal/core/domain"
)

// Environment variable overrides. Each takes precedence over the
// corresponding TOML value.
const (
	EnvNotionToken = "NOTION_TOKEN"
	EnvGroqAPIKey  = "GROQ_API_KEY"
	EnvHFAPIKey    = "HF_API_KEY"
	EnvQdrantAddr  = "QDRANT_ADDR"
	EnvOllamaHost  = "OLLAMA_HOST"
)

// DefaultDirName is the per-user configuration directory under $HOME.
const DefaultDirName = ".revise"

// Config is the full application configuration.
type Config struct {
	// DataDir holds the fingerprint cache and revision schedule files.
	// Defaults to the config directory.
	DataDir string `toml:"data_dir"`

	Notion    Notion    `toml:"notion"`
	Qdrant    Qdrant    `toml:"qdrant"`
	Embedding Embedding `toml:"embedding"`
	LLM       LLM       `toml:"llm"`
	Chunking  Chunking  `toml:"chunking"`
	Query     Query     `toml:"query"`
	Revision  Revision  `toml:"revision"`
}

// Notion configures the workspace connector.
type Notion struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// Qdrant configures the vector index.
type Qdrant struct {
	Address    string `toml:"address"`
	Collection string `toml:"collection"`
}

// Embedding configures the embedding provider.
type Embedding struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	Dimensions int    `toml:"dimensions"`
}

// LLM configures the chat model provider.
type LLM struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// Chunking configures retrieval chunk sizes.
type Chunking struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// Query configures retrieval for the query engine.
type Query struct {
	TopK int `toml:"top_k"`
}

// Revision configures the revision planner.
type Revision struct {
	IntervalDays    int    `toml:"interval_days"`
	TopicSeparators string `toml:"topic_separators"`
}

// DefaultPath returns the default config file location, ~/.revise/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, "config.toml"), nil
}

// Load reads configuration from the given TOML file. An empty path selects
// the default location; a missing file yields defaults plus environment
// overrides, which is enough for a .env-only setup.
func Load(path string) (*Config, error) {
	// Credentials beside the notes take precedence when present. A missing
	// .env is not an error.
	_ = godotenv.Load()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := defaults(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fine, defaults + env only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults(filepath.Dir(path))
	return cfg, nil
}

// defaults returns a config with every value the application can assume
// without user input.
func defaults(dir string) *Config {
	return &Config{
		DataDir: dir,
		Qdrant: Qdrant{
			Collection: "revise_notes",
		},
		Embedding: Embedding{
			Provider: string(domain.EmbeddingHuggingFace),
		},
		LLM: LLM{
			Provider: string(domain.LLMGroq),
		},
		Chunking: Chunking{
			Size:    chunker.DefaultChunkSize,
			Overlap: chunker.DefaultChunkOverlap,
		},
		Query: Query{
			TopK: domain.DefaultTopK,
		},
		Revision: Revision{
			IntervalDays:    domain.DefaultRevisionIntervalDays,
			TopicSeparators: domain.DefaultTopicSeparators,
		},
	}
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvNotionToken); v != "" {
		c.Notion.Token = v
	}
	if v := os.Getenv(EnvQdrantAddr); v != "" {
		c.Qdrant.Address = v
	}
	if v := os.Getenv(EnvGroqAPIKey); v != "" && c.LLM.Provider == string(domain.LLMGroq) {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvHFAPIKey); v != "" && c.Embedding.Provider == string(domain.EmbeddingHuggingFace) {
		c.Embedding.APIKey = v
	}
	if v := os.Getenv(EnvOllamaHost); v != "" {
		if c.Embedding.Provider == string(domain.EmbeddingOllama) {
			c.Embedding.BaseURL = v
		}
		if c.LLM.Provider == string(domain.LLMOllama) {
			c.LLM.BaseURL = v
		}
	}
}

// fillDefaults restores defaults a config file may have blanked out.
func (c *Config) fillDefaults(dir string) {
	if c.DataDir == "" {
		c.DataDir = dir
	}
	if c.Qdrant.Collection == "" {
		c.Qdrant.Collection = "revise_notes"
	}
	if c.Chunking.Size <= 0 {
		c.Chunking.Size = chunker.DefaultChunkSize
	}
	if c.Chunking.Overlap < 0 {
		c.Chunking.Overlap = chunker.DefaultChunkOverlap
	}
	if c.Query.TopK <= 0 {
		c.Query.TopK = domain.DefaultTopK
	}
	if c.Revision.IntervalDays <= 0 {
		c.Revision.IntervalDays = domain.DefaultRevisionIntervalDays
	}
	if c.Revision.TopicSeparators == "" {
		c.Revision.TopicSeparators = domain.DefaultTopicSeparators
	}
}

// Validate checks that every credential the configured providers need is
// present. Failures carry guidance; the caller reports them and exits
// before any remote call is made.
func (c *Config) Validate() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("%w: notion token missing (set %s or notion.token in config.toml)",
			domain.ErrNotConfigured, EnvNotionToken)
	}
	if c.Qdrant.Address == "" {
		return fmt.Errorf("%w: qdrant address missing (set %s or qdrant.address in config.toml)",
			domain.ErrNotConfigured, EnvQdrantAddr)
	}
	if !c.EmbeddingSettings().IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not usable (check model/api key, e.g. %s)",
			domain.ErrNotConfigured, c.Embedding.Provider, EnvHFAPIKey)
	}
	if !c.LLMSettings().IsConfigured() {
		return fmt.Errorf("%w: llm provider %q is not usable (check model/api key, e.g. %s)",
			domain.ErrNotConfigured, c.LLM.Provider, EnvGroqAPIKey)
	}
	return nil
}

// EmbeddingSettings converts the embedding section to domain settings.
func (c *Config) EmbeddingSettings() *domain.EmbeddingSettings {
	return &domain.EmbeddingSettings{
		Provider:   domain.EmbeddingProvider(c.Embedding.Provider),
		Model:      c.Embedding.Model,
		APIKey:     c.Embedding.APIKey,
		BaseURL:    c.Embedding.BaseURL,
		Dimensions: c.Embedding.Dimensions,
	}
}

// LLMSettings converts the llm section to domain settings.
func (c *Config) LLMSettings() *domain.LLMSettings {
	return &domain.LLMSettings{
		Provider: domain.LLMProvider(c.LLM.Provider),
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
	}
}

// FingerprintPath returns the fingerprint cache file location.
func (c *Config) FingerprintPath() string {
	return filepath.Join(c.DataDir, "fingerprints.json")
}

// SchedulePath returns the revision schedule file location.
func (c *Config) SchedulePath() string {
	return filepath.Join(c.DataDir, "revision_schedule.json")
}
