// Package cli implements the revise command tree. Commands talk to the
// core services through driving ports held in package variables; tests swap
// the variables for mocks, Execute wires the real services lazily so
// commands only pay for the dependencies they touch.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revisehq/revise-cli/internal/adapters/driven/ai"
	"github.com/revisehq/revise-cli/internal/adapters/driven/store/file"
	"github.com/revisehq/revise-cli/internal/adapters/driven/vector/qdrant"
	"github.com/revisehq/revise-cli/internal/chunker"
	"github.com/revisehq/revise-cli/internal/config"
	"github.com/revisehq/revise-cli/internal/connectors/notion"
	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/core/ports/driving"
	"github.com/revisehq/revise-cli/internal/core/services"
	"github.com/revisehq/revise-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Tests assign mocks directly.
var (
	pageSource      driven.PageSource
	indexer         driving.Indexer
	queryEngine     driving.QueryEngine
	revisionPlanner driving.RevisionPlanner
)

var (
	verboseFlag    bool
	configPathFlag string

	loadedConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "revise",
	Short: "Study assistant over your workspace notes",
	Long: `revise keeps a vector index in step with your workspace notes and
answers questions, generates quizzes and tracks revision recency over them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "config file (default ~/.revise/config.toml)")
}

// Execute runs the root command. Returns a non-nil error for main to report.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig loads configuration once per invocation.
func getConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

// initSource wires the workspace page source.
func initSource() error {
	if pageSource != nil {
		return nil
	}
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if cfg.Notion.Token == "" {
		return fmt.Errorf("%w: notion token missing (set %s or notion.token in config.toml)",
			domain.ErrNotConfigured, config.EnvNotionToken)
	}

	source, err := notion.NewSource(notion.Config{
		Token:   cfg.Notion.Token,
		BaseURL: cfg.Notion.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("notion source: %w", err)
	}
	pageSource = source
	return nil
}

// initPlanner wires the revision planner. Purely local, no credentials.
func initPlanner() error {
	if revisionPlanner != nil {
		return nil
	}
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	revisionPlanner = services.NewRevisionPlanner(
		file.NewScheduleStore(cfg.SchedulePath()),
		cfg.Revision.TopicSeparators,
	)
	return nil
}

// initAI wires the indexer and query engine: embedding service, LLM and
// vector index, each validated with a ping before first use.
func initAI() error {
	if indexer != nil && queryEngine != nil {
		return nil
	}
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return err
	}
	llm, err := ai.CreateAndValidateLLMService(cfg.LLMSettings())
	if err != nil {
		return err
	}
	index, err := qdrant.New(qdrant.Config{
		Address:    cfg.Qdrant.Address,
		Collection: cfg.Qdrant.Collection,
	})
	if err != nil {
		return fmt.Errorf("qdrant index: %w", err)
	}

	if indexer == nil {
		splitter, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
		if err != nil {
			return fmt.Errorf("chunking config: %w", err)
		}
		indexer = services.NewIndexer(
			index,
			embedder,
			file.NewFingerprintStore(cfg.FingerprintPath()),
			splitter,
		)
	}
	if queryEngine == nil {
		queryEngine = services.NewQueryEngine(embedder, index, llm, cfg.Query.TopK)
	}
	return nil
}
