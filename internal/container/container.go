// Package container wires the application's components from configuration.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ecolens/carbon-csv/internal/analyzer"
	"ecolens/carbon-csv/internal/classifier"
	"ecolens/carbon-csv/internal/coach"
	"ecolens/carbon-csv/internal/config"
	"ecolens/carbon-csv/internal/factors"
	"ecolens/carbon-csv/internal/ingest"
	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/report"
	"ecolens/carbon-csv/internal/resultstore"
)

// Container holds the wired application components for one invocation.
type Container struct {
	Config   *config.Config
	Logger   logging.Logger
	Table    *factors.Table
	Usage    *classifier.Usage
	Analyzer *analyzer.Analyzer
	Store    *resultstore.Store

	genaiClient *genai.Client
}

// New builds the full component graph. The Gemini client is only created when
// AI is enabled and an API key is present; otherwise classification falls back
// to keyword matching against the factors table's hints.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	table, err := factors.NewStore(cfg.Factors.File, logger).Load()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Table:  table,
		Usage:  &classifier.Usage{},
	}

	var aiClient classifier.AIClient
	var recommender analyzer.Recommender

	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AI.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.genaiClient = client
		aiClient = classifier.NewGeminiClient(client, cfg.AI.Model, c.Usage, logger)

		if cfg.Coaching.Enabled {
			recommender = coach.New(client, cfg.Coaching.Model, c.Usage, logger)
		}
	} else {
		logger.Info("AI classification disabled, using keyword matching",
			logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})
		aiClient = classifier.NewKeywordClient(table.KeywordHints, logger)
	}

	if cfg.CSV.Delimiter != "" && cfg.CSV.Delimiter != "," {
		ingest.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}
	reader := ingest.NewReader(logger)

	if cfg.Results.HistoryEnabled {
		store, err := resultstore.Open(cfg.Results.HistoryFile, logger)
		if err != nil {
			return nil, err
		}
		c.Store = store
	}

	writer := report.NewWriter(cfg.Results.Directory, logger)

	c.Analyzer = analyzer.New(logger, reader, classifier.New(aiClient, logger),
		table, recommender, writer, c.Store, c.Usage)

	return c, nil
}

// RequestTimeout returns the configured per-request timeout for AI calls.
func (c *Container) RequestTimeout() time.Duration {
	return time.Duration(c.Config.AI.TimeoutSeconds) * time.Second
}

// Close releases the Gemini client and history store, if open.
func (c *Container) Close() {
	if c.genaiClient != nil {
		if err := c.genaiClient.Close(); err != nil {
			c.Logger.WithError(err).Warn("Failed to close Gemini client")
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Logger.WithError(err).Warn("Failed to close history store")
		}
	}
}
