package classifier

import (
	"context"
	"fmt"

	"ecolens/carbon-csv/internal/logging"
	"ecolens/carbon-csv/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// Low temperature keeps categorization consistent across runs.
const classificationTemperature = 0.3

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	model  *genai.GenerativeModel
	usage  *Usage
	logger logging.Logger
}

// NewGeminiClient creates a GeminiClient from an existing genai client. The
// usage accumulator is shared with the caller so the session total includes
// every call made through this client.
func NewGeminiClient(client *genai.Client, modelName string, usage *Usage, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.GetLogger()
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(classificationTemperature)
	return &GeminiClient{
		model:  model,
		usage:  usage,
		logger: logger,
	}
}

// Name identifies the client for logging.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// ClassifyBatch sends the whole batch in one prompt and decodes the JSON
// answer. Any malformed response is returned as an error; the caller owns the
// fallback policy.
func (c *GeminiClient) ClassifyBatch(ctx context.Context, txs []models.Transaction) ([]Classification, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	prompt := buildPrompt(txs)

	c.logger.Debug("Sending categorization batch",
		logging.Field{Key: "transactions", Value: len(txs)})

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	if c.usage != nil {
		c.usage.Record(estimateTokens(prompt), estimateTokens(responseText))
	}

	classifications, err := parseResponse(responseText, len(txs))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Batch categorized",
		logging.Field{Key: "transactions", Value: len(classifications)})

	return classifications, nil
}
