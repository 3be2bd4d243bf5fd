// Package coach generates emission reduction recommendations from an
// analysis result. It is a pass-through adapter over the inference service;
// there is no domain logic here and a malformed response degrades to an empty
// recommendation list rather than failing the run.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ecolens/carbon-csv/internal/classifier"
	"ecolens/carbon-csv/internal/emissions"
	"ecolens/carbon-csv/internal/logging"

	"github.com/google/generative-ai-go/genai"
)

// Higher temperature than classification; suggestions benefit from variety.
const coachingTemperature = 0.7

// Recommendation is one concrete reduction action.
type Recommendation struct {
	Action             string  `json:"action"`
	PotentialSavingsKg float64 `json:"potential_savings_kg"`
	Difficulty         string  `json:"difficulty"`
	Timeline           string  `json:"timeline"`
	Why                string  `json:"why"`
}

// Coaching is the full recommendation set for one analysis.
type Coaching struct {
	Recommendations         []Recommendation `json:"recommendations"`
	OverallStrategy         string           `json:"overall_strategy"`
	RealisticAnnualTargetKg float64          `json:"realistic_annual_target_kg"`
}

// Coach produces coaching recommendations via the Gemini API.
type Coach struct {
	model  *genai.GenerativeModel
	usage  *classifier.Usage
	logger logging.Logger
}

// New creates a Coach from an existing genai client, sharing the session
// usage accumulator.
func New(client *genai.Client, modelName string, usage *classifier.Usage, logger logging.Logger) *Coach {
	if logger == nil {
		logger = logging.GetLogger()
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(coachingTemperature)
	return &Coach{
		model:  model,
		usage:  usage,
		logger: logger,
	}
}

// Recommend asks the model for up to five reduction recommendations based on
// the breakdown and benchmarks. It never returns an error for a malformed
// response, only for transport failures; parse failures degrade to the
// static fallback.
func (c *Coach) Recommend(ctx context.Context, result emissions.Result, bench emissions.BenchmarkComparison) (Coaching, error) {
	prompt := buildPrompt(result, bench)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Coaching{}, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Coaching{}, fmt.Errorf("no response from gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if c.usage != nil {
		c.usage.Record(int64(len(prompt)/4), int64(len(responseText)/4))
	}

	var coaching Coaching
	if err := json.Unmarshal([]byte(stripCodeFences(responseText)), &coaching); err != nil {
		c.logger.WithError(err).Warn("Could not parse coaching response, using fallback")
		return fallbackCoaching(bench), nil
	}

	c.logger.Info("Generated coaching recommendations",
		logging.Field{Key: "count", Value: len(coaching.Recommendations)})
	return coaching, nil
}

// buildPrompt renders the coaching prompt from the top emission sources and
// the benchmark context.
func buildPrompt(result emissions.Result, bench emissions.BenchmarkComparison) string {
	top := result.Breakdown
	if len(top) > 3 {
		top = top[:3]
	}
	var topLines []string
	for _, b := range top {
		topLines = append(topLines, fmt.Sprintf("- %s: %.2f kg CO2 (%.1f%% of total)",
			b.Category, b.EmissionsKg, b.Percentage))
	}

	return fmt.Sprintf(`You are an expert environmental coach helping someone reduce their carbon footprint.

CURRENT SITUATION:
- Total emissions for the period: %.2f kg CO2
- Projected annual emissions: %.0f kg CO2
- Top emission sources:
%s

GLOBAL CONTEXT (annual kg CO2):
- Domestic average: %.0f
- Global average: %.0f
- Treaty target: %.0f
- Regional average: %.0f

YOUR TASK:
Generate up to 5 specific, actionable recommendations to reduce emissions.
Focus on the highest-impact categories first, give concrete actions, estimate
realistic annual savings in kg, rate difficulty (easy/medium/hard), suggest a
timeline, and explain why each works.

Return ONLY valid JSON in this format:
{
  "recommendations": [
    {
      "action": "...",
      "potential_savings_kg": 0,
      "difficulty": "easy/medium/hard",
      "timeline": "...",
      "why": "..."
    }
  ],
  "overall_strategy": "...",
  "realistic_annual_target_kg": 0
}`,
		result.TotalEmissionsKg,
		bench.AnnualProjectionKg,
		strings.Join(topLines, "\n"),
		bench.References.DomesticAnnualKg,
		bench.References.GlobalAnnualKg,
		bench.References.TreatyTargetAnnualKg,
		bench.References.RegionalAnnualKg)
}

func fallbackCoaching(bench emissions.BenchmarkComparison) Coaching {
	return Coaching{
		Recommendations:         []Recommendation{},
		OverallStrategy:         "Unable to generate recommendations at this time.",
		RealisticAnnualTargetKg: bench.AnnualProjectionKg,
	}
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
