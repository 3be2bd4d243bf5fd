package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"ecolens/carbon-csv/internal/models"
)

// categoryGuide describes each category for the model, with merchant
// examples. Order matches models.AllCategories.
var categoryGuide = []string{
	"air_travel: Flights, airlines (Delta, United, Southwest, etc.)",
	"ground_transport: Uber, Lyft, taxis, gas stations (Shell, Chevron, etc.)",
	"food_restaurant: Restaurants, cafes, fast food (Starbucks, Chipotle, etc.)",
	"groceries: Grocery stores (Whole Foods, Safeway, Trader Joe's, etc.)",
	"electricity: Utility bills, power companies (PG&E, Duke Energy, etc.)",
	"natural_gas: Gas utilities, heating bills",
	"goods_electronics: Electronics stores (Amazon, Best Buy, Apple Store, etc.)",
	"goods_clothing: Clothing stores (Nordstrom, Gap, H&M, etc.)",
	"goods_general: Other purchases (Target, Walmart, general merchandise)",
}

// buildPrompt renders the batch categorization prompt. The model must answer
// with pure JSON, one entry per transaction in input order.
func buildPrompt(txs []models.Transaction) string {
	var lines []string
	for _, tx := range txs {
		lines = append(lines, fmt.Sprintf("- %s ($%s)", tx.Description, tx.Amount.Amount.StringFixed(2)))
	}

	return fmt.Sprintf(`You are an expert at categorizing financial transactions for carbon footprint analysis.

AVAILABLE CATEGORIES:
- %s

TRANSACTIONS TO CATEGORIZE:
%s

INSTRUCTIONS:
1. Categorize each transaction based on the merchant/description
2. Use your best judgment for unclear cases
3. Return ONLY valid JSON (no markdown, no explanations)
4. Include confidence level: high/medium/low
5. Keep the transactions in the exact order given

REQUIRED JSON FORMAT:
{
  "categorized_transactions": [
    {
      "description": "exact original description",
      "category": "chosen_category",
      "confidence": "high/medium/low"
    }
  ]
}

Remember: Return ONLY the JSON object, nothing else.`,
		strings.Join(categoryGuide, "\n- "),
		strings.Join(lines, "\n"))
}

type responseEntry struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Confidence  string `json:"confidence"`
}

type batchResponse struct {
	CategorizedTransactions []responseEntry `json:"categorized_transactions"`
}

// parseResponse decodes the model's JSON answer into one Classification per
// expected transaction. Markdown code fences are tolerated and stripped; any
// other deviation from the contract is an error.
func parseResponse(text string, expected int) ([]Classification, error) {
	text = stripCodeFences(text)

	var resp batchResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if len(resp.CategorizedTransactions) != expected {
		return nil, fmt.Errorf("expected %d categorized transactions, got %d",
			expected, len(resp.CategorizedTransactions))
	}

	classifications := make([]Classification, 0, expected)
	for _, entry := range resp.CategorizedTransactions {
		classifications = append(classifications, Classification{
			Category:   models.ParseCategory(entry.Category),
			Confidence: models.ParseConfidence(entry.Confidence),
		})
	}
	return classifications, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if the model
// ignored the no-markdown instruction.
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
