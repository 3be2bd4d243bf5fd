package classifier

// Pricing per million tokens, used for the session cost estimate.
const (
	inputCostPer1M  = 0.10
	outputCostPer1M = 0.40
)

// Usage accumulates model call counts and token estimates for one analysis
// session. It is passed explicitly into each adapter rather than kept as
// process-wide state, so repeated sessions never leak counts into each other.
// Token counts are character-length estimates, not billed figures.
type Usage struct {
	Calls        int   `json:"total_calls"`
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Record adds one call's token estimates to the accumulator.
func (u *Usage) Record(inputTokens, outputTokens int64) {
	u.Calls++
	u.InputTokens += inputTokens
	u.OutputTokens += outputTokens
}

// EstimatedCostUSD returns the approximate cost of the session so far.
func (u *Usage) EstimatedCostUSD() float64 {
	return float64(u.InputTokens)/1e6*inputCostPer1M +
		float64(u.OutputTokens)/1e6*outputCostPer1M
}

// estimateTokens approximates a token count from text length. Four
// characters per token is the usual rule of thumb for English text.
func estimateTokens(text string) int64 {
	return int64(len(text) / 4)
}
