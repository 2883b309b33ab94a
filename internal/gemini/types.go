package gemini

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire types for the generateContent endpoint.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// rawTransaction is the shape the model is asked to emit. Confidence stays
// raw because models send it as int, float, or string interchangeably.
type rawTransaction struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Confidence  json.RawMessage `json:"confidence"`
}

type rawResult struct {
	Transactions   []rawTransaction `json:"transactions"`
	CurrentBalance *decimal.Decimal `json:"current_balance"`
}

// ExtractedTransaction is one candidate transaction pulled from a bank
// statement. Amount keeps the statement's sign: deposits positive,
// withdrawals negative. Date is the raw YYYY-MM-DD string the model
// produced; callers validate it before merging.
type ExtractedTransaction struct {
	Type        string
	Amount      decimal.Decimal
	Date        string
	Description string
	Category    string
	Confidence  int
}

// ExtractionResult is the batch extracted from one statement. A non-nil
// CurrentBalance carries the statement's ending balance.
type ExtractionResult struct {
	Transactions   []ExtractedTransaction
	CurrentBalance *decimal.Decimal
}
