// Package gemini provides a client for extracting transactions from
// bank-statement text via the Google Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 90 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	keyPrefix      = "AIza"

	retryAttempts = 3
	retryDelay    = 2 * time.Second

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"
)

var (
	// ErrUnauthorized indicates the API key is invalid or revoked.
	ErrUnauthorized = errors.New("gemini: unauthorized (api key invalid or revoked)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("gemini: rate limited")
	// ErrBlocked indicates the prompt was refused by a safety filter.
	ErrBlocked = errors.New("gemini: prompt blocked")
	// ErrEmptyReply indicates the model returned no usable text.
	ErrEmptyReply = errors.New("gemini: empty model reply")

	errServer = errors.New("gemini: server error")
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	delay   time.Duration
	http    *http.Client
}

// NewClient creates a client for the given API key.
// Returns nil if the key is empty or has the wrong prefix.
func NewClient(apiKey, model string) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if !strings.HasPrefix(apiKey, keyPrefix) {
		return nil
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		delay:   retryDelay,
		http:    &http.Client{},
	}
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// ExtractTransactions asks the model to pull every transaction out of the
// given statement text. Rate limits, server errors, and network failures
// are retried a few times; everything else surfaces immediately.
func (c *Client) ExtractTransactions(ctx context.Context, filename, text string) (*ExtractionResult, error) {
	prompt := buildPrompt(filename, text)

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.generate(ctx, prompt)
			return err
		},
		retry.RetryIf(isTransient),
		retry.Attempts(retryAttempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return parseReply(body)
}

// generate performs one generateContent request and returns the raw body.
func (c *Client) generate(ctx context.Context, prompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqBody, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: 0.1},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("gemini: creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("User-Agent", "github.com/theirongolddev/cashburn/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", errServer, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("gemini: reading response: %w", err)
	}
	return body, nil
}

// isTransient reports whether a failed request is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, errServer) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr *url.Error
	return errors.As(err, &netErr)
}

// parseReply digs the model's text out of the candidate list and decodes
// the JSON batch it carries.
func parseReply(body []byte) (*ExtractionResult, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: parsing response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w (%s)", ErrBlocked, resp.PromptFeedback.BlockReason)
		}
		return nil, ErrEmptyReply
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := stripFences(sb.String())
	if text == "" {
		return nil, ErrEmptyReply
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("gemini: model reply is not valid JSON: %w", err)
	}

	result := &ExtractionResult{
		Transactions:   make([]ExtractedTransaction, 0, len(raw.Transactions)),
		CurrentBalance: raw.CurrentBalance,
	}
	for _, rt := range raw.Transactions {
		result.Transactions = append(result.Transactions, ExtractedTransaction{
			Type:        strings.ToLower(strings.TrimSpace(rt.Type)),
			Amount:      rt.Amount,
			Date:        strings.TrimSpace(rt.Date),
			Description: strings.TrimSpace(rt.Description),
			Category:    strings.TrimSpace(rt.Category),
			Confidence:  parseConfidence(rt.Confidence),
		})
	}
	return result, nil
}

// stripFences removes the markdown code fence the model sometimes wraps
// around its JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseConfidence parses the polymorphic confidence field. Models send
// int (95), float (95.0 or 0.95), or string ("95" or "95%").
// Returns a value clamped to 0-100.
func parseConfidence(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	// Try number first (covers both int and float JSON)
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return normalizeConfidence(f)
	}

	// Try string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return normalizeConfidence(v)
		}
	}

	return 0
}

// normalizeConfidence converts fractional confidences to the 0-100 scale
// and clamps the result.
func normalizeConfidence(v float64) int {
	if v <= 1.0 {
		v *= 100
	}
	n := int(v + 0.5)
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// buildPrompt assembles the extraction instructions plus the statement text.
func buildPrompt(filename, text string) string {
	return fmt.Sprintf(`Analyze this bank statement text from file %q and extract ALL transactions as JSON.

For each transaction provide:
- date: in YYYY-MM-DD format
- description: clean, descriptive text with extra spaces, codes, and reference numbers removed
- amount: positive number for income/deposits, negative for expenses/withdrawals
- type: "income" for deposits/credits, "expense" for withdrawals/debits
- category: intelligent guess like "payroll", "rent", "client_payment", "office_supplies", "utilities"
- confidence: 90-100 for clear transactions, lower if uncertain

Rules:
- Only include actual transactions (skip headers, totals, and running balance lines)
- Clean up messy descriptions (for example "ACH DEP PAYROLL CO ABC123" becomes "Payroll Deposit - Company ABC")
- Detect income vs expenses from the transaction type and amount signs
- Parse amounts exactly, removing thousands separators
- Skip duplicate entries
- Report the statement's ending balance as current_balance when present

Return ONLY valid JSON in this exact shape, with no explanatory text, markdown formatting, or code blocks:
{"transactions":[{"type":"income","amount":5000.00,"date":"2025-08-01","description":"Client Payment - ABC Corp","category":"client_payment","confidence":95}],"current_balance":500.00}

Bank statement text:
%s`, filename, text)
}
