package model

// TokenCandidates pairs a token with its ranked pictogram candidates.
type TokenCandidates struct {
	Token      string   `json:"token"`
	CharCount  int      `json:"char_count"`
	Candidates []string `json:"candidates"`
}

// Found reports whether at least one candidate matched the token.
func (tc TokenCandidates) Found() bool {
	return len(tc.Candidates) > 0
}

// ProcessedText is the result of tokenizing a text and searching every token.
// It is what a caller presents for selection before building a sequence.
type ProcessedText struct {
	Text       string            `json:"text"`
	Tokens     []TokenCandidates `json:"tokens"`
	TotalChars int               `json:"total_chars"`
	Unmatched  int               `json:"unmatched"` // Tokens with no candidates
}

// Words returns the tokens in order.
func (p *ProcessedText) Words() []string {
	words := make([]string, len(p.Tokens))
	for i, tc := range p.Tokens {
		words[i] = tc.Token
	}
	return words
}

// CharCounts returns the per-token character counts in order.
func (p *ProcessedText) CharCounts() []int {
	counts := make([]int, len(p.Tokens))
	for i, tc := range p.Tokens {
		counts[i] = tc.CharCount
	}
	return counts
}
