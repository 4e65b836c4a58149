package engine

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/model"
)

// Analytics sources of tracked searches.
const (
	sourceSearch  = "search"
	sourceProcess = "process"
)

// Tokenize splits text into tokens using the loaded priority phrases.
func (e *Engine) Tokenize(text string) ([]string, error) {
	inst, err := e.instance()
	if err != nil {
		return nil, err
	}
	return inst.tokenizer.Tokenize(text), nil
}

// Search ranks the pictograms matching keyword. A positive limit caps the
// result further than the configured maximum.
func (e *Engine) Search(keyword string, limit int) (model.SearchResult, error) {
	if limit < 0 {
		return model.SearchResult{}, errors.NewValidationError("limit", fmt.Sprintf("must not be negative, got %d", limit))
	}
	inst, err := e.instance()
	if err != nil {
		return model.SearchResult{}, err
	}

	result := inst.resolver.Search(keyword, limit)
	e.track(sourceSearch, result)
	return result, nil
}

// BuildSequence lays selections out over character slots. It does not need
// the lexicon.
func (e *Engine) BuildSequence(tokens []string, selections [][]string, charCounts []int) (*model.Sequence, error) {
	return e.builder.Build(tokens, selections, charCounts)
}

// Process tokenizes text and collects the ranked candidates of every token.
// A text without any token is an errors.ValidationError.
func (e *Engine) Process(text string) (*model.ProcessedText, error) {
	inst, err := e.instance()
	if err != nil {
		return nil, err
	}
	tokens, err := processTokens(inst, text)
	if err != nil {
		return nil, err
	}
	return e.process(context.Background(), inst, text, tokens, nil)
}

func processTokens(inst *Instance, text string) ([]string, error) {
	tokens := inst.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return nil, errors.NewValidationError("text", "no valid words in text")
	}
	return tokens, nil
}

// process searches tokens one by one, reporting after each.
func (e *Engine) process(ctx context.Context, inst *Instance, text string, tokens []string, progress func(done, total int, token string)) (*model.ProcessedText, error) {
	processed := &model.ProcessedText{
		Text:   text,
		Tokens: make([]model.TokenCandidates, 0, len(tokens)),
	}
	for i, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := inst.resolver.Search(token, 0)
		e.track(sourceProcess, result)

		tc := model.TokenCandidates{
			Token:      token,
			CharCount:  utf8.RuneCountInString(token),
			Candidates: result.Identifiers,
		}
		if !tc.Found() {
			processed.Unmatched++
		}
		processed.TotalChars += tc.CharCount
		processed.Tokens = append(processed.Tokens, tc)

		if progress != nil {
			progress(i+1, len(tokens), token)
		}
	}
	return processed, nil
}

func (e *Engine) track(source string, result model.SearchResult) {
	if e.analytics == nil || result.Keyword == "" {
		return
	}
	e.analytics.TrackSearchResult(source, result)
}
