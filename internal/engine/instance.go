package engine

import (
	"fmt"

	"github.com/gcbaptista/go-emoji-video/internal/lexicon"
	"github.com/gcbaptista/go-emoji-video/internal/search"
	"github.com/gcbaptista/go-emoji-video/internal/tokenizer"
)

// Instance holds a loaded lexicon and the services built over it.
// It is never modified after creation; a reload replaces it as a whole.
type Instance struct {
	Lexicon   *lexicon.Lexicon
	tokenizer *tokenizer.Tokenizer
	resolver  *search.Resolver
}

// NewInstance builds the tokenizer and resolver for lex.
func NewInstance(lex *lexicon.Lexicon, segmenter tokenizer.Segmenter, maxResults int) (*Instance, error) {
	if lex == nil {
		return nil, fmt.Errorf("lexicon cannot be nil")
	}
	if segmenter == nil {
		return nil, fmt.Errorf("segmenter cannot be nil")
	}

	resolver, err := search.NewResolver(lex.Index, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	return &Instance{
		Lexicon:   lex,
		tokenizer: tokenizer.New(segmenter, lex.Phrases),
		resolver:  resolver,
	}, nil
}
