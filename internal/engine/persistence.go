package engine

import (
	"fmt"
	"log"

	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/internal/lexicon"
	"github.com/gcbaptista/go-emoji-video/internal/phrasegen"
	"github.com/gcbaptista/go-emoji-video/model"
)

// CompileSnapshot builds the lexicon from its JSON sources, ignoring any
// existing snapshot, and writes it to path as a gob snapshot. An empty path
// uses the configured snapshot path.
func (e *Engine) CompileSnapshot(path string) (model.LexiconStats, error) {
	if path == "" {
		path = e.settings.Lexicon.SnapshotPath
	}
	if path == "" {
		return model.LexiconStats{}, errors.NewValidationError("snapshot_path", "no snapshot path given or configured")
	}

	src := e.sources()
	src.SnapshotPath = ""
	lex, err := lexicon.Load(src)
	if err != nil {
		return model.LexiconStats{}, err
	}
	if err := lexicon.SaveSnapshot(path, lex, src); err != nil {
		return model.LexiconStats{}, fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}

	log.Printf("Info: Compiled lexicon snapshot %s (%d glyphs, %d keywords)", path, lex.Stats.Glyphs, lex.Stats.Keywords)
	return lex.Stats, nil
}

// GeneratePhrases derives the priority phrase lists from the lexicon file and
// writes them to the configured 2- and 3-character phrase paths. The segmenter
// must tag parts of speech.
func (e *Engine) GeneratePhrases() (two, three int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.segmenter == nil {
		seg, segErr := e.newSegmenter()
		if segErr != nil {
			return 0, 0, segErr
		}
		e.segmenter = seg
	}
	tagger, ok := e.segmenter.(phrasegen.Tagger)
	if !ok {
		return 0, 0, errors.NewConfigError("", fmt.Errorf("segmenter '%s' does not tag parts of speech", e.settings.Tokenizer.Segmenter))
	}

	idx, _, err := lexicon.LoadLexiconFile(e.settings.Lexicon.Path)
	if err != nil {
		return 0, 0, err
	}

	twoPhrases, threePhrases := phrasegen.NewGenerator(tagger).Generate(idx)
	if err := phrasegen.WriteFile(e.settings.Lexicon.TwoPhrasePath, twoPhrases); err != nil {
		return 0, 0, err
	}
	if err := phrasegen.WriteFile(e.settings.Lexicon.ThreePhrasePath, threePhrases); err != nil {
		return 0, 0, err
	}

	log.Printf("Info: Generated %d 2-character and %d 3-character priority phrases", len(twoPhrases), len(threePhrases))
	return len(twoPhrases), len(threePhrases), nil
}
