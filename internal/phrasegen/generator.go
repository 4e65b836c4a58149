// Package phrasegen derives the priority phrase files from the lexicon.
package phrasegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-emoji-video/index"
	"github.com/gcbaptista/go-emoji-video/internal/tokenizer"
)

// StopChars never appear in a phrase extracted from a longer keyword.
const StopChars = "的了着过在和或但也就都还只会要能可有是"

// hanOnly matches keywords made only of CJK unified ideographs.
var hanOnly = regexp.MustCompile(`^[\x{4E00}-\x{9FFF}]+$`)

// acceptablePos lists the part-of-speech tags a sub-word may carry:
// nouns, verbs, adjectives and their adverbial and nominal forms.
var acceptablePos = map[string]struct{}{
	"n": {}, "v": {}, "a": {}, "ad": {}, "an": {}, "vn": {}, "vd": {}, "ag": {}, "lg": {}, "mg": {},
}

// Tagger segments text into part-of-speech tagged words.
type Tagger interface {
	Tag(text string) []tokenizer.TaggedWord
}

// Generator builds 2- and 3-character priority phrase lists.
type Generator struct {
	tagger Tagger
}

// NewGenerator creates a Generator that extracts sub-words with tagger.
func NewGenerator(tagger Tagger) *Generator {
	return &Generator{tagger: tagger}
}

// Generate collects, from the keywords of idx:
//   - every Han-only keyword of 2 or 3 characters;
//   - every 2 or 3 character word tagged in a Han-only keyword of 4 or more
//     characters, when its tag is acceptable and it holds no stop character.
//
// Both lists are deduplicated and sorted.
func (g *Generator) Generate(idx *index.LexiconIndex) (two, three []string) {
	twoSet := make(map[string]struct{})
	threeSet := make(map[string]struct{})
	add := func(word string) {
		switch utf8.RuneCountInString(word) {
		case index.TwoCharPhrase:
			twoSet[word] = struct{}{}
		case index.ThreeCharPhrase:
			threeSet[word] = struct{}{}
		}
	}

	for _, kw := range idx.Keywords() {
		kw = strings.TrimSpace(kw)
		if !hanOnly.MatchString(kw) {
			continue
		}
		if utf8.RuneCountInString(kw) < 4 {
			add(kw)
			continue
		}
		for _, w := range g.tagger.Tag(kw) {
			if _, ok := acceptablePos[w.Pos]; !ok || strings.ContainsAny(w.Text, StopChars) {
				continue
			}
			add(w.Text)
		}
	}
	return sortedKeys(twoSet), sortedKeys(threeSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteFile writes phrases to path as an indented JSON array, leaving
// non-ASCII characters unescaped.
func WriteFile(path string, phrases []string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(phrases); err != nil {
		return fmt.Errorf("failed to encode phrases: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { // #nosec G306 -- phrase files are not secret
		return fmt.Errorf("failed to write phrase file %s: %w", path, err)
	}
	return nil
}
