package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-ego/gse"

	"github.com/gcbaptista/go-emoji-video/config"
)

// Segmenter performs the general-purpose word segmentation pass over cleaned
// text. Implementations must return substrings of text, in order.
type Segmenter interface {
	Segment(text string) []string
}

// GSESegmenter segments Chinese text with a gse dictionary and HMM for
// out-of-vocabulary words.
type GSESegmenter struct {
	seg gse.Segmenter
}

// NewGSESegmenter loads a gse dictionary. dict is a comma-separated list of
// dictionary files; empty loads the dictionary embedded in gse.
func NewGSESegmenter(dict string) (*GSESegmenter, error) {
	var files []string
	if dict = strings.TrimSpace(dict); dict != "" {
		files = append(files, dict)
	}
	seg, err := gse.New(files...)
	if err != nil {
		return nil, fmt.Errorf("load segmenter dictionary: %w", err)
	}
	return &GSESegmenter{seg: seg}, nil
}

// Segment cuts text with HMM. gse lowercases the words it returns, so the
// segments are mapped back onto text to keep the original spelling.
func (s *GSESegmenter) Segment(text string) []string {
	return resliceSegments(text, s.seg.Cut(text, true))
}

// resliceSegments replaces each segment with the substring of text that
// covers the same number of runes, in order. Any text left after the last
// segment becomes a final segment, so the result always joins back to text.
func resliceSegments(text string, segments []string) []string {
	out := make([]string, 0, len(segments))
	pos := 0
	for _, segment := range segments {
		end := pos
		for n := utf8.RuneCountInString(segment); n > 0 && end < len(text); n-- {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}
		if end > pos {
			out = append(out, text[pos:end])
		}
		pos = end
	}
	if pos < len(text) {
		out = append(out, text[pos:])
	}
	return out
}

// PassthroughSegmenter returns the text as a single segment, leaving all
// splitting to the priority phrase matcher.
type PassthroughSegmenter struct{}

func (PassthroughSegmenter) Segment(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}

// Tag tags the whole text as one untagged word.
func (PassthroughSegmenter) Tag(text string) []TaggedWord {
	if text == "" {
		return nil
	}
	return []TaggedWord{{Text: text}}
}

// NewSegmenter returns the segmenter configured by name (config.SegmenterGSE
// or config.SegmenterNone).
func NewSegmenter(name, dict string) (Segmenter, error) {
	switch name {
	case config.SegmenterGSE, "":
		return NewGSESegmenter(dict)
	case config.SegmenterNone:
		return PassthroughSegmenter{}, nil
	default:
		return nil, fmt.Errorf("unknown segmenter '%s'", name)
	}
}

// TaggedWord is a segmented word with its part-of-speech tag.
type TaggedWord struct {
	Text string
	Pos  string
}

// Tag segments text and tags every word with gse's part-of-speech tags
// (the jieba tag set: n, v, a, ...).
func (s *GSESegmenter) Tag(text string) []TaggedWord {
	tagged := s.seg.Pos(text)
	segments := make([]string, len(tagged))
	for i, sp := range tagged {
		segments[i] = sp.Text
	}
	original := resliceSegments(text, segments)

	words := make([]TaggedWord, 0, len(original))
	for i, word := range original {
		pos := ""
		if i < len(tagged) {
			pos = tagged[i].Pos
		}
		words = append(words, TaggedWord{Text: word, Pos: pos})
	}
	return words
}
