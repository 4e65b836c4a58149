// Package config provides configuration structures for the emoji video core.
// It defines lexicon sources, search limits, tokenizer and server options.
package config

import (
	"strings"
)

// Segmenter engines accepted by Settings.Segmenter.
const (
	SegmenterGSE  = "gse"  // dictionary based Chinese word segmentation
	SegmenterNone = "none" // no dictionary, priority phrases alone split the text
)

const (
	defaultLexiconPath     = "emojiNames.json"
	defaultTwoPhrasePath   = "2.json"
	defaultThreePhrasePath = "3.json"
	defaultAssetDir        = "emoji_export"
	defaultListenAddr      = ":8080"
	defaultMaxBodyBytes    = 1 << 20
	defaultJobWorkers      = 2
)

// Settings contains all configuration options for the lexicon, the tokenizer
// and the HTTP surface.
//
// MaxResults caps every candidate list returned by search. Zero means
// unbounded, which is the default and the canonical behavior.
type Settings struct {
	Lexicon   LexiconSettings   `json:"lexicon" mapstructure:"lexicon"`
	Assets    AssetSettings     `json:"assets" mapstructure:"assets"`
	Search    SearchSettings    `json:"search" mapstructure:"search"`
	Tokenizer TokenizerSettings `json:"tokenizer" mapstructure:"tokenizer"`
	Server    ServerSettings    `json:"server" mapstructure:"server"`
	Jobs      JobSettings       `json:"jobs" mapstructure:"jobs"`
}

type LexiconSettings struct {
	Path            string `json:"path" mapstructure:"path"`                           // glyph -> keywords JSON object
	TwoPhrasePath   string `json:"two_phrase_path" mapstructure:"two_phrase_path"`     // JSON array of 2-character phrases
	ThreePhrasePath string `json:"three_phrase_path" mapstructure:"three_phrase_path"` // JSON array of 3-character phrases
	SnapshotPath    string `json:"snapshot_path" mapstructure:"snapshot_path"`         // Optional gob snapshot of the compiled lexicon
}

type AssetSettings struct {
	Dir string `json:"dir" mapstructure:"dir"` // Root of the U+<id>/U+<id>.gif tree
}

type SearchSettings struct {
	MaxResults int `json:"max_results" mapstructure:"max_results"`
}

type TokenizerSettings struct {
	Segmenter string `json:"segmenter" mapstructure:"segmenter"`
	Dict      string `json:"dict" mapstructure:"dict"` // Optional extra dictionary for the gse segmenter
}

type ServerSettings struct {
	ListenAddr   string `json:"listen_addr" mapstructure:"listen_addr"`
	MaxBodyBytes int64  `json:"max_body_bytes" mapstructure:"max_body_bytes"`
}

type JobSettings struct {
	Workers int `json:"workers" mapstructure:"workers"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	s := Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to zero-valued settings
func (s *Settings) ApplyDefaults() {
	if s.Lexicon.Path == "" {
		s.Lexicon.Path = defaultLexiconPath
	}
	if s.Lexicon.TwoPhrasePath == "" {
		s.Lexicon.TwoPhrasePath = defaultTwoPhrasePath
	}
	if s.Lexicon.ThreePhrasePath == "" {
		s.Lexicon.ThreePhrasePath = defaultThreePhrasePath
	}
	if s.Assets.Dir == "" {
		s.Assets.Dir = defaultAssetDir
	}
	if s.Tokenizer.Segmenter == "" {
		s.Tokenizer.Segmenter = SegmenterGSE
	}
	s.Tokenizer.Segmenter = strings.ToLower(strings.TrimSpace(s.Tokenizer.Segmenter))
	if s.Server.ListenAddr == "" {
		s.Server.ListenAddr = defaultListenAddr
	}
	if s.Server.MaxBodyBytes == 0 {
		s.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	if s.Jobs.Workers <= 0 {
		s.Jobs.Workers = defaultJobWorkers
	}
}

// Validate checks the settings and returns one message per conflict.
// An empty result means the settings are usable.
func (s *Settings) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(s.Lexicon.Path) == "" {
		conflicts = append(conflicts, "lexicon.path cannot be empty or whitespace-only")
	}
	if s.Lexicon.TwoPhrasePath != "" && s.Lexicon.TwoPhrasePath == s.Lexicon.ThreePhrasePath {
		conflicts = append(conflicts, "lexicon.two_phrase_path and lexicon.three_phrase_path must be different files")
	}
	if s.Search.MaxResults < 0 {
		conflicts = append(conflicts, "search.max_results cannot be negative (use 0 for unbounded)")
	}
	switch s.Tokenizer.Segmenter {
	case SegmenterGSE, SegmenterNone:
	default:
		conflicts = append(conflicts, "Invalid segmenter '"+s.Tokenizer.Segmenter+"' in tokenizer.segmenter (must be 'gse' or 'none')")
	}
	if s.Server.MaxBodyBytes < 0 {
		conflicts = append(conflicts, "server.max_body_bytes cannot be negative")
	}

	return conflicts
}
