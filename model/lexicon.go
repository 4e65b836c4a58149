package model

import "time"

// LexiconStats describes the lexicon currently loaded in the engine.
type LexiconStats struct {
	Glyphs        int       `json:"glyphs"`         // Distinct pictogram identifiers
	Keywords      int       `json:"keywords"`       // Distinct lowercased keywords
	SkippedGlyphs int       `json:"skipped_glyphs"` // Glyphs rejected during identifier derivation
	TwoPhrases    int       `json:"two_phrases"`    // Size of the 2-character priority set
	ThreePhrases  int       `json:"three_phrases"`  // Size of the 3-character priority set
	FromSnapshot  bool      `json:"from_snapshot"`  // Loaded from the gob snapshot rather than the JSON sources
	LoadedAt      time.Time `json:"loaded_at"`
}

// Pictogram describes one lexicon entry and where its animated asset lives.
type Pictogram struct {
	Identifier  string   `json:"identifier"`
	Glyph       string   `json:"glyph"`
	Keywords    []string `json:"keywords"`
	AssetPath   string   `json:"asset_path"`
	AssetExists bool     `json:"asset_exists"`
}
