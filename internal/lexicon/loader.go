// Package lexicon loads the pictogram keyword lexicon and the priority phrase
// sets from their JSON sources, or from a gob snapshot of a previous load.
package lexicon

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gcbaptista/go-emoji-video/index"
	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/internal/persistence"
	"github.com/gcbaptista/go-emoji-video/model"
)

// snapshotVersion changes whenever the snapshot layout does.
const snapshotVersion = 2

// Sources names the files a Lexicon is loaded from.
type Sources struct {
	LexiconPath     string
	TwoPhrasePath   string // Optional; missing disables 2-character phrase matching
	ThreePhrasePath string // Optional; missing disables 3-character phrase matching
	SnapshotPath    string // Optional gob cache of the compiled result
}

// Lexicon is the immutable result of a load: the keyword index and the
// priority phrase sets. Share it freely between goroutines.
type Lexicon struct {
	Index   *index.LexiconIndex
	Phrases *index.PhraseSet
	Stats   model.LexiconStats
}

type snapshot struct {
	Version int
	Index   *index.LexiconIndex
	Two     []string
	Three   []string
	Skipped int
	Sources []persistence.FileStamp
}

// Load reads the lexicon and phrase files. A missing or malformed lexicon and
// a malformed phrase file are configuration errors (errors.ErrConfig); a
// missing phrase file only narrows phrase matching and is logged.
//
// When SnapshotPath is set, the snapshot is used instead if it was built from
// exactly the current source files: same paths, and each one present or absent
// with the same size and modification time as recorded. Any other snapshot is
// ignored with a warning and rebuilt.
func Load(src Sources) (*Lexicon, error) {
	stamps := persistence.StampFiles(src.LexiconPath, src.TwoPhrasePath, src.ThreePhrasePath)
	if src.SnapshotPath != "" && src.LexiconPath != "" && stamps[0].Exists {
		lex, err := loadSnapshot(src.SnapshotPath, stamps)
		if err == nil {
			log.Printf("Info: Loaded lexicon snapshot %s (%d glyphs)", src.SnapshotPath, lex.Stats.Glyphs)
			return lex, nil
		}
		if !os.IsNotExist(err) {
			log.Printf("Warning: Ignoring lexicon snapshot %s: %v", src.SnapshotPath, err)
		}
	}

	idx, skipped, err := LoadLexiconFile(src.LexiconPath)
	if err != nil {
		return nil, err
	}
	two, err := LoadPhraseFile(src.TwoPhrasePath, index.TwoCharPhrase)
	if err != nil {
		return nil, err
	}
	three, err := LoadPhraseFile(src.ThreePhrasePath, index.ThreeCharPhrase)
	if err != nil {
		return nil, err
	}

	lex := newLexicon(idx, two, three, skipped)
	log.Printf("Info: Loaded lexicon %s: %d glyphs, %d keywords, %d/%d priority phrases",
		src.LexiconPath, lex.Stats.Glyphs, lex.Stats.Keywords, lex.Stats.TwoPhrases, lex.Stats.ThreePhrases)

	if src.SnapshotPath != "" {
		if err := saveSnapshot(src.SnapshotPath, lex, stamps); err != nil {
			log.Printf("Warning: Failed to write lexicon snapshot %s: %v", src.SnapshotPath, err)
		}
	}
	return lex, nil
}

// New assembles a Lexicon from an already built index and phrase lists.
func New(idx *index.LexiconIndex, two, three []string) *Lexicon {
	return newLexicon(idx, two, three, 0)
}

func newLexicon(idx *index.LexiconIndex, two, three []string, skipped int) *Lexicon {
	phrases := index.NewPhraseSet(two, three)
	twoCount, threeCount := phrases.Len()
	return &Lexicon{
		Index:   idx,
		Phrases: phrases,
		Stats: model.LexiconStats{
			Glyphs:        idx.Len(),
			Keywords:      idx.KeywordCount(),
			SkippedGlyphs: skipped,
			TwoPhrases:    twoCount,
			ThreePhrases:  threeCount,
			LoadedAt:      time.Now(),
		},
	}
}

// SaveSnapshot writes lex to path as a gob snapshot stamped with the current
// state of the files in src. Load reuses it only while they stay unchanged.
func SaveSnapshot(path string, lex *Lexicon, src Sources) error {
	return saveSnapshot(path, lex, persistence.StampFiles(src.LexiconPath, src.TwoPhrasePath, src.ThreePhrasePath))
}

func saveSnapshot(path string, lex *Lexicon, sources []persistence.FileStamp) error {
	two, three := lex.Phrases.Sorted()
	return persistence.SaveGob(path, snapshot{
		Version: snapshotVersion,
		Index:   lex.Index,
		Two:     two,
		Three:   three,
		Skipped: lex.Stats.SkippedGlyphs,
		Sources: sources,
	})
}

func loadSnapshot(path string, sources []persistence.FileStamp) (*Lexicon, error) {
	snap := snapshot{Index: &index.LexiconIndex{}}
	if err := persistence.LoadGob(path, &snap); err != nil {
		return nil, err
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snap.Version, snapshotVersion)
	}
	if !persistence.SameStamps(snap.Sources, sources) {
		return nil, fmt.Errorf("source files changed since the snapshot was written")
	}
	lex := newLexicon(snap.Index, snap.Two, snap.Three, snap.Skipped)
	lex.Stats.FromSnapshot = true
	return lex, nil
}

// LoadLexiconFile opens path and parses it with ParseLexicon.
func LoadLexiconFile(path string) (*index.LexiconIndex, int, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from settings
	if err != nil {
		return nil, 0, errors.NewConfigError(path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("Warning: failed to close file %s: %v", path, closeErr)
		}
	}()

	idx, skipped, err := ParseLexicon(f)
	if err != nil {
		return nil, 0, errors.NewConfigError(path, err)
	}
	return idx, skipped, nil
}

// ParseLexicon reads a single JSON object mapping glyph strings to arrays of
// keyword strings and builds the keyword index from it, in document order.
// Glyphs whose identifier cannot be derived are skipped with a warning and
// counted in the second return value.
func ParseLexicon(r io.Reader) (*index.LexiconIndex, int, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, 0, fmt.Errorf("read lexicon: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, 0, fmt.Errorf("lexicon must be a JSON object of glyph -> keywords, got %v", tok)
	}

	builder := index.NewBuilder()
	skipped := 0
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, 0, fmt.Errorf("read glyph: %w", err)
		}
		glyph, _ := keyTok.(string)

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, 0, fmt.Errorf("keywords for glyph %q must be an array of strings: %w", glyph, err)
		}

		identifier, err := DeriveIdentifier(glyph)
		if err != nil {
			log.Printf("Warning: Skipping glyph %q: %v", glyph, err)
			skipped++
			continue
		}
		builder.Add(identifier, glyph, keywords)
	}

	if _, err := dec.Token(); err != nil {
		return nil, 0, fmt.Errorf("read lexicon end: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, 0, fmt.Errorf("unexpected data after the lexicon object")
	}
	return builder.Build(), skipped, nil
}

// LoadPhraseFile reads a JSON array of phrases of the given length.
// A missing file returns nil without error and logs that the tier is disabled.
// Entries of the wrong length are dropped with a warning.
func LoadPhraseFile(path string, length int) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from settings
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: Priority phrase file '%s' not found, %d-character phrase matching is disabled", path, length)
			return nil, nil
		}
		return nil, errors.NewConfigError(path, err)
	}

	var phrases []string
	if err := json.Unmarshal(data, &phrases); err != nil {
		return nil, errors.NewConfigError(path, fmt.Errorf("phrase file must be a JSON array of strings: %w", err))
	}

	valid := phrases[:0]
	dropped := 0
	for _, p := range phrases {
		if index.ValidPhrase(p, length) {
			valid = append(valid, p)
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("Warning: Dropped %d entries of '%s' that are not %d characters long", dropped, path, length)
	}
	return valid, nil
}
