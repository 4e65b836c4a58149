package index

import (
	"bytes"
	"encoding/gob"
	"sort"
	"strings"
)

// LexiconIndex maps pictogram identifiers to their keywords and lowercased
// keywords back to identifiers. It is built once by a Builder and never
// mutated afterwards, so it is safe for concurrent readers without locking.
type LexiconIndex struct {
	identifierToKeywords map[string][]string
	keywordToIdentifiers map[string][]string
	identifierToGlyph    map[string]string
	identifiers          []string // first-seen order
	keywords             []string // sorted by code point
}

// Builder accumulates lexicon entries. It is not safe for concurrent use.
type Builder struct {
	idx *LexiconIndex
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{idx: &LexiconIndex{
		identifierToKeywords: make(map[string][]string),
		keywordToIdentifiers: make(map[string][]string),
		identifierToGlyph:    make(map[string]string),
	}}
}

// Add registers a glyph under identifier. The last glyph added for an
// identifier wins. Every non-empty keyword is lowercased and appended to its
// bucket; repeated identifiers within a bucket are kept as-is.
func (b *Builder) Add(identifier, glyph string, keywords []string) {
	idx := b.idx
	if _, seen := idx.identifierToGlyph[identifier]; !seen {
		idx.identifiers = append(idx.identifiers, identifier)
	}
	idx.identifierToGlyph[identifier] = glyph

	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		idx.identifierToKeywords[identifier] = append(idx.identifierToKeywords[identifier], keyword)
		key := strings.ToLower(keyword)
		idx.keywordToIdentifiers[key] = append(idx.keywordToIdentifiers[key], identifier)
	}
}

// Build finalizes the index. The Builder must not be used afterwards.
func (b *Builder) Build() *LexiconIndex {
	idx := b.idx
	b.idx = nil
	idx.sortKeywords()
	return idx
}

func (idx *LexiconIndex) sortKeywords() {
	idx.keywords = make([]string, 0, len(idx.keywordToIdentifiers))
	for kw := range idx.keywordToIdentifiers {
		idx.keywords = append(idx.keywords, kw)
	}
	sort.Strings(idx.keywords)
}

// Lookup returns the identifiers indexed under the exact lowercased keyword.
// The returned slice must not be modified.
func (idx *LexiconIndex) Lookup(keyword string) []string {
	return idx.keywordToIdentifiers[keyword]
}

// Keywords returns every indexed keyword in code point order.
// The returned slice must not be modified.
func (idx *LexiconIndex) Keywords() []string {
	return idx.keywords
}

// Identifiers returns every identifier in the order it was first added.
func (idx *LexiconIndex) Identifiers() []string {
	return idx.identifiers
}

// Glyph returns the glyph an identifier was derived from.
func (idx *LexiconIndex) Glyph(identifier string) (string, bool) {
	glyph, ok := idx.identifierToGlyph[identifier]
	return glyph, ok
}

// KeywordsFor returns the keywords registered for an identifier, in source order.
func (idx *LexiconIndex) KeywordsFor(identifier string) []string {
	return idx.identifierToKeywords[identifier]
}

// Len returns the number of distinct identifiers.
func (idx *LexiconIndex) Len() int {
	return len(idx.identifierToGlyph)
}

// KeywordCount returns the number of distinct lowercased keywords.
func (idx *LexiconIndex) KeywordCount() int {
	return len(idx.keywordToIdentifiers)
}

// gobLexiconIndexData is a helper struct for Gob encoding/decoding LexiconIndex data.
// The sorted keyword list is rebuilt on decode.
type gobLexiconIndexData struct {
	IdentifierToKeywords map[string][]string
	KeywordToIdentifiers map[string][]string
	IdentifierToGlyph    map[string]string
	Identifiers          []string
}

// GobEncode implements the gob.GobEncoder interface for LexiconIndex.
func (idx *LexiconIndex) GobEncode() ([]byte, error) {
	dataToEncode := gobLexiconIndexData{
		IdentifierToKeywords: idx.identifierToKeywords,
		KeywordToIdentifiers: idx.keywordToIdentifiers,
		IdentifierToGlyph:    idx.identifierToGlyph,
		Identifiers:          idx.identifiers,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for LexiconIndex.
func (idx *LexiconIndex) GobDecode(data []byte) error {
	decodedData := gobLexiconIndexData{}

	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	idx.identifierToKeywords = decodedData.IdentifierToKeywords
	idx.keywordToIdentifiers = decodedData.KeywordToIdentifiers
	idx.identifierToGlyph = decodedData.IdentifierToGlyph
	idx.identifiers = decodedData.Identifiers

	// Ensure maps are initialized if they were nil after decoding (e.g. an empty lexicon)
	if idx.identifierToKeywords == nil {
		idx.identifierToKeywords = make(map[string][]string)
	}
	if idx.keywordToIdentifiers == nil {
		idx.keywordToIdentifiers = make(map[string][]string)
	}
	if idx.identifierToGlyph == nil {
		idx.identifierToGlyph = make(map[string]string)
	}
	idx.sortKeywords()
	return nil
}
