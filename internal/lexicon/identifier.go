package lexicon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// IdentifierSeparator joins the code points of a multi-code-point glyph.
const IdentifierSeparator = "-"

// DeriveIdentifier returns the canonical identifier of a glyph: each code
// point as uppercase hexadecimal without zero padding, joined by "-" in
// original order. "😀" gives "1F600", "👍🏻" gives "1F44D-1F3FB".
//
// It fails for an empty glyph and for glyphs with code points that cannot be
// resolved (invalid UTF-8 or the replacement character left behind by it).
func DeriveIdentifier(glyph string) (string, error) {
	if glyph == "" {
		return "", fmt.Errorf("empty glyph")
	}
	if !utf8.ValidString(glyph) {
		return "", fmt.Errorf("glyph %q is not valid UTF-8", glyph)
	}

	var b strings.Builder
	for i, r := range glyph {
		if r == utf8.RuneError {
			return "", fmt.Errorf("glyph %q has an unresolvable code point at byte %d", glyph, i)
		}
		if b.Len() > 0 {
			b.WriteString(IdentifierSeparator)
		}
		b.WriteString(strings.ToUpper(strconv.FormatInt(int64(r), 16)))
	}
	return b.String(), nil
}

// GlyphFromIdentifier reverses DeriveIdentifier.
func GlyphFromIdentifier(identifier string) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("empty identifier")
	}

	var b strings.Builder
	for _, part := range strings.Split(identifier, IdentifierSeparator) {
		if part == "" || part != strings.ToUpper(part) || (len(part) > 1 && part[0] == '0') {
			return "", fmt.Errorf("identifier %q is not canonical", identifier)
		}
		cp, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return "", fmt.Errorf("identifier %q: %w", identifier, err)
		}
		r := rune(cp)
		if !utf8.ValidRune(r) || r == utf8.RuneError {
			return "", fmt.Errorf("identifier %q contains invalid code point %s", identifier, part)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
