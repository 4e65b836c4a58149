package model

// Slot is one character position of a positional sequence. A slot with
// Matched false is the explicit "no match" marker.
type Slot struct {
	Identifier string `json:"identifier,omitempty"`
	Matched    bool   `json:"matched"`
}

// NoMatch is the slot used for characters without a selected pictogram.
var NoMatch = Slot{}

// MatchedSlot returns a slot holding identifier.
func MatchedSlot(identifier string) Slot {
	return Slot{Identifier: identifier, Matched: true}
}

// Sequence is the per-character pictogram assignment consumed by rendering.
// AllNoMatch is a soft warning: the build succeeded but nothing would be drawn.
type Sequence struct {
	Slots      []Slot `json:"slots"`
	Matched    int    `json:"matched"`
	AllNoMatch bool   `json:"all_no_match"`
	Warning    string `json:"warning,omitempty"`
}

// Len returns the number of character slots.
func (s *Sequence) Len() int {
	return len(s.Slots)
}

// Identifiers returns the slot identifiers, with "" for no-match slots.
func (s *Sequence) Identifiers() []string {
	ids := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		ids[i] = slot.Identifier
	}
	return ids
}
