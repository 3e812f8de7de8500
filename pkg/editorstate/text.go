package editorstate

import (
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// Length returns the length of s in UTF-16 code units, the unit the editor
// uses for offsets.
func Length(s string) int {
	n := 0
	for _, r := range s {
		// ranging over a string never yields surrogates, so RuneLen is 1 or 2
		n += utf16.RuneLen(r)
	}
	return n
}

// Slice returns the substring of text starting at offset and spanning length
// UTF-16 code units. Out of range arguments are clamped.
func Slice(text string, offset, length int) string {
	units := utf16.Encode([]rune(text))
	if offset < 0 {
		offset = 0
	}
	if offset > len(units) {
		offset = len(units)
	}
	end := offset + length
	if length < 0 || end > len(units) {
		end = len(units)
	}
	return string(utf16.Decode(units[offset:end]))
}

// DefaultKeyGen produces short random block keys
func DefaultKeyGen() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}

// PlainText joins the text of all blocks with newlines
func (c ContentState) PlainText() string {
	parts := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}
