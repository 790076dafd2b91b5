// Package catalog provides the static emoji metadata table consumed by the
// backend protocol. The catalog is process-immutable: callers always receive
// a fresh snapshot sorted by display name.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Emoji describes one catalog entry as it appears on the wire.
type Emoji struct {
	// Char is the emoji glyph itself (may be multiple code points).
	Char string `json:"char"`

	// Name is the human-readable display name, title-cased.
	Name string `json:"name"`

	// Category is the Unicode block grouping (e.g. "Smileys & Emotion").
	Category string `json:"category"`

	// Codepoints is the underscore-joined uppercase 4-digit hex form of
	// each code point, e.g. "1F600" or "2764_FE0F".
	Codepoints string `json:"codepoints"`
}

// Codepoints formats a character's code points as underscore-joined
// uppercase 4-digit hex. This is a pure function with no side effects.
//
// Example:
//
//	Codepoints("😀")  // "1F600"
//	Codepoints("❤️") // "2764_FE0F"
func Codepoints(char string) string {
	parts := make([]string, 0, len(char))
	for _, r := range char {
		parts = append(parts, fmt.Sprintf("%04X", r))
	}
	return strings.Join(parts, "_")
}

// All returns the full catalog snapshot sorted by display name.
// The returned slice is a copy; callers may mutate it freely.
func All() []Emoji {
	out := make([]Emoji, len(entries))
	for i, e := range entries {
		out[i] = Emoji{
			Char:       e.char,
			Name:       e.name,
			Category:   e.category,
			Codepoints: Codepoints(e.char),
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Size returns the number of catalog entries.
func Size() int {
	return len(entries)
}
