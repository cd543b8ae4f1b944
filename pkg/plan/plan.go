package plan

import (
	"errors"
	"fmt"
)

// ErrConflict is returned when a key is staged twice with different
// normalized values.
var ErrConflict = errors.New("conflicting replacement staged for key")

// Replacement represents one staged timestamp rewrite.
type Replacement struct {
	// Key identifies the source location of the candidate: an EXIF tag name
	// for images, a "line:column" position for text.
	Key string

	Original   string
	Normalized string
}

// Set accumulates replacements during a single file pass.
//
// Processors stage everything into a Set first and mutate the file at most
// once afterwards, so a failure partway through evaluation never leaves a
// partially-rewritten file.
type Set struct {
	items []Replacement
	byKey map[string]int
}

// NewSet returns an empty replacement set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]int)}
}

// Stage records a replacement for key. Staging the identical replacement
// twice is a no-op; staging a different normalized value for an existing key
// returns ErrConflict.
func (s *Set) Stage(key, original, normalized string) error {
	if i, ok := s.byKey[key]; ok {
		prev := s.items[i]
		if prev.Original == original && prev.Normalized == normalized {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflict, key)
	}

	s.byKey[key] = len(s.items)
	s.items = append(s.items, Replacement{Key: key, Original: original, Normalized: normalized})
	return nil
}

// Items returns the staged replacements in insertion order.
func (s *Set) Items() []Replacement {
	out := make([]Replacement, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of staged replacements.
func (s *Set) Len() int {
	return len(s.items)
}

// Empty reports whether nothing was staged.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}
