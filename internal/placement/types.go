// internal/placement/types.go
//
// Core type definitions for the placement engine.
// Defines:
//   - Arrangement: one concrete 5-slot assignment (a candidate answer).
//   - Origin/Candidate: an arrangement plus where each cell came from.
//   - TooManyKnownLettersError: the single recoverable input condition.

package placement

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
)

// SlotCount is the number of letters in a puzzle word.
const SlotCount = 5

// Empty marks a slot with no letter. It never collides with a letter.
const Empty rune = 0

// emptyMark is how Empty appears in fingerprints and display strings.
const emptyMark = '_'

// Arrangement holds one canonical letter (or Empty) per slot.
// Index 0 is the rightmost on-screen cell; visual index == logical index.
type Arrangement [SlotCount]rune

// Fingerprint returns the canonical key used for dedup and dismissal:
// the slot letters in order, "_" for empty slots.
func (a Arrangement) Fingerprint() string {
	var b strings.Builder
	b.Grow(SlotCount * 2)
	for _, r := range a {
		if r == Empty {
			b.WriteRune(emptyMark)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Display renders the arrangement for the player: blanks as "_" and the last
// slot in its final form.
func (a Arrangement) Display() string {
	var b strings.Builder
	b.Grow(SlotCount * 2)
	for i, r := range a {
		if r == Empty {
			b.WriteRune(emptyMark)
			continue
		}
		b.WriteRune(alphabet.DisplayForm(r, i, SlotCount))
	}
	return b.String()
}

// Letters returns the slots as strings, "" for empty.
func (a Arrangement) Letters() []string {
	out := make([]string, SlotCount)
	for i, r := range a {
		if r != Empty {
			out[i] = string(r)
		}
	}
	return out
}

// EmptyPositions lists the slot indexes that hold no letter, ascending.
func (a Arrangement) EmptyPositions() []int {
	var out []int
	for i, r := range a {
		if r == Empty {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many slots hold r.
func (a Arrangement) Count(r rune) int {
	n := 0
	for _, x := range a {
		if x == r {
			n++
		}
	}
	return n
}

// ParseFingerprint is the inverse of Fingerprint. Final forms are accepted
// and canonicalized.
func ParseFingerprint(s string) (Arrangement, error) {
	var a Arrangement
	rs := []rune(s)
	if len(rs) != SlotCount {
		return a, fmt.Errorf("fingerprint %q: want %d slots, got %d", s, SlotCount, len(rs))
	}
	for i, r := range rs {
		switch {
		case r == emptyMark:
			a[i] = Empty
		case alphabet.IsLetter(r):
			a[i] = alphabet.Canonical(r)
		default:
			return a, fmt.Errorf("fingerprint %q: slot %d holds %q", s, i, r)
		}
	}
	return a, nil
}

// Origin tells where the letter in a slot came from.
type Origin string

const (
	OriginEmpty      Origin = "empty"
	OriginFixed      Origin = "fixed"
	OriginPool       Origin = "pool"
	OriginCompletion Origin = "completion"
)

// Candidate is an arrangement together with per-slot origins.
type Candidate struct {
	Arrangement Arrangement
	Origins     [SlotCount]Origin
}

// TooManyKnownLettersError reports a pool larger than the free slots.
// Generation does not proceed; callers surface it as a warning.
type TooManyKnownLettersError struct {
	Provided int // normalized pool length
	Free     int // non-fixed slots
}

func (e *TooManyKnownLettersError) Error() string {
	return fmt.Sprintf("too many known letters: %d provided, %d free slots", e.Provided, e.Free)
}

// Message is the player-facing warning text.
func (e *TooManyKnownLettersError) Message() string {
	return fmt.Sprintf("הזנת %d אותיות ידועות, אבל יש רק %d מקומות פנויים בתבנית.", e.Provided, e.Free)
}
