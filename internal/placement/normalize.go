package placement

import (
	"strings"
	"unicode"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
)

// Input is raw player input reduced to engine parameters.
type Input struct {
	Base   Arrangement  // fixed letters in place, Empty elsewhere
	Free   []int        // non-fixed slot indexes, ascending
	Pool   []rune       // effective pool letters, canonical, input order
	Counts map[rune]int // multiset view of Pool

	// PoolText is the pool as the player should now see it: whitespace and
	// non-letters removed, cut to the effective maximum. Letter forms are kept
	// as typed. Rewritten is set when it differs from the raw text.
	PoolText  string
	Rewritten bool
}

// FixedCount returns the number of pinned slots.
func (in Input) FixedCount() int { return SlotCount - len(in.Free) }

// Normalize turns raw fixed-slot text and the raw pool string into an Input.
//
// A fixed slot keeps the last letter typed into it (any other characters are
// ignored). The pool loses whitespace and non-letters and is cut to
// min(maxPool, free slots). If the cleaned pool is longer than the free slots
// a *TooManyKnownLettersError is returned alongside an Input with an empty
// pool.
func Normalize(fixed [SlotCount]string, pool string, maxPool int) (Input, error) {
	if maxPool <= 0 || maxPool > SlotCount {
		maxPool = SlotCount
	}

	var in Input
	for i, raw := range fixed {
		if r, ok := lastLetter(raw); ok {
			in.Base[i] = alphabet.Canonical(r)
			continue
		}
		in.Free = append(in.Free, i)
	}

	cleaned := cleanPool(pool)
	if len(cleaned) > len(in.Free) {
		in.PoolText = string(cleaned)
		in.Rewritten = in.PoolText != pool
		in.Counts = map[rune]int{}
		return in, &TooManyKnownLettersError{Provided: len(cleaned), Free: len(in.Free)}
	}

	limit := min(maxPool, len(in.Free))
	if len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	in.PoolText = string(cleaned)
	in.Rewritten = in.PoolText != pool

	in.Pool = make([]rune, len(cleaned))
	in.Counts = make(map[rune]int, len(cleaned))
	for i, r := range cleaned {
		c := alphabet.Canonical(r)
		in.Pool[i] = c
		in.Counts[c]++
	}
	return in, nil
}

// lastLetter returns the last puzzle letter in s.
func lastLetter(s string) (rune, bool) {
	rs := []rune(strings.TrimSpace(s))
	for i := len(rs) - 1; i >= 0; i-- {
		if alphabet.IsLetter(rs[i]) {
			return rs[i], true
		}
	}
	return 0, false
}

// cleanPool drops whitespace and anything that is not a puzzle letter.
func cleanPool(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || !alphabet.IsLetter(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
