package placement

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
)

// Ban says a letter is known not to sit at a visual position.
type Ban struct {
	Letter   rune
	Position int
}

// Exclusions holds position bans and dismissed fingerprints. Both only grow.
// Not safe for concurrent mutation; the owner serializes access.
type Exclusions struct {
	bans      map[rune]*bitset.BitSet // letter -> banned positions
	banOrder  []Ban
	dismissed map[string]struct{}
	dismissal []string
}

// NewExclusions returns an empty constraint set.
func NewExclusions() *Exclusions {
	return &Exclusions{
		bans:      make(map[rune]*bitset.BitSet),
		dismissed: make(map[string]struct{}),
	}
}

// Ban excludes letter from position. Final forms are canonicalized.
// Adding an existing ban is a no-op.
func (x *Exclusions) Ban(letter rune, position int) error {
	if !alphabet.IsLetter(letter) {
		return fmt.Errorf("ban: %q is not a letter", letter)
	}
	if position < 0 || position >= SlotCount {
		return fmt.Errorf("ban: position %d out of range 0..%d", position, SlotCount-1)
	}
	letter = alphabet.Canonical(letter)
	set, ok := x.bans[letter]
	if !ok {
		set = bitset.New(SlotCount)
		x.bans[letter] = set
	}
	if set.Test(uint(position)) {
		return nil
	}
	set.Set(uint(position))
	x.banOrder = append(x.banOrder, Ban{Letter: letter, Position: position})
	return nil
}

// Dismiss hides one exact arrangement from all future output.
func (x *Exclusions) Dismiss(a Arrangement) {
	fp := a.Fingerprint()
	if _, ok := x.dismissed[fp]; ok {
		return
	}
	x.dismissed[fp] = struct{}{}
	x.dismissal = append(x.dismissal, fp)
}

// DismissFingerprint parses fp and dismisses the arrangement it names.
func (x *Exclusions) DismissFingerprint(fp string) error {
	a, err := ParseFingerprint(fp)
	if err != nil {
		return err
	}
	x.Dismiss(a)
	return nil
}

// IsBanned reports whether letter is banned at position.
func (x *Exclusions) IsBanned(letter rune, position int) bool {
	if x == nil || position < 0 || position >= SlotCount {
		return false
	}
	set, ok := x.bans[alphabet.Canonical(letter)]
	return ok && set.Test(uint(position))
}

// IsDismissed reports whether the arrangement was dismissed.
func (x *Exclusions) IsDismissed(a Arrangement) bool {
	if x == nil {
		return false
	}
	_, ok := x.dismissed[a.Fingerprint()]
	return ok
}

// Allows reports whether a survives both kinds of exclusion. A nil
// *Exclusions allows everything.
func (x *Exclusions) Allows(a Arrangement) bool {
	if x == nil {
		return true
	}
	if x.IsDismissed(a) {
		return false
	}
	for i, r := range a {
		if r != Empty && x.IsBanned(r, i) {
			return false
		}
	}
	return true
}

// Filter keeps the allowed candidates, preserving order.
func (x *Exclusions) Filter(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if x.Allows(c.Arrangement) {
			out = append(out, c)
		}
	}
	return out
}

// Bans lists the bans in the order they were added.
func (x *Exclusions) Bans() []Ban {
	if x == nil {
		return nil
	}
	return slices.Clone(x.banOrder)
}

// Dismissed lists dismissed fingerprints in the order they were added.
func (x *Exclusions) Dismissed() []string {
	if x == nil {
		return nil
	}
	return slices.Clone(x.dismissal)
}
