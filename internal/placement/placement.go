package placement

import (
	"cmp"
	"slices"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
)

// PlaceMultiset fills exactly the target slots of base with the letters in
// counts, every letter used as many times as its count. Letters are tried in
// alphabet order at each target, so the output order is deterministic and a
// pool with repeats yields k!/∏(c!) arrangements without further dedup.
//
// counts is not modified. If the total count differs from len(targets) the
// result is empty.
func PlaceMultiset(base Arrangement, targets []int, counts map[rune]int) []Arrangement {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(targets) {
		return nil
	}

	letters := sortedLetters(counts)
	remaining := make([]int, len(letters))
	for i, r := range letters {
		remaining[i] = counts[r]
	}

	var out []Arrangement
	cur := base

	var backtrack func(ti int)
	backtrack = func(ti int) {
		if ti == len(targets) {
			out = append(out, cur) // array copy; cur keeps changing
			return
		}
		slot := targets[ti]
		for li, r := range letters {
			if remaining[li] == 0 {
				continue
			}
			remaining[li]--
			cur[slot] = r

			backtrack(ti + 1)

			cur[slot] = base[slot]
			remaining[li]++
		}
	}
	backtrack(0)
	return out
}

// CompleteRemaining fills any subset of the empty slots of a with letters
// from letters. maxPerLetter bounds a letter's total occurrences in the
// finished arrangement, counting the copies already in a (fixed or pool),
// not the number of copies completion adds: with a cap of 2, a letter that
// already appears once may be added once more, and a letter already at the
// cap is never added. Slots are visited left to right; at each, leaving it
// empty is tried before the letters in alphabet order. The untouched
// arrangement itself is not returned.
func CompleteRemaining(a Arrangement, letters []rune, maxPerLetter int) []Arrangement {
	if maxPerLetter <= 0 {
		return nil
	}
	cands := canonicalSet(letters)
	holes := a.EmptyPositions()
	if len(cands) == 0 || len(holes) == 0 {
		return nil
	}

	used := make(map[rune]int, len(cands))
	for _, r := range cands {
		used[r] = a.Count(r)
	}

	var out []Arrangement
	cur := a
	filled := 0

	var rec func(hi int)
	rec = func(hi int) {
		if hi == len(holes) {
			if filled > 0 {
				out = append(out, cur)
			}
			return
		}
		rec(hi + 1)

		slot := holes[hi]
		for _, r := range cands {
			if used[r] >= maxPerLetter {
				continue
			}
			used[r]++
			filled++
			cur[slot] = r

			rec(hi + 1)

			cur[slot] = Empty
			filled--
			used[r]--
		}
	}
	rec(0)
	return out
}

// sortedLetters returns the letters with a positive count, in alphabet order.
func sortedLetters(counts map[rune]int) []rune {
	out := make([]rune, 0, len(counts))
	for r, c := range counts {
		if c > 0 {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, compareLetters)
	return out
}

// canonicalSet canonicalizes, drops non-letters and duplicates, and sorts.
func canonicalSet(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if !alphabet.IsLetter(r) {
			continue
		}
		out = append(out, alphabet.Canonical(r))
	}
	slices.SortFunc(out, compareLetters)
	return slices.Compact(out)
}

func compareLetters(a, b rune) int {
	if c := cmp.Compare(alphabet.Index(a), alphabet.Index(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
