// internal/placement/engine.go
//
// Placement engine: enumerates every 5-slot arrangement consistent with the
// fixed letters and the pool, then applies the player's exclusions.
// Responsibilities:
//   - Normalize raw input (see normalize.go).
//   - For each k-subset of free slots, place the pool multiset (PlaceMultiset).
//   - Optionally fill leftover blanks from a small alphabet (CompleteRemaining).
//   - Deduplicate by fingerprint, first occurrence wins.
//   - Filter by position bans and dismissed patterns (Exclusions).
//
// Notes:
//   - Everything here is pure; session state lives in internal/session.
//   - Generate's output depends only on (Input, Completion), so callers may
//     memoize it and re-run only the filter when exclusions change.
package placement

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultMaxPool caps the pool when no limit is configured.
	DefaultMaxPool = SlotCount
	// DefaultMaxPerLetter caps a letter's total occurrences under completion.
	DefaultMaxPerLetter = 2
)

// Completion configures the optional blank-filling extension.
type Completion struct {
	Enabled      bool
	Letters      []rune // nil or empty: fixed letters ∪ pool letters
	MaxPerLetter int    // <= 0: DefaultMaxPerLetter
}

// Request is one full recompute request.
type Request struct {
	Fixed      [SlotCount]string
	Pool       string
	MaxPool    int
	Completion Completion
}

// Result is the outcome of Recompute.
type Result struct {
	Input      Input
	Candidates []Candidate                // surviving, in generation order
	Generated  int                        // deduplicated count before filtering
	Warning    *TooManyKnownLettersError // set when generation was refused
}

// Arrangements returns just the arrangements of the surviving candidates.
func (r Result) Arrangements() []Arrangement {
	out := make([]Arrangement, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Arrangement
	}
	return out
}

// Recompute runs the whole pipeline for req and filters with x (nil: no
// exclusions). A TooManyKnownLetters condition is reported in
// Result.Warning with no candidates.
func Recompute(req Request, x *Exclusions) Result {
	in, err := Normalize(req.Fixed, req.Pool, req.MaxPool)
	if err != nil {
		var w *TooManyKnownLettersError
		errors.As(err, &w)
		return Result{Input: in, Warning: w}
	}
	all := Generate(in, req.Completion)
	return Result{
		Input:      in,
		Candidates: x.Filter(all),
		Generated:  len(all),
	}
}

// Generate enumerates the deduplicated, unfiltered candidates for in.
// An empty pool yields only the base pattern.
func Generate(in Input, c Completion) []Candidate {
	if len(in.Pool) == 0 {
		return []Candidate{baseCandidate(in.Base, in.Base)}
	}
	if len(in.Pool) > len(in.Free) {
		return nil
	}

	seen := make(map[string]struct{})
	var out []Candidate
	add := func(cand Candidate) {
		fp := cand.Arrangement.Fingerprint()
		if _, dup := seen[fp]; dup {
			return
		}
		seen[fp] = struct{}{}
		out = append(out, cand)
	}

	for subset := range Combinations(in.Free, len(in.Pool)) {
		for _, a := range PlaceMultiset(in.Base, subset, in.Counts) {
			add(baseCandidate(in.Base, a))
		}
	}

	if !c.Enabled {
		return out
	}
	letters := c.Letters
	if len(letters) == 0 {
		letters = DefaultCompletionLetters(in)
	}
	maxPer := c.MaxPerLetter
	if maxPer <= 0 {
		maxPer = DefaultMaxPerLetter
	}
	parents := out[:len(out):len(out)]
	for _, parent := range parents {
		for _, a := range CompleteRemaining(parent.Arrangement, letters, maxPer) {
			add(completedCandidate(parent, a))
		}
	}
	return out
}

// DefaultCompletionLetters returns the fixed letters and pool letters,
// deduplicated, in alphabet order.
func DefaultCompletionLetters(in Input) []rune {
	var rs []rune
	for _, r := range in.Base {
		if r != Empty {
			rs = append(rs, r)
		}
	}
	rs = append(rs, in.Pool...)
	return canonicalSet(rs)
}

// Key identifies the Generate output for (in, c); equal keys mean equal
// candidate lists.
func Key(in Input, c Completion) string {
	var b strings.Builder
	b.WriteString(in.Base.Fingerprint())
	b.WriteByte('|')
	pool := slices.Clone(in.Pool)
	slices.SortFunc(pool, compareLetters)
	b.WriteString(string(pool))
	if c.Enabled {
		b.WriteString("|c:")
		letters := c.Letters
		if len(letters) == 0 {
			letters = DefaultCompletionLetters(in)
		}
		for _, r := range canonicalSet(letters) {
			b.WriteRune(r)
		}
		maxPer := c.MaxPerLetter
		if maxPer <= 0 {
			maxPer = DefaultMaxPerLetter
		}
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(maxPer))
	}
	return b.String()
}

func baseCandidate(base, a Arrangement) Candidate {
	cand := Candidate{Arrangement: a}
	for i := range a {
		switch {
		case base[i] != Empty:
			cand.Origins[i] = OriginFixed
		case a[i] != Empty:
			cand.Origins[i] = OriginPool
		default:
			cand.Origins[i] = OriginEmpty
		}
	}
	return cand
}

func completedCandidate(parent Candidate, a Arrangement) Candidate {
	cand := Candidate{Arrangement: a, Origins: parent.Origins}
	for i := range a {
		if parent.Arrangement[i] == Empty && a[i] != Empty {
			cand.Origins[i] = OriginCompletion
		}
	}
	return cand
}
