// internal/alphabet/alphabet.go
//
// The Hebrew consonantal alphabet used by the puzzle.
// Responsibilities:
//   - Canonical letter order (א..ת), used for deterministic enumeration.
//   - Final-form handling: five letters have a distinct form used only as the
//     last character of a word. All computation uses the regular form; the
//     final form is restored only when rendering the last slot.
//
// Notes:
//   - The final-form table is the single source for both directions.
package alphabet

// Size is the number of canonical letters.
const Size = 22

// letters holds the canonical (regular-form) alphabet in order.
var letters = [Size]rune{
	'א', 'ב', 'ג', 'ד', 'ה', 'ו', 'ז', 'ח', 'ט', 'י', 'כ',
	'ל', 'מ', 'נ', 'ס', 'ע', 'פ', 'צ', 'ק', 'ר', 'ש', 'ת',
}

// FinalPair links a regular letter to its word-final form.
type FinalPair struct {
	Regular rune `json:"regular"`
	Final   rune `json:"final"`
}

var finalPairs = [...]FinalPair{
	{'כ', 'ך'},
	{'מ', 'ם'},
	{'נ', 'ן'},
	{'פ', 'ף'},
	{'צ', 'ץ'},
}

var (
	toFinal   = make(map[rune]rune, len(finalPairs))
	toRegular = make(map[rune]rune, len(finalPairs))
	order     = make(map[rune]int, Size)
)

func init() {
	for _, p := range finalPairs {
		toFinal[p.Regular] = p.Final
		toRegular[p.Final] = p.Regular
	}
	for i, r := range letters {
		order[r] = i
	}
}

// Letters returns the canonical alphabet in order.
func Letters() []rune {
	out := make([]rune, Size)
	copy(out, letters[:])
	return out
}

// FinalPairs returns the five regular/final pairs.
func FinalPairs() []FinalPair {
	out := make([]FinalPair, len(finalPairs))
	copy(out, finalPairs[:])
	return out
}

// Canonical maps a final form to its regular form. Other runes pass through.
func Canonical(r rune) rune {
	if reg, ok := toRegular[r]; ok {
		return reg
	}
	return r
}

// Final maps a regular letter to its final form, if it has one.
func Final(r rune) rune {
	if f, ok := toFinal[r]; ok {
		return f
	}
	return r
}

// IsLetter reports whether r is a puzzle letter in either form.
func IsLetter(r rune) bool {
	_, ok := order[Canonical(r)]
	return ok
}

// Index returns the canonical position of r (0..21), or -1.
func Index(r rune) int {
	if i, ok := order[Canonical(r)]; ok {
		return i
	}
	return -1
}


// DisplayForm returns how r is rendered at slot pos of a word with n slots:
// the final form on the last slot, the regular form everywhere else.
func DisplayForm(r rune, pos, n int) rune {
	r = Canonical(r)
	if pos == n-1 {
		return Final(r)
	}
	return r
}
