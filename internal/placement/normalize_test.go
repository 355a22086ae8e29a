package placement

import (
	"errors"
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		fixed         [SlotCount]string
		pool          string
		maxPool       int
		wantBase      string
		wantFree      []int
		wantPool      string
		wantPoolText  string
		wantRewritten bool
	}{
		{
			name:         "nothing",
			wantBase:     "_____",
			wantFree:     []int{0, 1, 2, 3, 4},
			wantPool:     "",
			wantPoolText: "",
		},
		{
			name:         "fixed last slot",
			fixed:        [SlotCount]string{4: "ת"},
			pool:         "בב",
			wantBase:     "____ת",
			wantFree:     []int{0, 1, 2, 3},
			wantPool:     "בב",
			wantPoolText: "בב",
		},
		{
			name:          "whitespace and junk dropped",
			pool:          " א ב1c\t",
			wantBase:      "_____",
			wantFree:      []int{0, 1, 2, 3, 4},
			wantPool:      "אב",
			wantPoolText:  "אב",
			wantRewritten: true,
		},
		{
			name:         "final forms canonicalized",
			fixed:        [SlotCount]string{4: "ם"},
			pool:         "ךן",
			wantBase:     "____מ",
			wantFree:     []int{0, 1, 2, 3},
			wantPool:     "כנ",
			wantPoolText: "ךן",
		},
		{
			name:     "fixed slot keeps last letter",
			fixed:    [SlotCount]string{0: "אב", 1: "x", 2: " ג "},
			wantBase: "ב_ג__",
			wantFree: []int{1, 3, 4},
		},
		{
			name:          "cut to configured max",
			pool:          "אבגדה",
			maxPool:       4,
			wantBase:      "_____",
			wantFree:      []int{0, 1, 2, 3, 4},
			wantPool:      "אבגד",
			wantPoolText:  "אבגד",
			wantRewritten: true,
		},
		{
			name:         "max above slot count falls back to default",
			pool:         "אבגדה",
			maxPool:      9,
			wantBase:     "_____",
			wantFree:     []int{0, 1, 2, 3, 4},
			wantPool:     "אבגדה",
			wantPoolText: "אבגדה",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Normalize(tt.fixed, tt.pool, tt.maxPool)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if got := in.Base.Fingerprint(); got != tt.wantBase {
				t.Errorf("base = %q, want %q", got, tt.wantBase)
			}
			if !slices.Equal(in.Free, tt.wantFree) {
				t.Errorf("free = %v, want %v", in.Free, tt.wantFree)
			}
			if got := string(in.Pool); got != tt.wantPool {
				t.Errorf("pool = %q, want %q", got, tt.wantPool)
			}
			if in.PoolText != tt.wantPoolText {
				t.Errorf("pool text = %q, want %q", in.PoolText, tt.wantPoolText)
			}
			if in.Rewritten != tt.wantRewritten {
				t.Errorf("rewritten = %v, want %v", in.Rewritten, tt.wantRewritten)
			}
			total := 0
			for _, c := range in.Counts {
				total += c
			}
			if total != len(in.Pool) {
				t.Errorf("counts total %d, pool length %d", total, len(in.Pool))
			}
		})
	}
}

func TestNormalizeTooManyKnownLetters(t *testing.T) {
	fixed := [SlotCount]string{0: "א", 1: "ב", 2: "ג"}
	in, err := Normalize(fixed, "דהו", 5)

	var tooMany *TooManyKnownLettersError
	if !errors.As(err, &tooMany) {
		t.Fatalf("want TooManyKnownLettersError, got %v", err)
	}
	if tooMany.Provided != 3 || tooMany.Free != 2 {
		t.Fatalf("got provided=%d free=%d, want 3 and 2", tooMany.Provided, tooMany.Free)
	}
	if len(in.Pool) != 0 {
		t.Fatalf("pool should be empty on error, got %q", string(in.Pool))
	}
	if in.FixedCount() != 3 {
		t.Fatalf("fixed count = %d, want 3", in.FixedCount())
	}
	if tooMany.Message() == "" || tooMany.Error() == "" {
		t.Fatalf("empty error text")
	}
}

func TestNormalizeCountsBeforeCut(t *testing.T) {
	// Junk does not count toward the free-slot check.
	fixed := [SlotCount]string{0: "א", 1: "ב", 2: "ג"}
	if _, err := Normalize(fixed, "ד 1 ה", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
