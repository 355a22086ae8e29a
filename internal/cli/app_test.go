package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := New().WithOutput(&stdout, &stderr).ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Version(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "placer version") {
		t.Errorf("version output = %q", out)
	}
}

func TestApp_Solve(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		lines []string
	}{
		{
			name:  "pool only",
			args:  []string{"--fixed", "____ת", "--pool", "בב"},
			lines: []string{"בב__ת", "ב_ב_ת", "ב__בת", "_בב_ת", "_ב_בת", "__בבת", "6 candidates (6 generated)"},
		},
		{
			name:  "bans and dismissals",
			args:  []string{"--fixed", "____ת", "--pool", "בב", "--ban", "ב:0", "--dismiss", "_ב_בת"},
			lines: []string{"_בב_ת", "__בבת", "2 candidates (6 generated)"},
		},
		{
			name:  "final form in last slot",
			args:  []string{"--fixed", "שלו_מ"},
			lines: []string{"שלו_ם", "1 candidates (1 generated)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"solve", "--no-color"}, tt.args...)
			out, _, err := run(t, args...)
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}
			got := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if strings.Join(got, "|") != strings.Join(tt.lines, "|") {
				t.Errorf("output =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.lines, "\n"))
			}
		})
	}
}

func TestApp_SolveTooManyKnownLetters(t *testing.T) {
	out, errOut, err := run(t, "solve", "--fixed", "אבג__", "--pool", "דהו")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if out != "" {
		t.Errorf("unexpected candidates: %q", out)
	}
	if !strings.Contains(errOut, "3") || !strings.Contains(errOut, "2") {
		t.Errorf("warning should name provided and free counts, got %q", errOut)
	}
}

func TestApp_SolveRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"solve", "--fixed", "abc"},
		{"solve", "--ban", "ב"},
		{"solve", "--ban", "ב:9"},
		{"solve", "--dismiss", "xx"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestApp_SolveColoured(t *testing.T) {
	out, _, err := run(t, "solve", "--fixed", "____ת", "--pool", "ב")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", out)
	}
}
