package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vyevs/ansi"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
	"github.com/robalobadob/wordle-placer/internal/placement"
)

// solveOptions holds options for the solve command.
type solveOptions struct {
	fixed        string
	pool         string
	bans         []string
	dismissed    []string
	complete     bool
	letters      string
	maxPerLetter int
	maxPool      int
	noColor      bool
}

// originColors maps a cell's origin to its terminal colour.
var originColors = map[placement.Origin]string{
	placement.OriginFixed:      "green",
	placement.OriginPool:       "yellow",
	placement.OriginCompletion: "cyan",
	placement.OriginEmpty:      "light gray",
}

func (a *App) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print every arrangement consistent with the known letters",
		Long: `Print every arrangement consistent with the known letters.

Slots are numbered 0-4 from the right, as the word is read. Patterns use
"_" for an unknown slot and list slots in that order.

Examples:
  # ת is the last letter, ב appears twice somewhere else
  placer solve --fixed ____ת --pool בב

  # ...but ב is not the first letter, and one pattern was already tried
  placer solve --fixed ____ת --pool בב --ban ב:0 --dismiss _ב_בת

  # fill remaining blanks from the known letters
  placer solve --fixed ____ת --pool ב --complete`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.fixed, "fixed", "f", "_____", "Fixed letters as a 5-slot pattern")
	cmd.Flags().StringVarP(&opts.pool, "pool", "p", "", "Letters in the word at unknown positions")
	cmd.Flags().StringSliceVarP(&opts.bans, "ban", "b", nil, "Position ban as LETTER:SLOT (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.dismissed, "dismiss", "d", nil, "Pattern to hide (repeatable)")
	cmd.Flags().BoolVarP(&opts.complete, "complete", "c", false, "Fill leftover blanks")
	cmd.Flags().StringVar(&opts.letters, "letters", "", "Letters used to fill blanks (default: fixed and pool letters)")
	cmd.Flags().IntVar(&opts.maxPerLetter, "max-per-letter", placement.DefaultMaxPerLetter, "Most times a letter may appear when filling blanks")
	cmd.Flags().IntVar(&opts.maxPool, "max-pool", placement.DefaultMaxPool, "Longest pool that is used")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	return cmd
}

func (a *App) solve(opts *solveOptions) error {
	pattern, err := placement.ParseFingerprint(opts.fixed)
	if err != nil {
		return fmt.Errorf("--fixed: %w", err)
	}
	var fixed [placement.SlotCount]string
	copy(fixed[:], pattern.Letters())

	x := placement.NewExclusions()
	for _, raw := range opts.bans {
		letter, pos, err := parseBan(raw)
		if err == nil {
			err = x.Ban(letter, pos)
		}
		if err != nil {
			return fmt.Errorf("--ban %s: %w", raw, err)
		}
	}
	for _, fp := range opts.dismissed {
		if err := x.DismissFingerprint(fp); err != nil {
			return fmt.Errorf("--dismiss: %w", err)
		}
	}

	req := placement.Request{
		Fixed:   fixed,
		Pool:    opts.pool,
		MaxPool: opts.maxPool,
		Completion: placement.Completion{
			Enabled:      opts.complete,
			MaxPerLetter: opts.maxPerLetter,
		},
	}
	if opts.letters != "" {
		req.Completion.Letters = []rune(opts.letters)
	}

	res := placement.Recompute(req, x)
	a.logger.Debug().
		Str("base", res.Input.Base.Fingerprint()).
		Str("pool", res.Input.PoolText).
		Int("fixed", res.Input.FixedCount()).
		Int("free", len(res.Input.Free)).
		Int("generated", res.Generated).
		Int("bans", len(x.Bans())).
		Int("dismissed", len(x.Dismissed())).
		Msg("recomputed")

	if res.Warning != nil {
		fmt.Fprintln(a.stderr, res.Warning.Message())
		return nil
	}
	if res.Input.Rewritten {
		a.logger.Info().Str("pool", res.Input.PoolText).Msg("pool rewritten")
	}

	for _, c := range res.Candidates {
		fmt.Fprintln(a.stdout, a.render(c, opts.noColor))
	}
	fmt.Fprintf(a.stdout, "%d candidates (%d generated)\n", len(res.Candidates), res.Generated)
	return nil
}

// render prints a candidate as the player reads it, each cell coloured by origin.
func (a *App) render(c placement.Candidate, noColor bool) string {
	if noColor {
		return c.Arrangement.Display()
	}
	var b strings.Builder
	b.Grow(64)
	for i, r := range c.Arrangement {
		b.WriteString(ansi.FGColorName(originColors[c.Origins[i]]))
		if r == placement.Empty {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(alphabet.DisplayForm(r, i, placement.SlotCount))
	}
	b.WriteString(ansi.Clear)
	return b.String()
}

// parseBan reads "LETTER:SLOT".
func parseBan(s string) (rune, int, error) {
	letter, slot, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want LETTER:SLOT")
	}
	rs := []rune(strings.TrimSpace(letter))
	if len(rs) != 1 {
		return 0, 0, fmt.Errorf("want a single letter, got %q", letter)
	}
	pos, err := strconv.Atoi(strings.TrimSpace(slot))
	if err != nil {
		return 0, 0, fmt.Errorf("slot: %w", err)
	}
	return rs[0], pos, nil
}
