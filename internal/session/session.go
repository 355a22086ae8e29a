// internal/session/session.go
//
// Per-player solving state.
// Responsibilities:
//   - Hold the fixed letters, pool text and completion options as last entered.
//   - Own the exclusion sets (position bans, dismissed patterns). They only
//     grow; a new session is the only way to clear them.
//   - Recompute candidates through the placement engine, memoizing the
//     unfiltered list so that bans and dismissals only re-run the filter.
//
// Notes:
//   - A Session serializes its own mutations with a mutex.
//   - Snapshot/Restore give stores a plain value to persist.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-placer/internal/placement"
)

// Settings are the per-deployment limits applied to every session.
type Settings struct {
	MaxPool      int // pool cap; <= 0 means placement.DefaultMaxPool
	MaxPerLetter int // completion cap when the player gives none
}

// Input is one full edit of the player's entry fields.
type Input struct {
	Fixed      [placement.SlotCount]string
	Pool       string
	Completion placement.Completion
}

// View is what the player sees after any change.
type View struct {
	ID         string
	Fixed      [placement.SlotCount]string // canonical letter or ""
	Pool       string                      // effective pool text (write back)
	Rewritten  bool                        // Pool differs from what was sent
	Completion placement.Completion
	Candidates []placement.Candidate
	Generated  int
	Warning    *placement.TooManyKnownLettersError
	Bans       []placement.Ban
	Dismissed  []string
	UpdatedAt  time.Time
}

// Session is one player's state.
type Session struct {
	mu sync.Mutex

	id        string
	settings  Settings
	createdAt time.Time
	updatedAt time.Time

	fixed      [placement.SlotCount]string
	pool       string
	completion placement.Completion
	exclusions *placement.Exclusions

	memoKey string
	memo    []placement.Candidate
	result  placement.Result
}

// New creates an empty session with a fresh ID and computes its initial
// view (the all-empty pattern).
func New(settings Settings) *Session {
	now := time.Now().UTC()
	s := &Session{
		id:         uuid.NewString(),
		settings:   settings,
		createdAt:  now,
		updatedAt:  now,
		exclusions: placement.NewExclusions(),
	}
	s.recompute()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UpdatedAt returns when the session last changed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SetInput replaces the entry fields and recomputes from scratch.
// Exclusions are kept.
func (s *Session) SetInput(in Input) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pool = in.Pool
	s.completion = in.Completion
	if s.completion.Enabled && s.completion.MaxPerLetter <= 0 {
		s.completion.MaxPerLetter = s.settings.MaxPerLetter
	}
	s.fixed = in.Fixed
	s.touch()
	return s.recompute()
}

// Ban records that letter is not at position and re-filters.
func (s *Session) Ban(letter rune, position int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exclusions.Ban(letter, position); err != nil {
		return s.view(false), err
	}
	s.touch()
	return s.refilter(), nil
}

// Dismiss hides the arrangement named by fingerprint and re-filters.
func (s *Session) Dismiss(fingerprint string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exclusions.DismissFingerprint(fingerprint); err != nil {
		return s.view(false), err
	}
	s.touch()
	return s.refilter(), nil
}

// View returns the current state without recomputing.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(false)
}

func (s *Session) touch() { s.updatedAt = time.Now().UTC() }

// recompute normalizes the stored input, regenerates when the engine key
// changed, and filters. Caller holds mu (or owns s exclusively).
func (s *Session) recompute() View {
	in, err := placement.Normalize(s.fixed, s.pool, s.settings.MaxPool)
	copy(s.fixed[:], in.Base.Letters())
	rewritten := in.Rewritten
	s.pool = in.PoolText

	if err != nil {
		// Prior results are cleared; the memo stays valid for its key.
		s.result = placement.Result{Input: in}
		errors.As(err, &s.result.Warning)
		return s.view(rewritten)
	}

	key := placement.Key(in, s.completion)
	if key != s.memoKey || s.memo == nil {
		s.memo = placement.Generate(in, s.completion)
		s.memoKey = key
	}
	s.result = placement.Result{Input: in, Generated: len(s.memo)}
	return s.refilterWith(rewritten)
}

func (s *Session) refilter() View { return s.refilterWith(false) }

func (s *Session) refilterWith(rewritten bool) View {
	if s.result.Warning == nil {
		s.result.Candidates = s.exclusions.Filter(s.memo)
	}
	return s.view(rewritten)
}

func (s *Session) view(rewritten bool) View {
	return View{
		ID:         s.id,
		Fixed:      s.fixed,
		Pool:       s.pool,
		Rewritten:  rewritten,
		Completion: s.completion,
		Candidates: s.result.Candidates,
		Generated:  s.result.Generated,
		Warning:    s.result.Warning,
		Bans:       s.exclusions.Bans(),
		Dismissed:  s.exclusions.Dismissed(),
		UpdatedAt:  s.updatedAt,
	}
}
