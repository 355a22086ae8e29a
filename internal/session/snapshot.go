package session

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordle-placer/internal/placement"
)

// Snapshot is the persistable form of a Session. Candidates are not stored;
// Restore recomputes them.
type Snapshot struct {
	ID         string                      `json:"id"`
	Fixed      [placement.SlotCount]string `json:"fixed"`
	Pool       string                      `json:"pool"`
	Completion CompletionSnapshot          `json:"completion"`
	Bans       []BanSnapshot               `json:"bans"`
	Dismissed  []string                    `json:"dismissed"`
	CreatedAt  time.Time                   `json:"createdAt"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}

// CompletionSnapshot mirrors placement.Completion with string letters.
type CompletionSnapshot struct {
	Enabled      bool   `json:"enabled"`
	Letters      string `json:"letters,omitempty"`
	MaxPerLetter int    `json:"maxPerLetter,omitempty"`
}

// BanSnapshot mirrors placement.Ban with a string letter.
type BanSnapshot struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
}

// Snapshot captures the session's input and exclusions.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:    s.id,
		Fixed: s.fixed,
		Pool:  s.pool,
		Completion: CompletionSnapshot{
			Enabled:      s.completion.Enabled,
			Letters:      string(s.completion.Letters),
			MaxPerLetter: s.completion.MaxPerLetter,
		},
		Dismissed: s.exclusions.Dismissed(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	for _, b := range s.exclusions.Bans() {
		snap.Bans = append(snap.Bans, BanSnapshot{Letter: string(b.Letter), Position: b.Position})
	}
	return snap
}

// Restore rebuilds a Session from a snapshot and recomputes its candidates.
func Restore(snap Snapshot, settings Settings) (*Session, error) {
	if snap.ID == "" {
		return nil, fmt.Errorf("restore: empty session id")
	}
	s := &Session{
		id:        snap.ID,
		settings:  settings,
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
		fixed:     snap.Fixed,
		pool:      snap.Pool,
		completion: placement.Completion{
			Enabled:      snap.Completion.Enabled,
			MaxPerLetter: snap.Completion.MaxPerLetter,
		},
		exclusions: placement.NewExclusions(),
	}
	if snap.Completion.Letters != "" {
		s.completion.Letters = []rune(snap.Completion.Letters)
	}
	for _, b := range snap.Bans {
		rs := []rune(b.Letter)
		if len(rs) != 1 {
			return nil, fmt.Errorf("restore %s: bad ban letter %q", snap.ID, b.Letter)
		}
		if err := s.exclusions.Ban(rs[0], b.Position); err != nil {
			return nil, fmt.Errorf("restore %s: %w", snap.ID, err)
		}
	}
	for _, fp := range snap.Dismissed {
		if err := s.exclusions.DismissFingerprint(fp); err != nil {
			return nil, fmt.Errorf("restore %s: %w", snap.ID, err)
		}
	}
	s.recompute()
	return s, nil
}
