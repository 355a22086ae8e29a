// internal/httpserver/api.go
//
// JSON payloads shared by the session and solve endpoints, plus the
// conversions between them and the engine/session types.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
	"github.com/robalobadob/wordle-placer/internal/placement"
	"github.com/robalobadob/wordle-placer/internal/session"
)

// completionReq configures the blank-filling extension.
type completionReq struct {
	Enabled      bool   `json:"enabled"`
	Letters      string `json:"letters,omitempty"` // empty: fixed ∪ pool
	MaxPerLetter int    `json:"maxPerLetter,omitempty"`
}

// inputReq is the payload for PUT /session/input.
type inputReq struct {
	Fixed      []string       `json:"fixed"` // up to 5 cells, index 0 = rightmost
	Pool       string         `json:"pool"`
	Completion *completionReq `json:"completion,omitempty"`
}

// banReq is the payload for POST /session/ban and an element of solveReq.
type banReq struct {
	Letter   string `json:"letter"`
	Position int    `json:"position"`
}

// dismissReq is the payload for POST /session/dismiss.
type dismissReq struct {
	Fingerprint string `json:"fingerprint"`
}

// solveReq is the payload for the stateless POST /solve.
type solveReq struct {
	inputReq
	Bans      []banReq `json:"bans"`
	Dismissed []string `json:"dismissed"`
}

// candidateRes is one arrangement as returned to clients.
type candidateRes struct {
	Fingerprint string                                `json:"fingerprint"`
	Display     string                                `json:"display"`
	Slots       [placement.SlotCount]string           `json:"slots"` // display forms, "" for blank
	Origins     [placement.SlotCount]placement.Origin `json:"origins"`
}

// warningRes reports the TooManyKnownLetters condition.
type warningRes struct {
	Kind     string `json:"kind"`
	Provided int    `json:"provided"`
	Free     int    `json:"free"`
	Message  string `json:"message"`
}

// viewRes is returned by every session endpoint and by /solve.
type viewRes struct {
	SessionID     string                      `json:"sessionId,omitempty"`
	Fixed         [placement.SlotCount]string `json:"fixed"`
	Pool          string                      `json:"pool"`
	PoolRewritten bool                        `json:"poolRewritten"`
	Completion    completionReq               `json:"completion"`
	Candidates    []candidateRes              `json:"candidates"`
	Count         int                         `json:"count"`
	Generated     int                         `json:"generated"`
	Warning       *warningRes                 `json:"warning,omitempty"`
	Bans          []banReq                    `json:"bans"`
	Dismissed     []string                    `json:"dismissed"`
}

// toInput converts the request into session input. Extra fixed cells are an error.
func (in inputReq) toInput() (session.Input, error) {
	var out session.Input
	if len(in.Fixed) > placement.SlotCount {
		return out, fmt.Errorf("fixed: at most %d cells, got %d", placement.SlotCount, len(in.Fixed))
	}
	copy(out.Fixed[:], in.Fixed)
	out.Pool = in.Pool
	if in.Completion != nil {
		out.Completion = placement.Completion{
			Enabled:      in.Completion.Enabled,
			MaxPerLetter: in.Completion.MaxPerLetter,
		}
		if in.Completion.Letters != "" {
			out.Completion.Letters = []rune(in.Completion.Letters)
		}
	}
	return out, nil
}

// singleRune returns the only rune of s.
func singleRune(s string) (rune, error) {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0, fmt.Errorf("letter: want exactly one character, got %q", s)
	}
	return rs[0], nil
}

func toCandidates(cands []placement.Candidate) []candidateRes {
	out := make([]candidateRes, len(cands))
	for i, c := range cands {
		res := candidateRes{
			Fingerprint: c.Arrangement.Fingerprint(),
			Display:     c.Arrangement.Display(),
			Origins:     c.Origins,
		}
		for j, r := range c.Arrangement {
			if r != placement.Empty {
				res.Slots[j] = string(alphabet.DisplayForm(r, j, placement.SlotCount))
			}
		}
		out[i] = res
	}
	return out
}

func toWarning(w *placement.TooManyKnownLettersError) *warningRes {
	if w == nil {
		return nil
	}
	return &warningRes{Kind: "TooManyKnownLetters", Provided: w.Provided, Free: w.Free, Message: w.Message()}
}

func toBans(bans []placement.Ban) []banReq {
	out := make([]banReq, len(bans))
	for i, b := range bans {
		out[i] = banReq{Letter: string(b.Letter), Position: b.Position}
	}
	return out
}

func toCompletion(c placement.Completion) completionReq {
	return completionReq{Enabled: c.Enabled, Letters: string(c.Letters), MaxPerLetter: c.MaxPerLetter}
}

func fromView(v session.View) viewRes {
	return viewRes{
		SessionID:     v.ID,
		Fixed:         v.Fixed,
		Pool:          v.Pool,
		PoolRewritten: v.Rewritten,
		Completion:    toCompletion(v.Completion),
		Candidates:    toCandidates(v.Candidates),
		Count:         len(v.Candidates),
		Generated:     v.Generated,
		Warning:       toWarning(v.Warning),
		Bans:          toBans(v.Bans),
		Dismissed:     orEmpty(v.Dismissed),
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
