// internal/httpserver/server.go
//
// HTTP server wiring for the placement backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, logging, JSON, CORS).
//   - Public endpoints: "/", "/health", "/alphabet".
//   - Stateless solving: POST /solve.
//   - Session endpoints: mounted under /session (see routes_session.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - Session handles are signed tokens (see token.go); the store holds the state.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordle-placer/internal/alphabet"
	"github.com/robalobadob/wordle-placer/internal/placement"
	"github.com/robalobadob/wordle-placer/internal/session"
	"github.com/robalobadob/wordle-placer/internal/store"
)

// Config carries everything the server reads from the environment.
type Config struct {
	ClientOrigin   string
	SessionSecret  string
	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	Settings       session.Settings
}

func (c *Config) applyDefaults() {
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.SessionSecret == "" {
		c.SessionSecret = "dev_secret_change_me"
	}
	if c.CookieName == "" {
		c.CookieName = "placer_session"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
}

// Server bundles router, session store and configuration.
type Server struct {
	r     *chi.Mux
	store store.Store
	cfg   Config
	now   func() time.Time // token clock
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg Config) *Server {
	cfg.applyDefaults()
	s := &Server{r: chi.NewRouter(), store: st, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-placer","endpoints":["/health","/alphabet","POST /solve","/session/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/alphabet", s.handleAlphabet)

	s.r.Post("/solve", s.handleSolve)
	s.mountSession(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- alphabet ------------------------------------

type finalPairRes struct {
	Regular string `json:"regular"`
	Final   string `json:"final"`
}

type alphabetRes struct {
	Letters    []string       `json:"letters"`
	FinalPairs []finalPairRes `json:"finalPairs"`
	SlotCount  int            `json:"slotCount"`
}

func (s *Server) handleAlphabet(w http.ResponseWriter, r *http.Request) {
	res := alphabetRes{SlotCount: placement.SlotCount}
	for _, l := range alphabet.Letters() {
		res.Letters = append(res.Letters, string(l))
	}
	for _, p := range alphabet.FinalPairs() {
		res.FinalPairs = append(res.FinalPairs, finalPairRes{Regular: string(p.Regular), Final: string(p.Final)})
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------- solve -------------------------------------

// handleSolve runs one recompute without touching any session. Bans and
// dismissed fingerprints travel in the request.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	x := placement.NewExclusions()
	for _, b := range req.Bans {
		letter, err := singleRune(b.Letter)
		if err == nil {
			err = x.Ban(letter, b.Position)
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, fp := range req.Dismissed {
		if err := x.DismissFingerprint(fp); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if in.Completion.Enabled && in.Completion.MaxPerLetter <= 0 {
		in.Completion.MaxPerLetter = s.cfg.Settings.MaxPerLetter
	}
	res := placement.Recompute(placement.Request{
		Fixed:      in.Fixed,
		Pool:       in.Pool,
		MaxPool:    s.cfg.Settings.MaxPool,
		Completion: in.Completion,
	}, x)

	var fixed [placement.SlotCount]string
	copy(fixed[:], res.Input.Base.Letters())
	writeJSON(w, http.StatusOK, viewRes{
		Fixed:         fixed,
		Pool:          res.Input.PoolText,
		PoolRewritten: res.Input.Rewritten,
		Completion:    toCompletion(in.Completion),
		Candidates:    toCandidates(res.Candidates),
		Count:         len(res.Candidates),
		Generated:     res.Generated,
		Warning:       toWarning(res.Warning),
		Bans:          toBans(x.Bans()),
		Dismissed:     orEmpty(x.Dismissed()),
	})
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
