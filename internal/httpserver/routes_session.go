// internal/httpserver/routes_session.go
//
// HTTP routes for interactive solving sessions.
// Exposes, under /session:
//   - POST   /session/new      → start a session, return its view and token
//   - GET    /session          → current view
//   - PUT    /session/input    → replace fixed letters, pool, completion options
//   - POST   /session/ban      → ban a letter at a position
//   - POST   /session/dismiss  → hide one arrangement by fingerprint
//   - DELETE /session          → drop the session and its cookie
//
// Every route but /new resolves the session from the token (cookie or bearer).
// Mutations are saved back to the store before responding, and each one
// re-issues the token (cookie and X-Session-Token header).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-placer/internal/session"
	"github.com/robalobadob/wordle-placer/internal/store"
)

// ctxSessionKey is the context key type for the resolved *session.Session.
type ctxSessionKey struct{}

// newSessionRes is returned by /session/new.
type newSessionRes struct {
	Token string  `json:"token"`
	View  viewRes `json:"view"`
}

// mountSession registers all /session routes.
func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession())
			r.Get("/", s.handleGetSession)
			r.Put("/input", s.handleInput)
			r.Post("/ban", s.handleBan)
			r.Post("/dismiss", s.handleDismiss)
			r.Delete("/", s.handleDeleteSession)
		})
	})
}

// withSession resolves the token into a live session.
// Missing or invalid token → 401; unknown or expired session → 404.
func (s *Server) withSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.bearerOrCookie(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "no_session")
				return
			}
			id, err := s.parseToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			sess, err := s.store.Get(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "session_not_found")
				return
			}
			if err != nil {
				log.Error().Err(err).Str("sessionId", id).Msg("load session")
				writeError(w, http.StatusInternalServerError, "load_failed")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*session.Session)
	return sess
}

// handleNewSession creates a session, stores it, and hands back a token
// (also set as a cookie).
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.cfg.Settings)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess.ID())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Debug().Str("sessionId", sess.ID()).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{Token: tok, View: fromView(sess.View())})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fromView(sessionFrom(r).View()))
}

// handleInput replaces the entry fields. A TooManyKnownLetters condition is
// reported in the body's warning, not as an HTTP error.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(r)
	v := sess.SetInput(in)
	if v.Warning != nil {
		log.Debug().Str("sessionId", sess.ID()).Int("provided", v.Warning.Provided).
			Int("free", v.Warning.Free).Msg("too many known letters")
	}
	s.saveAndRespond(w, r, sess, v)
}

func (s *Server) handleBan(w http.ResponseWriter, r *http.Request) {
	var req banReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	letter, err := singleRune(req.Letter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(r)
	v, err := sess.Ban(letter, req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveAndRespond(w, r, sess, v)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	v, err := sess.Dismiss(req.Fingerprint)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveAndRespond(w, r, sess, v)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID()); err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID()).Msg("delete session")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// saveAndRespond persists sess, extends its token, and writes v.
func (s *Server) saveAndRespond(w http.ResponseWriter, r *http.Request, sess *session.Session, v session.View) {
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID()).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.refreshToken(w, sess.ID()); err != nil {
		log.Warn().Err(err).Str("sessionId", sess.ID()).Msg("refresh session token")
	}
	writeJSON(w, http.StatusOK, fromView(v))
}
