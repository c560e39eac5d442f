// internal/httpserver/routes_game.go
//
// Game routes. Both surfaces drive the same two engine operations:
//   - reset: GET / on first visit, POST /reset, POST /api/game/new
//   - guess: POST /guess (form field "letter"), POST /api/game/guess
//
// Input is validated with game.ParseLetter before it reaches the engine.
// Malformed letters leave the session untouched: the form route ignores
// them, the API answers 400 invalid_letter.

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/view"
)

// reset draws a new word and replaces the player's session.
func (s *Server) reset(ctx context.Context, pid string) (game.Session, error) {
	g, err := game.Reset(s.pool)
	if err != nil {
		return game.Session{}, err
	}
	if err := s.store.Save(ctx, pid, g); err != nil {
		return game.Session{}, err
	}
	log.Info().Str("player", pid).Str("session", g.ID).Int("letters", len(g.Secret)).Msg("new game")
	return g, nil
}

// current returns the player's session, starting one on first contact.
// The fast path is a plain read; only a missing session takes the update
// path, where a concurrent first request cannot start a second game.
func (s *Server) current(ctx context.Context, pid string) (game.Session, error) {
	g, err := s.store.Get(ctx, pid)
	if !errors.Is(err, store.ErrNotFound) {
		return g, err
	}
	started := false
	g, err = s.store.Update(ctx, pid, func(cur game.Session, found bool) (game.Session, error) {
		if found {
			return cur, nil
		}
		started = true
		return game.Reset(s.pool)
	})
	if err == nil && started {
		log.Info().Str("player", pid).Str("session", g.ID).Int("letters", len(g.Secret)).Msg("new game")
	}
	return g, err
}

// guess applies letter to the player's session. Read, transition and save
// happen under one store update, so simultaneous guesses from the same
// player are applied one after the other instead of overwriting each other.
func (s *Server) guess(ctx context.Context, pid string, letter byte) (game.Session, error) {
	var before game.Outcome
	next, err := s.store.Update(ctx, pid, func(cur game.Session, found bool) (game.Session, error) {
		if !found {
			fresh, err := game.Reset(s.pool)
			if err != nil {
				return game.Session{}, err
			}
			cur = fresh
		}
		before = cur.Outcome()
		return game.Guess(cur, letter), nil
	})
	if err != nil {
		return game.Session{}, err
	}
	if o := next.Outcome(); o.Terminal() && !before.Terminal() {
		log.Info().Str("player", pid).Str("session", next.ID).Str("outcome", string(o)).
			Int("mistakes", next.Stage).Msg("game over")
	}
	return next, nil
}

// errorCode maps a failure to the API error code and status.
func errorCode(err error) (int, string) {
	if errors.Is(err, game.ErrInvalidConfiguration) {
		return http.StatusInternalServerError, "invalid_configuration"
	}
	return http.StatusInternalServerError, "store_failed"
}

// ------------------------------ PAGES --------------------------------------

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	g, err := s.current(r.Context(), playerID(r))
	if err != nil {
		s.pageError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, view.Build(g)); err != nil {
		log.Error().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleFormGuess(w http.ResponseWriter, r *http.Request) {
	if letter, ok := game.ParseLetter(r.FormValue("letter")); ok {
		if _, err := s.guess(r.Context(), playerID(r), letter); err != nil {
			s.pageError(w, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormReset(w http.ResponseWriter, r *http.Request) {
	if _, err := s.reset(r.Context(), playerID(r)); err != nil {
		s.pageError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageError surfaces a failure as plain text; a broken word pool is named
// explicitly so it is not mistaken for a transient fault.
func (s *Server) pageError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("page request failed")
	status, code := errorCode(err)
	msg := "Something went wrong. Please try again."
	if code == "invalid_configuration" {
		msg = "Configuration error: no usable words are available to start a game."
	}
	http.Error(w, msg, status)
}

// ------------------------------- API ---------------------------------------

// maxGuessBody bounds the POST /api/game/guess payload.
const maxGuessBody = 256

// guessReq is the payload for POST /api/game/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.current(r.Context(), playerID(r))
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(g))
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.reset(r.Context(), playerID(r))
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(g))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	r.Body = http.MaxBytesReader(w, r.Body, maxGuessBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	letter, ok := game.ParseLetter(req.Letter)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	g, err := s.guess(r.Context(), playerID(r), letter)
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Build(g))
}

func (s *Server) apiError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("api request failed")
	status, code := errorCode(err)
	writeError(w, status, code)
}
