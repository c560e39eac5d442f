// Package view maps engine state to what the browser shows.
//
// Everything here is a pure function of a game.Session: the engine only
// exposes the mistake stage, the outcome and the guessed letters, and the
// tables below turn those into an image, a background colour, the 26-key
// letter grid and the end-of-game banner.
package view

import (
	"fmt"
	"strings"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// Stage is the illustration and backdrop for one mistake stage.
type Stage struct {
	Image      string `json:"image"`
	Background string `json:"background"`
}

// stages is indexed by game.Session.Stage.
var stages = [game.MaxStage + 1]Stage{
	{Image: "/static/hangman0.svg", Background: "#FFFFFF"},
	{Image: "/static/hangman1.svg", Background: "#FF0000"},
	{Image: "/static/hangman2.svg", Background: "#CC0000"},
	{Image: "/static/hangman3.svg", Background: "#990000"},
	{Image: "/static/hangman4.svg", Background: "#660000"},
	{Image: "/static/hangman5.svg", Background: "#330000"},
}

// WonBackground replaces the stage colour once the word is guessed.
const WonBackground = "#0B2A5B"

// ForStage returns the table entry for stage, clamped to the valid range.
func ForStage(stage int) Stage {
	switch {
	case stage < 0:
		stage = 0
	case stage > game.MaxStage:
		stage = game.MaxStage
	}
	return stages[stage]
}

// LetterState is the visual state of one key in the letter grid.
type LetterState string

const (
	Untouched LetterState = "untouched"
	Hit       LetterState = "hit"
	Miss      LetterState = "miss"
)

// Letter is one key of the a..z grid.
type Letter struct {
	Char     string      `json:"letter"`
	State    LetterState `json:"state"`
	Disabled bool        `json:"disabled"`
}

// Letters returns the 26-entry grid. Guessed keys are disabled; every key
// is disabled once the game is over.
func Letters(s game.Session) []Letter {
	over := s.Outcome().Terminal()
	out := make([]Letter, 0, 26)
	for c := byte('a'); c <= 'z'; c++ {
		l := Letter{Char: string(c), State: Untouched}
		switch {
		case s.Hit(c):
			l.State = Hit
		case s.HasGuessed(c):
			l.State = Miss
		}
		l.Disabled = over || l.State != Untouched
		out = append(out, l)
	}
	return out
}

// Banner is the end-of-game message; Show is false while the game is on.
type Banner struct {
	Show    bool   `json:"show"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// BannerFor returns the banner for the session's outcome.
func BannerFor(s game.Session) Banner {
	switch s.Outcome() {
	case game.Won:
		return Banner{
			Show:    true,
			Title:   "Congratulations! You've won!",
			Message: "Well done! You've successfully guessed the word.",
		}
	case game.Lost:
		return Banner{
			Show:    true,
			Title:   "Game over!",
			Message: fmt.Sprintf("The word was: %s", s.Secret),
		}
	default:
		return Banner{}
	}
}

// Page is everything the template and the JSON API render.
type Page struct {
	GameID     string       `json:"gameId"`
	Pattern    []string     `json:"pattern"`
	Guessed    []string     `json:"guessed"`
	Mistakes   []string     `json:"mistakes"` // wrong letters, in guess order
	Remaining  int          `json:"remainingAttempts"`
	Stage      int          `json:"mistakeStage"`
	Outcome    game.Outcome `json:"outcome"`
	Word       string       `json:"word,omitempty"` // only once the game is over
	Image      string       `json:"image"`
	Background string       `json:"background"`
	Letters    []Letter     `json:"letters"`
	Banner     Banner       `json:"banner"`
}

// Build assembles the Page for s. The secret is withheld while the game is
// in progress.
func Build(s game.Session) Page {
	st := ForStage(s.Stage)
	p := Page{
		GameID:     s.ID,
		Pattern:    strings.Split(s.Revealed, ""),
		Guessed:    strings.Split(s.Guessed, ""),
		Mistakes:   strings.Split(s.Mistakes(), ""),
		Remaining:  s.Remaining,
		Stage:      s.Stage,
		Outcome:    s.Outcome(),
		Image:      st.Image,
		Background: st.Background,
		Letters:    Letters(s),
		Banner:     BannerFor(s),
	}
	if p.Outcome.Terminal() {
		p.Word = s.Secret
	}
	if p.Outcome == game.Won {
		p.Background = WonBackground
	}
	return p
}
