// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Outcome: derived status of a session (in progress / won / lost).
//   - Session: state for a single in-progress or finished game.
//   - ErrInvalidConfiguration: returned when no word can be drawn.

package game

import "errors"

const (
	// MaxAttempts is the number of wrong guesses a player may make.
	MaxAttempts = 5
	// MaxStage is the highest visual stage a session can reach.
	MaxStage = 5
	// Blank is the placeholder for an unrevealed letter.
	Blank = '_'
)

// ErrInvalidConfiguration is returned by Reset when the word pool is empty
// or holds no usable entries.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Outcome represents the status of a session.
// Possible values:
//   - "in_progress": guesses are still accepted.
//   - "won":         every letter of the secret has been revealed.
//   - "lost":        the attempts are exhausted.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Won        Outcome = "won"
	Lost       Outcome = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (o Outcome) Terminal() bool { return o == Won || o == Lost }

// Session holds the state of a single Hangman game.
// All fields are strings or ints so a Session can be copied by value.
type Session struct {
	ID        string `json:"id"`        // Random hex identifier, new on every reset.
	Secret    string `json:"secret"`    // The word to guess (lowercase a–z).
	Revealed  string `json:"revealed"`  // One byte per Secret letter: Blank or the letter.
	Guessed   string `json:"guessed"`   // Letters submitted so far, in order, no repeats.
	Remaining int    `json:"remaining"` // Wrong guesses left before the game is lost.
	Stage     int    `json:"stage"`     // Mistake stage for rendering, 0..MaxStage.
}
