// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create fresh sessions from a word pool (Reset) or a known word (NewSession).
//   - Apply single-letter guesses as a functional update (Guess).
//   - Derive the outcome: in_progress → won/lost.
//
// Notes:
//   - The engine performs no I/O; callers own the Session value and store it.
//   - Guess never mutates its argument: every field of Session is a value type.
//   - Input normalization lives at the boundary (ParseLetter).
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// randReader is the entropy source for word choice and IDs.
var randReader io.Reader = rand.Reader

// Reset draws a word uniformly at random from pool and returns a fresh session.
// Entries are trimmed and lowercased; entries that are not purely a–z are skipped.
func Reset(pool []string) (Session, error) {
	usable := make([]string, 0, len(pool))
	for _, w := range pool {
		if w = normalize(w); w != "" {
			usable = append(usable, w)
		}
	}
	if len(usable) == 0 {
		return Session{}, fmt.Errorf("reset: word pool has no usable entries: %w", ErrInvalidConfiguration)
	}
	i, err := pickIndex(len(usable))
	if err != nil {
		return Session{}, fmt.Errorf("reset: pick word: %w", err)
	}
	return newSession(usable[i])
}

// NewSession builds a fresh session for a known word.
func NewSession(word string) (Session, error) {
	w := normalize(word)
	if w == "" {
		return Session{}, fmt.Errorf("new session %q: %w", word, ErrInvalidConfiguration)
	}
	return newSession(w)
}

func newSession(word string) (Session, error) {
	id, err := randomID()
	if err != nil {
		return Session{}, fmt.Errorf("session id: %w", err)
	}
	return Session{
		ID:        id,
		Secret:    word,
		Revealed:  strings.Repeat(string(Blank), len(word)),
		Remaining: MaxAttempts,
	}, nil
}

// Guess applies a single lowercase letter and returns the next session.
//
// The call is a no-op (s is returned unchanged) when:
//   - letter is not in a–z,
//   - letter was already guessed,
//   - the session is already won or lost.
//
// A correct letter is revealed at every position it occurs. A wrong letter
// costs one attempt and advances the mistake stage, both bounded.
func Guess(s Session, letter byte) Session {
	if !isLetter(letter) || s.HasGuessed(letter) || s.Outcome().Terminal() {
		return s
	}
	s.Guessed += string(letter)

	if strings.IndexByte(s.Secret, letter) >= 0 {
		revealed := []byte(s.Revealed)
		for i := 0; i < len(s.Secret); i++ {
			if s.Secret[i] == letter {
				revealed[i] = letter
			}
		}
		s.Revealed = string(revealed)
		return s
	}

	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Stage < MaxStage {
		s.Stage++
	}
	return s
}

// Outcome derives the session status from the revealed pattern and attempts.
// A complete pattern wins even if attempts were exhausted earlier, though
// attempts only ever drop on wrong guesses so the two cannot coincide.
func (s Session) Outcome() Outcome {
	switch {
	case s.Secret != "" && s.Revealed == s.Secret:
		return Won
	case s.Remaining <= 0:
		return Lost
	default:
		return InProgress
	}
}

// HasGuessed reports whether letter was already submitted.
func (s Session) HasGuessed(letter byte) bool {
	return strings.IndexByte(s.Guessed, letter) >= 0
}

// Hit reports whether letter was guessed and occurs in the secret.
func (s Session) Hit(letter byte) bool {
	return s.HasGuessed(letter) && strings.IndexByte(s.Secret, letter) >= 0
}

// Mistakes returns the guessed letters that are not in the secret, in order.
func (s Session) Mistakes() string {
	var b strings.Builder
	for i := 0; i < len(s.Guessed); i++ {
		if strings.IndexByte(s.Secret, s.Guessed[i]) < 0 {
			b.WriteByte(s.Guessed[i])
		}
	}
	return b.String()
}

// ParseLetter validates raw user input at the boundary.
// It accepts exactly one letter (either case, surrounding space ignored)
// and returns it lowercased.
func ParseLetter(input string) (byte, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if len(in) != 1 || !isLetter(in[0]) {
		return 0, false
	}
	return in[0], true
}

// normalize trims and lowercases w, returning "" if it is not purely a–z.
func normalize(w string) string {
	w = strings.ToLower(strings.TrimSpace(w))
	for i := 0; i < len(w); i++ {
		if !isLetter(w[i]) {
			return ""
		}
	}
	return w
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// pickIndex returns a uniformly random index in [0, n). A failing entropy
// source is reported rather than replaced by a fixed index.
func pickIndex(n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	nBig, err := rand.Int(randReader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(nBig.Int64()), nil
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() (string, error) {
	var b [8]byte
	if _, err := io.ReadFull(randReader, b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
