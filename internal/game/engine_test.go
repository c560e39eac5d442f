package game

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReset(t *testing.T, pool ...string) Session {
	t.Helper()
	s, err := Reset(pool)
	require.NoError(t, err)
	return s
}

func guessAll(s Session, letters string) Session {
	for i := 0; i < len(letters); i++ {
		s = Guess(s, letters[i])
	}
	return s
}

func TestReset(t *testing.T) {
	t.Run("fresh session", func(t *testing.T) {
		s := mustReset(t, "Cat")

		assert.Equal(t, "cat", s.Secret)
		assert.Equal(t, "___", s.Revealed)
		assert.Empty(t, s.Guessed)
		assert.Equal(t, MaxAttempts, s.Remaining)
		assert.Equal(t, 0, s.Stage)
		assert.Equal(t, InProgress, s.Outcome())
		assert.Len(t, s.ID, 16)
	})

	t.Run("empty pool is an invalid configuration", func(t *testing.T) {
		_, err := Reset(nil)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("pool without usable entries is an invalid configuration", func(t *testing.T) {
		_, err := Reset([]string{"", "  ", "ice-cream", "42"})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("unusable entries are skipped", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			s := mustReset(t, "two words", " Book ", "x1")
			assert.Equal(t, "book", s.Secret)
		}
	})

	t.Run("draws from the whole pool", func(t *testing.T) {
		pool := []string{"alpha", "bravo", "charlie"}
		seen := map[string]bool{}
		for i := 0; i < 200 && len(seen) < len(pool); i++ {
			seen[mustReset(t, pool...).Secret] = true
		}
		assert.Len(t, seen, len(pool))
	})

	t.Run("discards the previous session", func(t *testing.T) {
		first := guessAll(mustReset(t, "cat"), "cxy")
		next := mustReset(t, "cat")

		assert.NotEqual(t, first.ID, next.ID)
		assert.Equal(t, "___", next.Revealed)
		assert.Equal(t, MaxAttempts, next.Remaining)
		assert.Equal(t, 0, next.Stage)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestResetReportsEntropyFailure(t *testing.T) {
	randReader = failingReader{}
	t.Cleanup(func() { randReader = rand.Reader })

	_, err := Reset([]string{"cat", "book"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "entropy unavailable")

	_, err = NewSession("cat")
	assert.Error(t, err)
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(" HANGMAN ")
	require.NoError(t, err)
	assert.Equal(t, "hangman", s.Secret)
	assert.Equal(t, "_______", s.Revealed)

	_, err = NewSession("not ok")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGuessWinningSequence(t *testing.T) {
	s := mustReset(t, "cat")

	s = Guess(s, 'c')
	assert.Equal(t, "c__", s.Revealed)
	assert.Equal(t, InProgress, s.Outcome())

	s = Guess(s, 'a')
	assert.Equal(t, "ca_", s.Revealed)
	assert.Equal(t, InProgress, s.Outcome())

	s = Guess(s, 't')
	assert.Equal(t, "cat", s.Revealed)
	assert.Equal(t, Won, s.Outcome())
	assert.Equal(t, MaxAttempts, s.Remaining)
	assert.Equal(t, "cat", s.Guessed)
}

func TestGuessLosingSequence(t *testing.T) {
	s := mustReset(t, "cat")
	wrong := "xyzqw"

	for i := 0; i < len(wrong); i++ {
		s = Guess(s, wrong[i])
		assert.Equal(t, MaxAttempts-i-1, s.Remaining)
		assert.Equal(t, i+1, s.Stage)
		if i < len(wrong)-1 {
			assert.Equal(t, InProgress, s.Outcome())
		}
	}

	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, Lost, s.Outcome())
	assert.Equal(t, "___", s.Revealed)
	assert.Equal(t, wrong, s.Mistakes())
}

func TestGuessRevealsEveryOccurrence(t *testing.T) {
	s := Guess(mustReset(t, "book"), 'o')
	assert.Equal(t, "_oo_", s.Revealed)
	assert.True(t, s.Hit('o'))
	assert.False(t, s.Hit('b'))
}

func TestGuessNoOps(t *testing.T) {
	t.Run("repeated letter", func(t *testing.T) {
		once := Guess(mustReset(t, "cat"), 'x')
		twice := Guess(once, 'x')
		assert.Equal(t, once, twice)

		once = Guess(once, 'a')
		assert.Equal(t, once, Guess(once, 'a'))
	})

	t.Run("invalid letters", func(t *testing.T) {
		s := mustReset(t, "cat")
		for _, c := range []byte{'A', '1', ' ', '_', 0} {
			assert.Equal(t, s, Guess(s, c))
		}
	})

	t.Run("won session is frozen", func(t *testing.T) {
		won := guessAll(mustReset(t, "cat"), "cat")
		require.Equal(t, Won, won.Outcome())
		assert.Equal(t, won, guessAll(won, "xyzqwe"))
	})

	t.Run("lost session is frozen", func(t *testing.T) {
		lost := guessAll(mustReset(t, "cat"), "xyzqw")
		require.Equal(t, Lost, lost.Outcome())
		assert.Equal(t, lost, guessAll(lost, "catb"))
	})
}

func TestGuessDoesNotMutateInput(t *testing.T) {
	before := mustReset(t, "book")
	snapshot := before

	_ = Guess(before, 'o')
	_ = Guess(before, 'z')

	assert.Equal(t, snapshot, before)
}

func TestGuessInvariantsHoldForAnySequence(t *testing.T) {
	words := []string{"a", "cat", "book", "mississippi", "rhythm"}
	sequences := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"zyxwvutsrqponmlkjihgfedcba",
		"qqqqqzzzzzjjjjjvvvvv",
		"etaoinshrdlcumwfgypbvkjxqz",
	}
	for _, w := range words {
		for _, seq := range sequences {
			s := mustReset(t, w)
			for i := 0; i < len(seq); i++ {
				s = Guess(s, seq[i])

				require.Equal(t, len(s.Secret), len(s.Revealed))
				require.GreaterOrEqual(t, s.Remaining, 0)
				require.GreaterOrEqual(t, s.Stage, 0)
				require.LessOrEqual(t, s.Stage, MaxStage)
				for j := 0; j < len(s.Secret); j++ {
					if s.HasGuessed(s.Secret[j]) {
						require.Equal(t, s.Secret[j], s.Revealed[j])
					} else {
						require.Equal(t, byte(Blank), s.Revealed[j])
					}
				}
			}
		}
	}
}

func TestGuessingTheSecretAlwaysWins(t *testing.T) {
	s := mustReset(t, "mississippi", "hangman", "rhythm")
	for i := 0; i < len(s.Secret); i++ {
		s = Guess(s, s.Secret[i])
	}
	assert.Equal(t, Won, s.Outcome())
	assert.Equal(t, s.Secret, s.Revealed)
}

func TestOutcomeIsExclusive(t *testing.T) {
	// Four misses then the completing letter: win, attempts untouched by the hit.
	s := guessAll(mustReset(t, "a"), "xyzq")
	require.Equal(t, 1, s.Remaining)

	s = Guess(s, 'a')
	assert.Equal(t, Won, s.Outcome())
	assert.Equal(t, 1, s.Remaining)
}

func TestParseLetter(t *testing.T) {
	cases := []struct {
		in   string
		want byte
		ok   bool
	}{
		{"a", 'a', true},
		{"Z", 'z', true},
		{" q ", 'q', true},
		{"", 0, false},
		{"ab", 0, false},
		{"1", 0, false},
		{"é", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseLetter(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
