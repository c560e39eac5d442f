// internal/words/words.go
//
// Provides word pool loading for the game engine.
//
// Responsibilities:
//   - Load the pool from a configured file or fall back to the embedded default.
//   - Normalize entries (trim, lowercase) and keep only a–z words.
//   - Remove duplicates, preserving first-seen order.
//
// File formats (chosen by extension):
//   - .json: either {"words": [...]} or a bare array of strings.
//   - anything else: one word per line; blank lines and #-comments skipped.
//
// An empty resulting pool is an error wrapping game.ErrInvalidConfiguration,
// so the server refuses to start rather than play an undefined word.

package words

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/robalobadob/hangman/apps/go-server/assets"
	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// Load returns the word pool read from path, or the embedded default pool
// when path is empty.
func Load(path string) ([]string, error) {
	var (
		raw []string
		err error
	)
	if path == "" {
		raw, err = assets.DefaultWords()
		if err != nil {
			return nil, fmt.Errorf("words: read embedded list: %w", err)
		}
	} else {
		raw, err = readWordFile(path)
		if err != nil {
			return nil, err
		}
	}

	pool := Normalize(raw)
	if len(pool) == 0 {
		src := path
		if src == "" {
			src = "embedded list"
		}
		return nil, fmt.Errorf("words: %s has no usable entries: %w", src, game.ErrInvalidConfiguration)
	}
	return pool, nil
}

// readWordFile loads raw entries from a file, picking the parser by extension.
func readWordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		out, err := parseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("words: parse %s: %w", path, err)
		}
		return out, nil
	}
	return parseLines(bytes.NewReader(data))
}

// parseJSON accepts {"words": [...]} or a bare array.
func parseJSON(data []byte) ([]string, error) {
	var doc struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Words, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// parseLines reads one entry per line, skipping blanks and # comments.
func parseLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Normalize lowercases and trims entries, drops anything that is not purely
// a–z, and removes duplicates.
func Normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
