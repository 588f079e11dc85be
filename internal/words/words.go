// internal/words/words.go
//
// Fallback word list for target selection.
//
// The fallback list is used only when the word-candidate provider cannot be
// reached. It is loaded from WORDS_FALLBACK_FILE when configured, otherwise
// from the list embedded in the assets package.
//
// Constraints:
//   • Words are exactly 5 letters A–Z.
//   • Lists are normalised to uppercase and de-duplicated.
//   • A list needs at least MinFallbackWords entries.

package words

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle-clone/assets"
)

const (
	// WordLength is the number of letters in every target word and guess.
	WordLength = 5
	// MinFallbackWords is the smallest usable fallback list.
	MinFallbackWords = 4
)

// Fallback is an immutable list of known-good target words.
type Fallback struct {
	words []string
}

// NewFallback normalises list and rejects it if fewer than MinFallbackWords
// valid entries remain.
func NewFallback(list []string) (*Fallback, error) {
	words := lo.Uniq(lo.FilterMap(list, func(w string, _ int) (string, bool) {
		return Normalize(w)
	}))
	if len(words) < MinFallbackWords {
		return nil, fmt.Errorf("words: fallback list has %d valid words, need at least %d", len(words), MinFallbackWords)
	}
	return &Fallback{words: words}, nil
}

// LoadFallback reads the fallback list from path, or from the embedded
// default when path is empty.
func LoadFallback(path string) (*Fallback, error) {
	var list []string
	var err error
	if path == "" {
		list, err = assets.FallbackList()
	} else {
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load fallback list: %w", err)
	}
	return NewFallback(list)
}

// Random returns a uniformly random fallback word.
func (f *Fallback) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(f.words))))
	if err != nil {
		return f.words[0]
	}
	return f.words[n.Int64()]
}

// Words returns a copy of the list.
func (f *Fallback) Words() []string {
	return append([]string(nil), f.words...)
}

// Contains reports whether w (any case) is on the list.
func (f *Fallback) Contains(w string) bool {
	return lo.Contains(f.words, strings.ToUpper(w))
}

// Normalize trims and uppercases w, and reports whether the result is
// exactly WordLength letters A–Z.
func Normalize(w string) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) != WordLength || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
