// internal/words/source.go
//
// Target-word selection for new games.
// Responsibilities:
//   - Ask the provider for a candidate and confirm it with the dictionary.
//   - Retry rejected candidates up to a fixed number of attempts.
//   - Fall back to the local list when the provider fails or attempts run out.
//   - Answer IsValidWord for callers that only need a yes/no.

package words

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-clone/internal/dictionary"
)

// Source picks target words: a provider candidate confirmed by the
// dictionary, or a fallback word when the provider is unavailable.
type Source struct {
	provider    Provider
	checker     dictionary.Checker
	fallback    *Fallback
	maxAttempts int
}

// NewSource wires a Source. maxAttempts bounds how many candidates are
// tried before giving up on the provider; values below 1 mean 1.
func NewSource(p Provider, c dictionary.Checker, fb *Fallback, maxAttempts int) *Source {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Source{provider: p, checker: c, fallback: fb, maxAttempts: maxAttempts}
}

// SelectTargetWord returns a 5-letter uppercase target.
//
// A candidate that is malformed, unknown to the dictionary, or cannot be
// verified is discarded and a new one requested, up to maxAttempts. A failing
// provider short-circuits to the fallback list without validation, as does
// running out of attempts.
func (s *Source) SelectTargetWord(ctx context.Context) string {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("target selection cancelled, using fallback list")
			return s.fallback.Random()
		}

		raw, err := s.provider.Candidate(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("word provider failed, using fallback list")
			return s.fallback.Random()
		}
		w, ok := Normalize(raw)
		if !ok {
			log.Debug().Str("candidate", raw).Int("attempt", attempt).Msg("malformed candidate")
			continue
		}
		v := s.checker.Lookup(ctx, w)
		if v == dictionary.Valid {
			log.Debug().Int("attempt", attempt).Msg("target word selected")
			return w
		}
		log.Debug().Str("candidate", w).Stringer("verdict", v).Int("attempt", attempt).Msg("candidate rejected")
	}
	log.Warn().Int("attempts", s.maxAttempts).Msg("no candidate validated, using fallback list")
	return s.fallback.Random()
}

// IsValidWord reports whether the dictionary confirms word. Failures count
// as not valid.
func (s *Source) IsValidWord(ctx context.Context, word string) bool {
	return s.checker.Lookup(ctx, word) == dictionary.Valid
}
