// internal/dictionary/verdict.go
//
// Result type of a dictionary lookup and the Checker interface the game
// engine validates guesses with. A lookup has three outcomes: Valid,
// Invalid, or Unverified when the service could not give an answer.

package dictionary

import "context"

// Verdict is the answer of a dictionary lookup.
type Verdict int

const (
	// Unverified means the lookup could not complete (transport error,
	// timeout, throttling, unexpected status).
	Unverified Verdict = iota
	// Valid means the service confirmed the word exists.
	Valid
	// Invalid means the service confirmed the word does not exist.
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unverified"
	}
}

// parseVerdict is the inverse of String for the two cacheable verdicts.
func parseVerdict(s string) (Verdict, bool) {
	switch s {
	case "valid":
		return Valid, true
	case "invalid":
		return Invalid, true
	}
	return Unverified, false
}

// Checker looks a word up in a dictionary.
type Checker interface {
	Lookup(ctx context.Context, word string) Verdict
}
