// internal/game/engine.go
//
// Core game engine for a single player session.
// Responsibilities:
//   - Start (and restart) games with a target from a TargetSource.
//   - Filter raw input into the 0–5 letter input buffer.
//   - Run the guess-submission protocol: game over → length → dictionary.
//   - Score guesses with raw containment scoring.
//   - Track state transitions: in_progress → won | lost.
//
// Notes:
//   - Scoring deliberately has no duplicate-letter budget: a guessed letter
//     that occurs anywhere in the target is "present" at every non-exact
//     position.
//   - All operations are serialised; SubmitGuess and SubmitWord hold the lock
//     across the dictionary call so two submissions never interleave.
//   - The rejection memory behind Outcome.Repeated survives an input update
//     that leaves the buffer unchanged.

package game

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-clone/internal/dictionary"
)

const (
	MaxAttempts = 6
	WordLength  = 5
)

// TargetSource supplies target words. Implementations must return exactly
// WordLength uppercase letters.
type TargetSource interface {
	SelectTargetWord(ctx context.Context) string
}

// Engine owns the state of one session's current game.
type Engine struct {
	mu      sync.Mutex
	id      string
	source  TargetSource
	checker dictionary.Checker

	target  string
	guesses []string
	input   string
	status  Status

	// last rejection, for Outcome.Repeated
	lastReject *rejection
}

type rejection struct {
	kind  OutcomeKind
	input string
}

// New creates an engine and starts its first game.
func New(ctx context.Context, source TargetSource, checker dictionary.Checker) *Engine {
	e := &Engine{
		id:      uuid.NewString(),
		source:  source,
		checker: checker,
	}
	e.StartNewGame(ctx)
	return e
}

// ID identifies the session this engine belongs to. It survives restarts.
func (e *Engine) ID() string { return e.id }

// StartNewGame replaces the whole game state with a fresh game.
func (e *Engine) StartNewGame(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.target = e.source.SelectTargetWord(ctx)
	e.guesses = []string{}
	e.input = ""
	e.status = StatusInProgress
	e.lastReject = nil
}

// UpdateInput replaces the input buffer with raw, uppercased, if it is at
// most WordLength letters A–Z. Anything else is silently rejected.
func (e *Engine) UpdateInput(raw string) InputResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	upper := strings.ToUpper(raw)
	if len(upper) > WordLength || !onlyLetters(upper) {
		return InputResult{Accepted: false, Input: e.input}
	}
	e.setInput(upper)
	return InputResult{Accepted: true, Input: e.input}
}

// SubmitGuess submits the input buffer as a guess.
func (e *Engine) SubmitGuess(ctx context.Context) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submit(ctx)
}

// SubmitWord runs raw through the input filter and submits the result under
// one lock, so a concurrent caller cannot swap the buffer in between. When
// the filter rejects raw, nothing is submitted and the InputResult says so.
func (e *Engine) SubmitWord(ctx context.Context, raw string) (InputResult, Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	upper := strings.ToUpper(raw)
	if len(upper) > WordLength || !onlyLetters(upper) {
		return InputResult{Accepted: false, Input: e.input}, Outcome{}
	}
	e.setInput(upper)
	return InputResult{Accepted: true, Input: upper}, e.submit(ctx)
}

func (e *Engine) setInput(upper string) {
	if upper != e.input {
		e.lastReject = nil
	}
	e.input = upper
}

func (e *Engine) submit(ctx context.Context) Outcome {
	if e.status.Terminal() {
		return Outcome{Kind: OutcomeAlreadyOver, Won: e.status == StatusWon, GameOver: true}
	}
	if len(e.input) != WordLength {
		return e.reject(OutcomeInvalidLength, false)
	}
	switch e.checker.Lookup(ctx, e.input) {
	case dictionary.Valid:
	case dictionary.Unverified:
		return e.reject(OutcomeNotAWord, true)
	default:
		return e.reject(OutcomeNotAWord, false)
	}

	guess := e.input
	e.guesses = append(e.guesses, guess)
	e.input = ""
	e.lastReject = nil

	switch {
	case guess == e.target:
		e.status = StatusWon
	case len(e.guesses) == MaxAttempts:
		e.status = StatusLost
	}
	return Outcome{
		Kind:     OutcomeAccepted,
		Won:      e.status == StatusWon,
		GameOver: e.status.Terminal(),
		Marks:    Score(guess, e.target),
	}
}

func (e *Engine) reject(kind OutcomeKind, unverified bool) Outcome {
	repeated := e.lastReject != nil && e.lastReject.kind == kind && e.lastReject.input == e.input
	e.lastReject = &rejection{kind: kind, input: e.input}
	return Outcome{Kind: kind, Unverified: unverified, Repeated: repeated}
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		ID:          e.id,
		Target:      e.target,
		Guesses:     append([]string(nil), e.guesses...),
		Input:       e.input,
		Status:      e.status,
		MaxAttempts: MaxAttempts,
	}
}

// Score classifies each letter of guess against target:
// MarkCorrect on a positional match, MarkPresent if the letter occurs
// anywhere in target, MarkAbsent otherwise.
func Score(guess, target string) []Mark {
	marks := make([]Mark, len(guess))
	for i := 0; i < len(guess); i++ {
		switch {
		case i < len(target) && guess[i] == target[i]:
			marks[i] = MarkCorrect
		case strings.IndexByte(target, guess[i]) >= 0:
			marks[i] = MarkPresent
		default:
			marks[i] = MarkAbsent
		}
	}
	return marks
}

// onlyLetters reports whether s is all uppercase ASCII letters.
func onlyLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
