// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Status: lifecycle of a game (in_progress → won | lost).
//   - Mark: per-letter result of a submitted guess.
//   - Outcome / OutcomeKind: structured result of a submission attempt.
//   - InputResult: result of an input-buffer update.
//   - Snapshot: read-only copy of the engine state.

package game

// Status is the overall state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Mark is the evaluation of one letter in a submitted guess.
//   - "correct": same letter at the same position of the target.
//   - "present": letter occurs somewhere else in the target.
//   - "absent":  letter does not occur in the target.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// OutcomeKind classifies a submission attempt.
type OutcomeKind string

const (
	OutcomeAccepted      OutcomeKind = "accepted"
	OutcomeInvalidLength OutcomeKind = "invalid_length"
	OutcomeNotAWord      OutcomeKind = "not_a_word"
	OutcomeAlreadyOver   OutcomeKind = "already_over"
)

// Outcome is returned by SubmitGuess. Rejections are values, not errors.
type Outcome struct {
	Kind OutcomeKind
	// Won and GameOver describe the game after the attempt.
	Won      bool
	GameOver bool
	// Marks scores the accepted guess; nil for rejections.
	Marks []Mark
	// Unverified is set on OutcomeNotAWord when the dictionary could not be
	// reached, as opposed to confirming the word does not exist.
	Unverified bool
	// Repeated is set when the same rejection was already reported for the
	// same, unchanged input.
	Repeated bool
}

// InputResult is returned by UpdateInput.
type InputResult struct {
	Accepted bool
	// Input is the buffer after the call (unchanged when rejected).
	Input string
}

// Row is a submitted guess with its marks.
type Row struct {
	Word  string
	Marks []Mark
}

// Snapshot is a copy of the engine state, safe to read without locking.
type Snapshot struct {
	ID          string
	Target      string
	Guesses     []string
	Input       string
	Status      Status
	MaxAttempts int
}

// Rows scores every submitted guess against the target.
func (s Snapshot) Rows() []Row {
	rows := make([]Row, len(s.Guesses))
	for i, g := range s.Guesses {
		rows[i] = Row{Word: g, Marks: Score(g, s.Target)}
	}
	return rows
}

// AttemptsLeft is the number of guesses still available.
func (s Snapshot) AttemptsLeft() int {
	if s.Status.Terminal() {
		return 0
	}
	return s.MaxAttempts - len(s.Guesses)
}
