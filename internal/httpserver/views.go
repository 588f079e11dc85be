// internal/httpserver/views.go
//
// JSON views returned by the game endpoints: the board (scored rows, input,
// status, target once the game is over) and the outcome of a submission,
// each with the message the front end shows.

package httpserver

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle-clone/internal/game"
)

type rowView struct {
	Word  string      `json:"word"`
	Marks []game.Mark `json:"marks"`
}

// boardView is what the front end renders. Only submitted rows are scored;
// the target is revealed once the game is over.
type boardView struct {
	Status       game.Status `json:"status"`
	Rows         []rowView   `json:"rows"`
	Input        string      `json:"input"`
	AttemptsLeft int         `json:"attemptsLeft"`
	MaxAttempts  int         `json:"maxAttempts"`
	WordLength   int         `json:"wordLength"`
	Target       string      `json:"target,omitempty"`
	Message      string      `json:"message,omitempty"`
}

func newBoardView(s game.Snapshot) boardView {
	v := boardView{
		Status: s.Status,
		Rows: lo.Map(s.Rows(), func(r game.Row, _ int) rowView {
			return rowView{Word: r.Word, Marks: r.Marks}
		}),
		Input:        s.Input,
		AttemptsLeft: s.AttemptsLeft(),
		MaxAttempts:  s.MaxAttempts,
		WordLength:   game.WordLength,
	}
	switch s.Status {
	case game.StatusWon:
		n := len(s.Guesses)
		v.Target = s.Target
		v.Message = fmt.Sprintf("Congratulations! You won in %d %s!", n, tries(n))
	case game.StatusLost:
		v.Target = s.Target
		v.Message = "Game Over! The word was " + s.Target
	}
	return v
}

func tries(n int) string {
	if n == 1 {
		return "try"
	}
	return "tries"
}

type outcomeView struct {
	Kind       game.OutcomeKind `json:"kind"`
	Won        bool             `json:"won"`
	GameOver   bool             `json:"gameOver"`
	Marks      []game.Mark      `json:"marks,omitempty"`
	Unverified bool             `json:"unverified,omitempty"`
	Repeated   bool             `json:"repeated"`
	Message    string           `json:"message"`
}

func newOutcomeView(o game.Outcome) outcomeView {
	return outcomeView{
		Kind:       o.Kind,
		Won:        o.Won,
		GameOver:   o.GameOver,
		Marks:      o.Marks,
		Unverified: o.Unverified,
		Repeated:   o.Repeated,
		Message:    outcomeMessage(o),
	}
}

func outcomeMessage(o game.Outcome) string {
	switch o.Kind {
	case game.OutcomeInvalidLength:
		return fmt.Sprintf("Word must be %d letters long", game.WordLength)
	case game.OutcomeNotAWord:
		return "Not a valid word"
	case game.OutcomeAlreadyOver:
		return "Game is over"
	case game.OutcomeAccepted:
		if o.Won {
			return "Congratulations! You won!"
		}
	}
	return ""
}
