package model

import "fmt"

type State uint8

const (
	Normal State = iota
	Check
	Checkmate
	Stalemate
	FiftyMoveDraw
)

var stateNames = [...]string{"normal", "check", "checkmate", "stalemate", "fiftyMoveDraw"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal states end the game.
func (s State) Terminal() bool {
	return s == Checkmate || s == Stalemate || s == FiftyMoveDraw
}

// FiftyMoveTurns is the number of turns without a capture or pawn move after
// which the game is drawn.
const FiftyMoveTurns = 100

// StatusReport names the state and the player it concerns: the side in
// check, the side mated, or the side left without a move.
type StatusReport struct {
	State  State `json:"state"`
	Player Color `json:"player"`
}

// Winner returns the winning color for a checkmate.
func (r StatusReport) Winner() (Color, bool) {
	if r.State != Checkmate {
		return 0, false
	}
	return r.Player.Opponent(), true
}

// Evaluate computes the status of the side to move in t.
func Evaluate(t *Turn) StatusReport {
	c := t.ToMove()
	r := StatusReport{Player: c}
	if t.Clock >= FiftyMoveTurns {
		r.State = FiftyMoveDraw
		return r
	}

	attackers := 0
	king := t.Board.KingSquare(c)
	if king >= 0 {
		attackers = Attackers(&t.Board, king, c.Opponent())
	}

	switch {
	case attackers == 0:
		r.State = Normal
		if !HasLegalMove(t, c) {
			r.State = Stalemate
		}
	case attackers == 1:
		r.State = Check
		if !HasLegalMove(t, c) {
			r.State = Checkmate
		}
	default:
		// Only a king move escapes a double check.
		r.State = Check
		if len(LegalMoves(t, king)) == 0 {
			r.State = Checkmate
		}
	}
	return r
}
