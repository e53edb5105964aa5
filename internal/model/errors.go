package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameOver         = errors.New("game is over")
	ErrStaleTurn        = errors.New("turn is no longer current")
	ErrMoveInFlight     = errors.New("another move is being submitted")
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// IllegalMoveError is returned when a submitted move is not in the legal set
// of the player to move. The game is left unchanged.
type IllegalMoveError struct {
	From, To int
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s-%s", SquareName(e.From), SquareName(e.To))
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// InvariantViolation is the panic value raised when the engine is used in a
// way that can only come from a programming error.
type InvariantViolation struct {
	Msg string
}

func (e InvariantViolation) Error() string {
	return "invariant violation: " + e.Msg
}

// Invariantf panics with an InvariantViolation.
func Invariantf(format string, args ...interface{}) {
	panic(InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
