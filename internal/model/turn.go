package model

// Turn is an immutable node of the game history. Turn n is derived from
// turn n-1 by exactly one (possibly compound) move. The initial turn has no
// From/To and carries index 0.
type Turn struct {
	From  int
	To    int
	Board Board
	Index int
	// Clock counts turns since the last capture or pawn move.
	Clock int
	// Ply is nil for the initial turn and for positions built directly.
	Ply *Ply
}

// NewTurn returns the standard starting position with Black to move.
func NewTurn() *Turn {
	return &Turn{From: -1, To: -1, Board: NewBoard()}
}

// NewPosition wraps an arbitrary board as a turn with toMove to play. Squares
// are treated as untouched, so kings and rooks on their home squares keep
// their castling rights.
func NewPosition(b Board, toMove Color) *Turn {
	t := &Turn{From: -1, To: -1, Board: b}
	if toMove == White {
		t.Index = 1
	}
	return t
}

// ToMove is the color to play from this turn. Black plays on even indices.
func (t *Turn) ToMove() Color {
	if t.Index%2 == 0 {
		return Black
	}
	return White
}

// Moved reports whether the turn was produced by a move.
func (t *Turn) Moved() bool {
	return t.From >= 0
}

func (t *Turn) Move() Move {
	m := Move{From: t.From, To: t.To}
	if t.Ply != nil {
		m.Promotion = t.Ply.Promotion
	}
	return m
}
