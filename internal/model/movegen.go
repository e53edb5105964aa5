package model

// PseudoMoves returns the destinations the piece on from can reach by its
// movement rules alone, ignoring whether the move would leave its own king
// in check. Castling shows up here whenever it is structurally possible;
// LegalMoves applies the check conditions.
func PseudoMoves(t *Turn, from int) []int {
	b := &t.Board
	p := b[from].Piece
	if p.IsZero() {
		return nil
	}
	ep, epColor := enPassantTarget(t)
	if epColor == p.Color {
		ep = -1
	}
	var moves []int
	for _, v := range p.Type.vectors(p.Color) {
		steps := maxSteps(b, from, p, v)
		cur := from
		for k := 0; k < steps; k++ {
			if wraps(File(cur), v) || !OnBoard(cur+v.offset) {
				break
			}
			cur += v.offset
			occ := b[cur].Piece
			if p.Type == Pawn {
				if v.df == 0 {
					if !occ.IsZero() {
						break
					}
					moves = append(moves, cur)
					continue
				}
				if (!occ.IsZero() && occ.Color != p.Color) || (occ.IsZero() && cur == ep) {
					moves = append(moves, cur)
				}
				break
			}
			if !occ.IsZero() {
				if occ.Color != p.Color {
					moves = append(moves, cur)
				}
				break
			}
			moves = append(moves, cur)
		}
	}
	return moves
}

func maxSteps(b *Board, from int, p Piece, v vector) int {
	steps, limited := p.Type.Range()
	if !limited {
		return 7
	}
	switch p.Type {
	case Pawn:
		if v.df == 0 && b[from].Untouched() {
			return 2
		}
	case King:
		if castleRookSquare(b, from, v.offset) >= 0 {
			return 2
		}
	}
	return steps
}

// castleRookSquare returns the corner rook square for a castle from the
// king on from in direction dir (+1 or -1), or -1 when the king and rook
// are not both untouched with empty squares between them.
func castleRookSquare(b *Board, from, dir int) int {
	if dir != 1 && dir != -1 {
		return -1
	}
	king := b[from]
	if king.Piece.Type != King || !king.Untouched() || File(from) != 4 {
		return -1
	}
	rookSq := from + 3
	if dir < 0 {
		rookSq = from - 4
	}
	rook := b[rookSq]
	if rook.Piece.Type != Rook || rook.Piece.Color != king.Piece.Color || !rook.Untouched() {
		return -1
	}
	for sq := from + dir; sq != rookSq; sq += dir {
		if !b[sq].Empty() {
			return -1
		}
	}
	return rookSq
}

// enPassantTarget returns the square a pawn skipped with a double step on
// the move that produced t and that pawn's color, or -1.
func enPassantTarget(t *Turn) (int, Color) {
	if !t.Moved() {
		return -1, 0
	}
	d := t.To - t.From
	if d != 16 && d != -16 {
		return -1, 0
	}
	p := t.Board[t.To].Piece
	if p.Type != Pawn {
		return -1, 0
	}
	return (t.From + t.To) / 2, p.Color
}

func isCastle(p Piece, from, to int) bool {
	d := to - from
	return p.Type == King && (d == 2 || d == -2)
}

// LegalMoves returns the pseudo-moves of the piece on from that do not leave
// its own king attacked. A king may not castle out of or through check.
func LegalMoves(t *Turn, from int) []int {
	p := t.Board[from].Piece
	if p.IsZero() {
		return nil
	}
	opp := p.Color.Opponent()
	var legal []int
	for _, to := range PseudoMoves(t, from) {
		if isCastle(p, from, to) {
			if Attacked(&t.Board, from, opp) || Attacked(&t.Board, (from+to)/2, opp) {
				continue
			}
		}
		next, _ := t.play(Move{From: from, To: to}, false)
		if InCheck(&next, p.Color) {
			continue
		}
		legal = append(legal, to)
	}
	return legal
}

// IsLegal reports whether m is a legal move for the side to move in t.
func IsLegal(t *Turn, m Move) bool {
	if !OnBoard(m.From) || !OnBoard(m.To) {
		return false
	}
	p := t.Board[m.From].Piece
	if p.IsZero() || p.Color != t.ToMove() {
		return false
	}
	for _, to := range LegalMoves(t, m.From) {
		if to == m.To {
			return true
		}
	}
	return false
}

// AllLegalMoves lists every legal move for the side to move.
func AllLegalMoves(t *Turn) []Move {
	var moves []Move
	for _, from := range t.Board.Occupied(t.ToMove()) {
		for _, to := range LegalMoves(t, from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// HasLegalMove reports whether color c has at least one legal move on t's
// board.
func HasLegalMove(t *Turn, c Color) bool {
	for _, from := range t.Board.Occupied(c) {
		if len(LegalMoves(t, from)) > 0 {
			return true
		}
	}
	return false
}

// LegalTurns returns every turn reachable from t in one move by the side to
// move. Pawns reaching the final rank become queens.
func LegalTurns(t *Turn) []*Turn {
	moves := AllLegalMoves(t)
	turns := make([]*Turn, 0, len(moves))
	for _, m := range moves {
		turns = append(turns, Apply(t, m))
	}
	return turns
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(t *Turn, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := AllLegalMoves(t)
	if depth == 1 {
		return len(moves)
	}
	n := 0
	for _, m := range moves {
		n += Perft(Apply(t, m), depth-1)
	}
	return n
}
