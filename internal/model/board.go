package model

import "strings"

// Square holds an optional piece and the index of the turn that last moved a
// piece onto or off it. Touched is 0 for squares untouched since the start
// position; no move ever produces turn 0.
type Square struct {
	Piece   Piece
	Touched int
}

func (s Square) Empty() bool { return s.Piece.IsZero() }

func (s Square) Untouched() bool { return s.Touched == 0 }

// Board is a value type, so copying it yields an independent snapshot.
type Board [NumSquares]Square

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard initial position.
func NewBoard() Board {
	var b Board
	for f := 0; f < 8; f++ {
		b[f].Piece = Piece{Type: backRank[f], Color: Black}
		b[8+f].Piece = Piece{Type: Pawn, Color: Black}
		b[48+f].Piece = Piece{Type: Pawn, Color: White}
		b[56+f].Piece = Piece{Type: backRank[f], Color: White}
	}
	return b
}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() Board {
	return Board{}
}

// With returns a copy of the board with p placed on sq. A zero Piece clears
// the square.
func (b Board) With(sq int, p Piece) Board {
	b[sq].Piece = p
	return b
}

// KingSquare returns the square of c's king, or -1 if there is none.
func (b *Board) KingSquare(c Color) int {
	for sq := range b {
		if p := b[sq].Piece; p.Type == King && p.Color == c {
			return sq
		}
	}
	return -1
}

// Occupied lists the squares holding pieces of color c.
func (b *Board) Occupied(c Color) []int {
	var out []int
	for sq := range b {
		if p := b[sq].Piece; !p.IsZero() && p.Color == c {
			out = append(out, sq)
		}
	}
	return out
}

// Material is the sum of White piece values minus the sum of Black's.
func (b *Board) Material() int {
	score := 0
	for sq := range b {
		p := b[sq].Piece
		switch {
		case p.IsZero():
		case p.Color == White:
			score += p.Type.Value()
		default:
			score -= p.Type.Value()
		}
	}
	return score
}

// String prints the board one rank per line, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for sq := range b {
		sb.WriteString(b[sq].Piece.String())
		if File(sq) == 7 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
