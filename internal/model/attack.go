package model

// Attackers counts the pieces of color by that could move onto sq if it held
// an enemy piece. It walks outward from sq instead of generating every enemy
// move, and it never consults LegalMoves: pins do not stop a piece from
// giving check.
func Attackers(b *Board, sq int, by Color) int {
	n := 0
	for _, v := range allDirs {
		straight := v.df == 0 || v.offset == 1 || v.offset == -1
		cur := sq
		for dist := 1; ; dist++ {
			if wraps(File(cur), v) || !OnBoard(cur+v.offset) {
				break
			}
			cur += v.offset
			p := b[cur].Piece
			if p.IsZero() {
				continue
			}
			if p.Color == by {
				switch {
				case p.Type == Queen,
					straight && p.Type == Rook,
					!straight && p.Type == Bishop,
					dist == 1 && p.Type == King:
					n++
				}
			}
			break
		}
	}
	for _, v := range knightDirs {
		if wraps(File(sq), v) || !OnBoard(sq+v.offset) {
			continue
		}
		if p := b[sq+v.offset].Piece; p.Type == Knight && p.Color == by {
			n++
		}
	}
	for _, v := range Pawn.vectors(by) {
		if v.df == 0 {
			continue
		}
		back := vector{-v.offset, -v.df}
		if wraps(File(sq), back) || !OnBoard(sq+back.offset) {
			continue
		}
		if p := b[sq+back.offset].Piece; p.Type == Pawn && p.Color == by {
			n++
		}
	}
	return n
}

// Attacked reports whether any piece of color by attacks sq.
func Attacked(b *Board, sq int, by Color) bool {
	return Attackers(b, sq, by) > 0
}

// InCheck reports whether c's king is attacked. A side without a king is
// never in check.
func InCheck(b *Board, c Color) bool {
	k := b.KingSquare(c)
	return k >= 0 && Attacked(b, k, c.Opponent())
}
