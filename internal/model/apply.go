package model

// PromotionSquare reports whether a pawn of color c landing on sq must be
// promoted.
func PromotionSquare(c Color, sq int) bool {
	if c == Black {
		return Rank(sq) == 7
	}
	return Rank(sq) == 0
}

// NeedsPromotion reports whether m moves a pawn onto its final rank.
func NeedsPromotion(t *Turn, m Move) bool {
	p := t.Board[m.From].Piece
	return p.Type == Pawn && PromotionSquare(p.Color, m.To)
}

// Apply commits m on top of t and returns the next turn. It does not check
// legality; callers validate against LegalMoves first. A pawn reaching the
// final rank becomes m.Promotion, or a queen when none was chosen.
func Apply(t *Turn, m Move) *Turn {
	board, ply := t.play(m, true)
	next := &Turn{
		From:  m.From,
		To:    m.To,
		Board: board,
		Index: t.Index + 1,
		Clock: t.Clock + 1,
		Ply:   ply,
	}
	if ply.Piece.Type == Pawn || ply.CapturedPiece != nil {
		next.Clock = 0
	}
	return next
}

// play computes the board after m. Uncommitted moves are hypothetical and
// never promote.
func (t *Turn) play(m Move, commit bool) (Board, *Ply) {
	b := t.Board
	n := t.Index + 1
	p := b[m.From].Piece
	if p.IsZero() {
		Invariantf("move from empty square %s", SquareName(m.From))
	}
	ply := &Ply{Piece: p, From: m.From, To: m.To, CapturedOn: -1}

	if occ := b[m.To].Piece; !occ.IsZero() {
		captured := occ
		ply.CapturedPiece = &captured
		ply.CapturedOn = m.To
	}

	switch {
	case p.Type == Pawn && File(m.From) != File(m.To) && b[m.To].Empty():
		passed := m.To - 8*p.Color.Sign()
		captured := b[passed].Piece
		if !captured.IsZero() {
			ply.CapturedPiece = &captured
			ply.CapturedOn = passed
			ply.EnPassant = true
		}
		b[passed] = Square{Touched: n}
	case isCastle(p, m.From, m.To):
		rookFrom, rookTo := m.To+1, m.To-1
		if m.To < m.From {
			rookFrom, rookTo = m.To-2, m.To+1
		}
		b[rookTo] = Square{Piece: b[rookFrom].Piece, Touched: n}
		b[rookFrom] = Square{Touched: n}
		ply.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
	}

	b[m.To] = Square{Piece: p, Touched: n}
	b[m.From] = Square{Touched: n}

	eligible := commit && p.Type == Pawn && PromotionSquare(p.Color, m.To)
	switch {
	case eligible:
		kind := m.Promotion
		if kind == NoPiece {
			kind = Queen
		}
		if !kind.Promotable() {
			Invariantf("cannot promote to %s", kind)
		}
		b[m.To].Piece = Piece{Type: kind, Color: p.Color}
		ply.Promotion = kind
	case commit && m.Promotion != NoPiece:
		Invariantf("promotion requested off an eligible square: %s", m)
	}

	if commit {
		ply.Notation = ply.notation()
	}
	return b, ply
}
