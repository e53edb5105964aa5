package model

// PromotionChooser is asked, synchronously, which piece a human player's pawn
// becomes on reaching the final rank.
type PromotionChooser interface {
	ChoosePromotion(p *Player) PieceType
}

type PromotionFunc func(p *Player) PieceType

func (f PromotionFunc) ChoosePromotion(p *Player) PieceType {
	return f(p)
}

type Player struct {
	Color Color
	// Automated players are moved by the search engine at Depth plies and
	// always promote to a queen.
	Automated bool
	Depth     int
	Promote   PromotionChooser

	// captured enemy pieces, informational only. Guarded by the owning
	// Game's lock.
	captured []Piece
}

type ClientPlayer struct {
	Color     Color   `json:"color"`
	Automated bool    `json:"automated"`
	Depth     int     `json:"depth,omitempty"`
	Captured  []Piece `json:"captured"`
}

func (p *Player) client() ClientPlayer {
	captured := make([]Piece, len(p.captured))
	copy(captured, p.captured)
	return ClientPlayer{
		Color:     p.Color,
		Automated: p.Automated,
		Depth:     p.Depth,
		Captured:  captured,
	}
}
