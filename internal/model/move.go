package model

import "fmt"

// Move is a request to move the piece on From to To. Promotion is only
// consulted when a pawn reaches the final rank; NoPiece leaves the choice to
// the player's PromotionChooser.
type Move struct {
	From      int       `json:"from"`
	To        int       `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) String() string {
	s := SquareName(m.From) + SquareName(m.To)
	if m.Promotion != NoPiece {
		s += "=" + m.Promotion.Letter()
	}
	return s
}

type CastleRookMove struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Ply records what a committed move did to the board.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           int             `json:"from"`
	To             int             `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CapturedOn     int             `json:"capturedOn"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	Notation       string          `json:"notation"`
}

func (p *Ply) notation() string {
	if p.CastleRookMove != nil {
		if p.To > p.From {
			return "O-O"
		}
		return "O-O-O"
	}
	prefix := ""
	if p.Piece.Type != Pawn {
		prefix = p.Piece.Type.Letter()
	} else if File(p.From) != File(p.To) {
		prefix = fileName(p.From)
	}
	capture := ""
	if p.CapturedPiece != nil {
		capture = "x"
	}
	s := fmt.Sprintf("%s%s%s", prefix, capture, SquareName(p.To))
	if p.Promotion != NoPiece {
		s += "=" + p.Promotion.Letter()
	}
	if p.EnPassant {
		s += " e.p."
	}
	return s
}
