package model

import (
	"fmt"
	"strings"
)

// Color identifies a side. Black moves first and sits on squares 0..15.
type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return 1 - c
}

// Sign is the direction a pawn of this color travels over the square index.
func (c Color) Sign() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "black":
		*c = Black
	case "white":
		*c = White
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// KingValue is a sentinel. Both kings are always on the board so it cancels
// out of any material balance.
const KingValue = 1000

// vector is a single step over the square index together with the file
// change that step causes, which is what edge exclusion is decided on.
type vector struct {
	offset int
	df     int
}

type pieceRules struct {
	name    string
	letter  string
	value   int
	steps   int // 0 means sliding
	vectors []vector
}

var (
	orthogonal = []vector{{8, 0}, {1, 1}, {-1, -1}, {-8, 0}}
	diagonal   = []vector{{9, 1}, {7, -1}, {-7, 1}, {-9, -1}}
	allDirs    = []vector{{9, 1}, {8, 0}, {7, -1}, {1, 1}, {-1, -1}, {-7, 1}, {-8, 0}, {-9, -1}}
	knightDirs = []vector{{17, 1}, {15, -1}, {10, 2}, {6, -2}, {-6, 2}, {-10, -2}, {-15, 1}, {-17, -1}}
	// pawn vectors for a Black pawn; White's are negated.
	pawnDirs = []vector{{9, 1}, {8, 0}, {7, -1}}
)

var catalog = [...]pieceRules{
	NoPiece: {name: "none", letter: "-"},
	Pawn:    {name: "pawn", letter: "P", value: 1, steps: 1, vectors: pawnDirs},
	Knight:  {name: "knight", letter: "N", value: 3, steps: 1, vectors: knightDirs},
	Bishop:  {name: "bishop", letter: "B", value: 3, vectors: diagonal},
	Rook:    {name: "rook", letter: "R", value: 5, vectors: orthogonal},
	Queen:   {name: "queen", letter: "Q", value: 9, vectors: allDirs},
	King:    {name: "king", letter: "K", value: KingValue, steps: 1, vectors: allDirs},
}

func (p PieceType) String() string {
	if int(p) >= len(catalog) {
		return fmt.Sprintf("PieceType(%d)", p)
	}
	return catalog[p].name
}

// Letter is the display letter, upper case.
func (p PieceType) Letter() string {
	return catalog[p].letter
}

func (p PieceType) Value() int {
	return catalog[p].value
}

// Range reports how many steps the piece may take along one vector.
// limited is false for sliding pieces.
func (p PieceType) Range() (steps int, limited bool) {
	s := catalog[p].steps
	return s, s > 0
}

// Vectors lists the index offsets the piece moves along for the given color.
func (p PieceType) Vectors(c Color) []int {
	vs := p.vectors(c)
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.offset
	}
	return out
}

func (p PieceType) vectors(c Color) []vector {
	vs := catalog[p].vectors
	if p != Pawn || c == Black {
		return vs
	}
	out := make([]vector, len(vs))
	for i, v := range vs {
		out[i] = vector{-v.offset, -v.df}
	}
	return out
}

// EdgeExcluded reports whether stepping along vec from a square on fromFile
// would wrap across the left or right edge of the board. It returns true for
// vectors the piece does not have.
func (p PieceType) EdgeExcluded(fromFile, vec int) bool {
	for _, c := range [...]Color{Black, White} {
		for _, v := range p.vectors(c) {
			if v.offset == vec {
				return wraps(fromFile, v)
			}
		}
	}
	return true
}

func wraps(fromFile int, v vector) bool {
	f := fromFile + v.df
	return f < 0 || f > 7
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(b []byte) error {
	t, err := ParsePieceType(string(b))
	if err != nil {
		return err
	}
	*p = t
	return nil
}

// ParsePieceType accepts a piece name or letter in any case. The empty
// string yields NoPiece.
func ParsePieceType(s string) (PieceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NoPiece, nil
	}
	for i, r := range catalog {
		if s == r.name || s == strings.ToLower(r.letter) {
			return PieceType(i), nil
		}
	}
	return NoPiece, fmt.Errorf("unknown piece type %q", s)
}

// Promotable reports whether a pawn may become this piece.
func (p PieceType) Promotable() bool {
	switch p {
	case Knight, Bishop, Rook, Queen:
		return true
	}
	return false
}

// Piece is immutable; the zero value is an empty square's occupant.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsZero() bool {
	return p.Type == NoPiece
}

// String renders the piece the way the board is printed, e.g. "WQ".
func (p Piece) String() string {
	if p.IsZero() {
		return "--"
	}
	return strings.ToUpper(p.Color.String()[:1]) + p.Type.Letter()
}
