package model

import (
	"sort"
	"testing"
)

// mv parses a coordinate move such as "e7e5" or "h2g1n".
func mv(t *testing.T, s string) Move {
	t.Helper()
	if len(s) != 4 && len(s) != 5 {
		t.Fatalf("bad move literal %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		t.Fatalf("move %q: %v", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		t.Fatalf("move %q: %v", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		if m.Promotion, err = ParsePieceType(s[4:]); err != nil {
			t.Fatalf("move %q: %v", s, err)
		}
	}
	return m
}

// play submits moves to g in order and fails the test on the first error.
func play(t *testing.T, g *Game, moves ...string) *Turn {
	t.Helper()
	var last *Turn
	for _, s := range moves {
		turn, err := g.Submit(mv(t, s))
		if err != nil {
			t.Fatalf("submit %s: %v", s, err)
		}
		last = turn
	}
	return last
}

// applyAll applies coordinate moves directly, without a Game.
func applyAll(t *testing.T, turn *Turn, moves ...string) *Turn {
	t.Helper()
	for _, s := range moves {
		m := mv(t, s)
		if !IsLegal(turn, m) {
			t.Fatalf("%s is not legal on\n%s", s, turn.Board.String())
		}
		turn = Apply(turn, m)
	}
	return turn
}

func place(b Board, pieces map[string]Piece) Board {
	for sq, p := range pieces {
		b = b.With(MustSquare(sq), p)
	}
	return b
}

func bp(pt PieceType) Piece { return Piece{Type: pt, Color: Black} }
func wp(pt PieceType) Piece { return Piece{Type: pt, Color: White} }

func squares(names ...string) []int {
	out := make([]int, len(names))
	for i, n := range names {
		out[i] = MustSquare(n)
	}
	sort.Ints(out)
	return out
}

func sorted(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}

func contains(list []int, sq int) bool {
	for _, x := range list {
		if x == sq {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
