package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Squares are numbered rank-major from Black's corner: 0 is a8, 7 is h8,
// 56 is a1 and 63 is h1.
const NumSquares = 64

func Rank(sq int) int { return sq / 8 }

func File(sq int) int { return sq % 8 }

func OnBoard(sq int) bool { return sq >= 0 && sq < NumSquares }

// SquareName returns the algebraic name of sq, e.g. "e2".
func SquareName(sq int) string {
	if !OnBoard(sq) {
		return "-"
	}
	return fmt.Sprintf("%c%d", File(sq)+'a', 8-Rank(sq))
}

func fileName(sq int) string {
	return fmt.Sprintf("%c", File(sq)+'a')
}

// ParseSquare accepts either an algebraic name ("e2") or a decimal index
// ("52").
func ParseSquare(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if !OnBoard(n) {
			return 0, fmt.Errorf("%w: %d", ErrInvalidSquare, n)
		}
		return n, nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file := int(s[0] - 'a')
	rank := 8 - int(s[1]-'0')
	return rank*8 + file, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(s string) int {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}
