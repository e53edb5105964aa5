// Package search picks moves for automated players with a fixed-depth
// minimax search over a tree of immutable turns.
package search

import (
	"context"

	"github.com/benbeisheim/chess-backend/internal/model"
)

const infinity = 1 << 30

// Node is one position of the game tree. Children are expanded on first
// use, so subtrees cut off by alpha-beta are never built.
type Node struct {
	Turn  *model.Turn
	Depth int

	maxDepth int
	// sign turns White-positive material into the root mover's view.
	sign     int
	children []*Node
	expanded bool
}

// NewTree roots a tree of the given ply depth at t.
func NewTree(t *model.Turn, depth int) *Node {
	sign := 1
	if t.ToMove() == model.Black {
		sign = -1
	}
	return &Node{Turn: t, maxDepth: depth, sign: sign}
}

// Children are the legal successor turns of the side to move at this node.
// Nodes at the depth limit have none.
func (n *Node) Children() []*Node {
	if n.expanded {
		return n.children
	}
	n.expanded = true
	if n.Depth >= n.maxDepth {
		return nil
	}
	for _, t := range model.LegalTurns(n.Turn) {
		n.children = append(n.children, &Node{
			Turn:     t,
			Depth:    n.Depth + 1,
			maxDepth: n.maxDepth,
			sign:     n.sign,
		})
	}
	return n.children
}

// Evaluate scores a board as White material minus Black material.
func Evaluate(b *model.Board) int {
	return b.Material()
}

func (n *Node) leafValue() int {
	return n.sign * Evaluate(&n.Turn.Board)
}

// AlphaBeta returns the minimax value of the node, scored for the player to
// move at the root. Even depths maximise, odd depths minimise.
func (n *Node) AlphaBeta(alpha, beta int) int {
	v, _ := n.alphaBeta(context.Background(), alpha, beta)
	return v
}

func (n *Node) alphaBeta(ctx context.Context, alpha, beta int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	children := n.Children()
	if n.Depth == n.maxDepth || len(children) == 0 {
		return n.leafValue(), nil
	}
	maximise := n.Depth%2 == 0
	value := infinity
	if maximise {
		value = -infinity
	}
	for _, c := range children {
		v, err := c.alphaBeta(ctx, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximise {
			value = max(value, v)
			alpha = max(alpha, value)
		} else {
			value = min(value, v)
			beta = min(beta, value)
		}
		if alpha >= beta {
			break
		}
	}
	return value, nil
}

// Minimax is the unpruned search. It visits the whole tree and exists as a
// reference for AlphaBeta.
func (n *Node) Minimax() int {
	children := n.Children()
	if n.Depth == n.maxDepth || len(children) == 0 {
		return n.leafValue()
	}
	value := infinity
	if n.Depth%2 == 0 {
		value = -infinity
	}
	for _, c := range children {
		v := c.Minimax()
		if n.Depth%2 == 0 {
			value = max(value, v)
		} else {
			value = min(value, v)
		}
	}
	return value
}
