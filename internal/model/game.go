package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mode selects which seats the search engine plays.
type Mode uint8

const (
	HumanVsHuman Mode = iota
	HumanVsComputer
	ComputerVsComputer
)

// DefaultDepth is the search depth automated players use unless told
// otherwise.
const DefaultDepth = 3

var modeNames = [...]string{"human", "mixed", "computer"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, name := range modeNames {
		if s == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game mode %q", b)
}

type Options struct {
	Mode Mode
	// Depth of the automated players' search; DefaultDepth when zero.
	Depth int
	// Promote is asked when a human pawn promotes and the submitted move
	// carries no choice. Queen when nil.
	Promote PromotionChooser
}

// Game sequences turns between two players. Turns are immutable, so a
// *Turn obtained from the game may be read without holding any lock.
type Game struct {
	ID   string
	Mode Mode

	mu        sync.RWMutex
	players   [2]*Player
	turns     []*Turn
	status    StatusReport
	changed   chan struct{}
	observers []func(*Game, *Turn)

	// inflight admits one submission at a time; others are rejected.
	inflight sync.Mutex
}

func NewGame(id string, opts Options) *Game {
	depth := opts.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}
	g := &Game{
		ID:      id,
		Mode:    opts.Mode,
		changed: make(chan struct{}),
	}
	for _, c := range [...]Color{Black, White} {
		g.players[c] = &Player{Color: c, Depth: depth, Promote: opts.Promote}
	}
	switch opts.Mode {
	case HumanVsComputer:
		g.players[Black].Automated = true
	case ComputerVsComputer:
		g.players[Black].Automated = true
		g.players[White].Automated = true
	}
	g.turns = []*Turn{NewTurn()}
	g.status = Evaluate(g.turns[0])
	return g
}

func (g *Game) current() *Turn {
	return g.turns[len(g.turns)-1]
}

func (g *Game) CurrentTurn() *Turn {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current()
}

// CurrentPlayer is the player to move.
func (g *Game) CurrentPlayer() *Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.players[g.current().ToMove()]
}

func (g *Game) NextPlayer() *Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.players[g.current().ToMove().Opponent()]
}

func (g *Game) Player(c Color) *Player {
	return g.players[c]
}

// Turns returns the history, oldest first.
func (g *Game) Turns() []*Turn {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Turn, len(g.turns))
	copy(out, g.turns)
	return out
}

func (g *Game) Status() StatusReport {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Captured lists the enemy pieces c has taken.
func (g *Game) Captured(c Color) []Piece {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.players[c].client().Captured
}

// LegalMoves returns the legal destinations of the piece on from in turn t.
func (g *Game) LegalMoves(t *Turn, from int) []int {
	if !OnBoard(from) {
		return nil
	}
	return LegalMoves(t, from)
}

// Subscribe registers fn to be called after every new turn and after a
// reset. Callbacks run on the goroutine that changed the game, outside the
// game's lock.
func (g *Game) Subscribe(fn func(*Game, *Turn)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

func (g *Game) SubmitMove(from, to int) (*Turn, error) {
	return g.Submit(Move{From: from, To: to})
}

func (g *Game) Submit(m Move) (*Turn, error) {
	return g.submit(nil, m)
}

// SubmitFrom submits m only if base is still the current turn, so a result
// computed for an older position is discarded with ErrStaleTurn.
func (g *Game) SubmitFrom(base *Turn, m Move) (*Turn, error) {
	return g.submit(base, m)
}

func (g *Game) submit(base *Turn, m Move) (*Turn, error) {
	if !g.inflight.TryLock() {
		return nil, ErrMoveInFlight
	}
	defer g.inflight.Unlock()

	g.mu.RLock()
	cur := g.current()
	status := g.status
	player := g.players[cur.ToMove()]
	g.mu.RUnlock()

	if base != nil && base != cur {
		return nil, ErrStaleTurn
	}
	if status.State.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrGameOver, status.State)
	}
	if !IsLegal(cur, m) {
		return nil, &IllegalMoveError{From: m.From, To: m.To}
	}

	if NeedsPromotion(cur, m) {
		if m.Promotion == NoPiece {
			m.Promotion = choosePromotion(player)
		}
		if !m.Promotion.Promotable() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPromotion, m.Promotion)
		}
	} else {
		m.Promotion = NoPiece
	}

	next := Apply(cur, m)

	g.mu.Lock()
	if g.current() != cur {
		g.mu.Unlock()
		return nil, ErrStaleTurn
	}
	g.turns = append(g.turns, next)
	g.status = Evaluate(next)
	if next.Ply.CapturedPiece != nil {
		player.captured = append(player.captured, *next.Ply.CapturedPiece)
	}
	observers := g.signalLocked()
	g.mu.Unlock()

	for _, fn := range observers {
		fn(g, next)
	}
	return next, nil
}

// choosePromotion runs without the game lock held: a human chooser may
// block on its user.
func choosePromotion(p *Player) PieceType {
	if p.Automated || p.Promote == nil {
		return Queen
	}
	return p.Promote.ChoosePromotion(p)
}

// Reset discards the history and starts again from the initial position.
// Anything computed for an earlier turn can no longer be submitted.
func (g *Game) Reset() *Turn {
	g.mu.Lock()
	first := NewTurn()
	g.turns = []*Turn{first}
	g.status = Evaluate(first)
	for _, p := range g.players {
		p.captured = nil
	}
	observers := g.signalLocked()
	g.mu.Unlock()

	for _, fn := range observers {
		fn(g, first)
	}
	return first
}

// Replay resets the game and submits moves in order, stopping at the first
// one that fails.
func (g *Game) Replay(moves []Move) error {
	g.Reset()
	for i, m := range moves {
		if _, err := g.Submit(m); err != nil {
			return fmt.Errorf("replay move %d (%s): %w", i+1, m, err)
		}
	}
	return nil
}

// WaitTurn blocks until the current turn is no longer after, then returns
// the new current turn.
func (g *Game) WaitTurn(ctx context.Context, after *Turn) (*Turn, error) {
	for {
		g.mu.RLock()
		cur := g.current()
		ch := g.changed
		g.mu.RUnlock()
		if cur != after {
			return cur, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (g *Game) signalLocked() []func(*Game, *Turn) {
	close(g.changed)
	g.changed = make(chan struct{})
	observers := make([]func(*Game, *Turn), len(g.observers))
	copy(observers, g.observers)
	return observers
}
