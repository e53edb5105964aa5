package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/search"
)

// Autoplayer moves for automated players. Each game has at most one search
// running; a new turn or a reset cancels it, and a result that arrives for a
// turn that is no longer current is dropped.
type Autoplayer struct {
	searcher *search.Searcher
	mu       sync.Mutex
	running  map[*model.Game]*job
	watches  map[*model.Game]*watch
	wg       sync.WaitGroup
}

// watch is the subscription Attach leaves on a game. Games keep their
// observers, so Detach switches it off instead of removing it.
type watch struct {
	off atomic.Bool
}

type job struct {
	turn   *model.Turn
	cancel context.CancelFunc
}

func NewAutoplayer(searcher *search.Searcher) *Autoplayer {
	return &Autoplayer{
		searcher: searcher,
		running:  make(map[*model.Game]*job),
		watches:  make(map[*model.Game]*watch),
	}
}

// Attach makes the autoplayer react to every turn of g and starts it if an
// automated player is already to move.
func (a *Autoplayer) Attach(g *model.Game) {
	w := &watch{}
	a.mu.Lock()
	a.watches[g] = w
	a.mu.Unlock()

	g.Subscribe(func(g *model.Game, t *model.Turn) {
		if w.off.Load() {
			return
		}
		a.Kick(g, t)
	})
	a.Kick(g, g.CurrentTurn())
}

// Kick starts a search for t if g is attached, an automated player is to
// move and the game is not over. Any search for an older turn of g is
// cancelled.
func (a *Autoplayer) Kick(g *model.Game, t *model.Turn) {
	player := g.Player(t.ToMove())
	playable := player.Automated && !model.Evaluate(t).State.Terminal()

	a.mu.Lock()
	defer a.mu.Unlock()

	if j, ok := a.running[g]; ok {
		if j.turn == t {
			return
		}
		j.cancel()
		delete(a.running, g)
	}

	if _, ok := a.watches[g]; !ok || !playable {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &job{turn: t, cancel: cancel}
	a.running[g] = j
	a.wg.Add(1)
	go a.run(ctx, g, j, player.Depth)
}

func (a *Autoplayer) run(ctx context.Context, g *model.Game, j *job, depth int) {
	defer a.wg.Done()
	defer a.finish(g, j)

	res, err := a.searcher.Choose(ctx, j.turn, depth)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("game %s: search failed: %v", g.ID, err)
		}
		return
	}
	if _, err := g.SubmitFrom(j.turn, res.Move); err != nil {
		if errors.Is(err, model.ErrStaleTurn) {
			return
		}
		log.Printf("game %s: automated move %s rejected: %v", g.ID, res.Move, err)
	}
}

func (a *Autoplayer) finish(g *model.Game, j *job) {
	a.mu.Lock()
	defer a.mu.Unlock()
	j.cancel()
	if a.running[g] == j {
		delete(a.running, g)
	}
}

// Stop cancels the search running for g, if any.
func (a *Autoplayer) Stop(g *model.Game) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if j, ok := a.running[g]; ok {
		j.cancel()
		delete(a.running, g)
	}
}

// Detach stops g for good; later turns of g start no search.
func (a *Autoplayer) Detach(g *model.Game) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if w, ok := a.watches[g]; ok {
		w.off.Store(true)
		delete(a.watches, g)
	}
	if j, ok := a.running[g]; ok {
		j.cancel()
		delete(a.running, g)
	}
}

// Wait blocks until every search goroutine has returned.
func (a *Autoplayer) Wait() {
	a.wg.Wait()
}
