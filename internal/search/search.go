package search

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a search from one position.
type Result struct {
	Move  model.Move
	Turn  *model.Turn
	Value int
	// Best lists every root move whose value equals Value; Move is drawn
	// from it.
	Best []model.Move
}

// Searcher is safe for concurrent use.
type Searcher struct {
	mu  sync.Mutex
	rnd *rand.Rand
	// Workers bounds how many root moves are searched at once.
	Workers int
}

func NewSearcher(seed int64) *Searcher {
	return &Searcher{
		rnd:     rand.New(rand.NewSource(seed)),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Choose searches t to depth plies and picks uniformly among the root moves
// of maximal value. Every root move is searched with a full window on its
// own goroutine, so each root value is exact rather than a bound. Calling
// Choose on a finished game is an invariant violation.
func (s *Searcher) Choose(ctx context.Context, t *model.Turn, depth int) (Result, error) {
	if depth < 1 {
		model.Invariantf("search depth %d", depth)
	}
	if st := model.Evaluate(t); st.State.Terminal() {
		model.Invariantf("search on a finished game (%s)", st.State)
	}

	root := NewTree(t, depth)
	children := root.Children()
	values := make([]int, len(children))

	g, ctx := errgroup.WithContext(ctx)
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			v, err := c.alphaBeta(ctx, -infinity, infinity)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Value: -infinity}
	var best []int
	for i, v := range values {
		switch {
		case v > res.Value:
			res.Value = v
			best = append(best[:0], i)
		case v == res.Value:
			best = append(best, i)
		}
	}
	for _, i := range best {
		res.Best = append(res.Best, children[i].Turn.Move())
	}

	pick := best[s.intn(len(best))]
	res.Turn = children[pick].Turn
	res.Move = res.Turn.Move()
	return res, nil
}

func (s *Searcher) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
