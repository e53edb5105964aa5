package model

// GameState is the snapshot handed to the presentation layer.
type GameState struct {
	ID          string       `json:"id"`
	Mode        Mode         `json:"mode"`
	Board       [64]*Piece   `json:"board"`
	Turn        int          `json:"turn"`
	ToMove      Color        `json:"toMove"`
	Status      StatusReport `json:"status"`
	IsCheck     bool         `json:"isCheck"`
	MoveHistory []Ply        `json:"moveHistory"`
	LastMove    *Move        `json:"lastMove"`
	Players     struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

func (g *Game) GetState() GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cur := g.current()
	state := GameState{
		ID:          g.ID,
		Mode:        g.Mode,
		Turn:        cur.Index,
		ToMove:      cur.ToMove(),
		Status:      g.status,
		IsCheck:     g.status.State == Check || g.status.State == Checkmate,
		MoveHistory: make([]Ply, 0, len(g.turns)-1),
	}
	for sq := range cur.Board {
		if p := cur.Board[sq].Piece; !p.IsZero() {
			state.Board[sq] = &p
		}
	}
	for _, t := range g.turns[1:] {
		state.MoveHistory = append(state.MoveHistory, *t.Ply)
	}
	if cur.Moved() {
		m := cur.Move()
		state.LastMove = &m
	}
	state.Players.White = g.players[White].client()
	state.Players.Black = g.players[Black].client()
	return state
}
