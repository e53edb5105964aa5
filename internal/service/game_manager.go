// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotGameOwner = errors.New("game belongs to another player")
	ErrNotYourTurn  = errors.New("not your turn")
)

type managedGame struct {
	game        *model.Game
	owner       string
	connections *GameConnections
}

// GameManager keeps every live game, its websocket watchers and the
// autoplayer driving its automated seats.
type GameManager struct {
	games      map[string]*managedGame
	autoplayer *Autoplayer
	mu         sync.RWMutex
}

func NewGameManager(autoplayer *Autoplayer) *GameManager {
	return &GameManager{
		games:      make(map[string]*managedGame),
		autoplayer: autoplayer,
	}
}

// CreateGame starts a game owned by playerID and returns its ID.
func (gm *GameManager) CreateGame(playerID string, opts model.Options) (string, error) {
	gameID := uuid.New().String()
	mg := &managedGame{
		game:        model.NewGame(gameID, opts),
		owner:       playerID,
		connections: NewGameConnections(),
	}
	mg.game.Subscribe(func(g *model.Game, _ *model.Turn) {
		mg.connections.Broadcast(g.GetState())
	})

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return "", errors.New("game already exists")
	}
	gm.games[gameID] = mg
	gm.mu.Unlock()

	log.Printf("game %s created by %s (mode %s)", gameID, playerID, opts.Mode)
	gm.autoplayer.Attach(mg.game)
	return gameID, nil
}

func (gm *GameManager) lookup(gameID string) (*managedGame, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	mg, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return mg, nil
}

func (gm *GameManager) owned(gameID, playerID string) (*managedGame, error) {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return nil, err
	}
	if mg.owner != playerID {
		return nil, ErrNotGameOwner
	}
	return mg, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return nil, err
	}
	return mg.game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return mg.game.GetState(), nil
}

// LegalMoves lists the destinations of the piece on from in the current
// turn, for highlighting.
func (gm *GameManager) LegalMoves(gameID string, from int) ([]int, error) {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return nil, err
	}
	g := mg.game
	return g.LegalMoves(g.CurrentTurn(), from), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, move model.Move) (model.GameState, error) {
	mg, err := gm.owned(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	if mg.game.CurrentPlayer().Automated {
		return model.GameState{}, fmt.Errorf("%w: %s is played by the computer", ErrNotYourTurn, mg.game.CurrentTurn().ToMove())
	}
	if _, err := mg.game.Submit(move); err != nil {
		return model.GameState{}, err
	}
	return mg.game.GetState(), nil
}

// ResetGame restarts the game; a search in flight for the old history is
// discarded.
func (gm *GameManager) ResetGame(gameID, playerID string) (model.GameState, error) {
	mg, err := gm.owned(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	gm.autoplayer.Stop(mg.game)
	mg.game.Reset()
	return mg.game.GetState(), nil
}

func (gm *GameManager) DeleteGame(gameID, playerID string) error {
	mg, err := gm.owned(gameID, playerID)
	if err != nil {
		return err
	}
	gm.mu.Lock()
	delete(gm.games, gameID)
	gm.mu.Unlock()
	gm.autoplayer.Detach(mg.game)
	log.Printf("game %s deleted", gameID)
	return nil
}

// RegisterConnection attaches a websocket watcher. Only the owner may drive
// the game, but anyone may watch it.
func (gm *GameManager) RegisterConnection(gameID, playerID string, conn Conn) error {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return err
	}
	if !mg.connections.Register(playerID, conn) {
		return nil
	}
	log.Printf("game %s: connection registered for %s", gameID, playerID)
	mg.connections.Broadcast(mg.game.GetState())
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn Conn) {
	mg, err := gm.lookup(gameID)
	if err != nil {
		return
	}
	mg.connections.Unregister(playerID, conn)
}

func (gm *GameManager) SendError(gameID string, conn Conn, err error) {
	mg, lerr := gm.lookup(gameID)
	if lerr != nil {
		return
	}
	if werr := mg.connections.SendError(conn, err); werr != nil {
		log.Printf("game %s: send error: %v", gameID, werr)
	}
}
