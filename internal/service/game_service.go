package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// CreateGameRequest is the body of a game creation call.
type CreateGameRequest struct {
	Mode  model.Mode `json:"mode"`
	Depth int        `json:"depth"`
}

type GameService struct {
	gameManager  *GameManager
	defaultDepth int
	maxDepth     int
}

func NewGameService(gameManager *GameManager, defaultDepth, maxDepth int) *GameService {
	return &GameService{
		gameManager:  gameManager,
		defaultDepth: defaultDepth,
		maxDepth:     maxDepth,
	}
}

func (gs *GameService) CreateGame(playerID string, req CreateGameRequest) (string, error) {
	depth := req.Depth
	if depth == 0 {
		depth = gs.defaultDepth
	}
	if depth < 1 || depth > gs.maxDepth {
		return "", fmt.Errorf("search depth must be between 1 and %d", gs.maxDepth)
	}
	gameID, err := gs.gameManager.CreateGame(playerID, model.Options{Mode: req.Mode, Depth: depth})
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// HasGame reports whether gameID names a live game.
func (gs *GameService) HasGame(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID, from string) ([]int, error) {
	sq, err := model.ParseSquare(from)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(gameID, sq)
}

func (gs *GameService) HandleMove(gameID, playerID string, payload ws.MovePayload) (model.GameState, error) {
	move, err := ParseMove(payload)
	if err != nil {
		return model.GameState{}, err
	}
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) ResetGame(gameID, playerID string) (model.GameState, error) {
	return gs.gameManager.ResetGame(gameID, playerID)
}

func (gs *GameService) DeleteGame(gameID, playerID string) error {
	return gs.gameManager.DeleteGame(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) SendError(gameID string, conn Conn, err error) {
	gs.gameManager.SendError(gameID, conn, err)
}

// ParseMove converts a client move payload into a model move.
func ParseMove(p ws.MovePayload) (model.Move, error) {
	from, err := model.ParseSquare(p.From)
	if err != nil {
		return model.Move{}, fmt.Errorf("from: %w", err)
	}
	to, err := model.ParseSquare(p.To)
	if err != nil {
		return model.Move{}, fmt.Errorf("to: %w", err)
	}
	promo, err := model.ParsePieceType(p.Promotion)
	if err != nil {
		return model.Move{}, fmt.Errorf("%w: %v", model.ErrInvalidPromotion, err)
	}
	return model.Move{From: from, To: to, Promotion: promo}, nil
}
