package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections holds the websocket connections watching one game.
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// writes are serialised per game; gorilla-style connections allow only
	// one concurrent writer.
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Register adds conn for playerID. A second connection for the same player
// is closed and rejected.
func (gc *GameConnections) Register(playerID string, conn Conn) bool {
	gc.mu.Lock()
	if _, exists := gc.connections[playerID]; exists {
		gc.mu.Unlock()
		gc.writeMu.Lock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		gc.writeMu.Unlock()
		conn.Close()
		return false
	}
	gc.connections[playerID] = conn
	gc.mu.Unlock()
	return true
}

// Unregister removes playerID's connection if it is still conn.
func (gc *GameConnections) Unregister(playerID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if cur, exists := gc.connections[playerID]; exists && cur == conn {
		delete(gc.connections, playerID)
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// Broadcast sends state to every connection, dropping those that fail.
func (gc *GameConnections) Broadcast(state model.GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", state.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	gc.mu.RLock()
	active := make(map[string]Conn, len(gc.connections))
	for playerID, conn := range gc.connections {
		active[playerID] = conn
	}
	gc.mu.RUnlock()

	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", state.ID, playerID, err)
			gc.Unregister(playerID, conn)
		}
	}
}

// SendError writes an error message to a single connection.
func (gc *GameConnections) SendError(conn Conn, err error) error {
	payload, merr := json.Marshal(fmt.Sprint(err))
	if merr != nil {
		return merr
	}
	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	return conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload})
}
