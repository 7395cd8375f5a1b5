package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Hub fans snapshots out to every registered connection.
type Hub struct {
	logger     *slog.Logger
	sendBuffer int

	mu          sync.RWMutex
	connections map[string]*Connection
}

func NewHub(logger *slog.Logger, sendBuffer int) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		sendBuffer:  sendBuffer,
		connections: make(map[string]*Connection),
	}
}

func (that *Hub) Register(conn *Connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn.ID] = conn
}

// Unregister - removes the connection and closes its send queue.
func (that *Hub) Unregister(conn *Connection) {
	that.mu.Lock()
	if current, ok := that.connections[conn.ID]; ok && current == conn {
		delete(that.connections, conn.ID)
	}
	that.mu.Unlock()

	conn.close()
}

// Broadcast - encodes the snapshot once and enqueues it on every connection.
// Slow or closed connections are skipped.
func (that *Hub) Broadcast(snapshot entity.Snapshot) {
	log := that.logger.With("method", "Broadcast")

	data, err := encodeUpdate(snapshot)
	if err != nil {
		log.Error("failed to encode update", "error", err)
		return
	}

	for _, conn := range that.snapshotConnections() {
		if !conn.enqueue(data) {
			log.Warn("update dropped", "sessionID", conn.ID)
		}
	}
}

// Send - enqueues data for a single connection.
func (that *Hub) Send(conn *Connection, data []byte) bool {
	if !conn.enqueue(data) {
		that.logger.Warn("message dropped", "method", "Send", "sessionID", conn.ID)
		return false
	}

	return true
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

// CloseAll - closes every send queue; write pumps then say goodbye to their peers.
func (that *Hub) CloseAll() {
	for _, conn := range that.snapshotConnections() {
		that.Unregister(conn)
	}
}

func (that *Hub) snapshotConnections() []*Connection {
	that.mu.RLock()
	defer that.mu.RUnlock()

	conns := make([]*Connection, 0, len(that.connections))
	for _, conn := range that.connections {
		conns = append(conns, conn)
	}

	return conns
}
