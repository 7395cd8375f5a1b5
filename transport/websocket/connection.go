package websocket

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// maxFrameSize is the hard transport limit; larger frames close the connection.
	maxFrameSize = 64 << 10
)

var (
	errConnectionClosed = errors.New("connection closed")
	errMessageTooLarge  = errors.New("message too large")
)

// Connection is one websocket peer and its outbound queue.
type Connection struct {
	ID string

	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newConnection(id string, conn *websocket.Conn, sendBuffer int) *Connection {
	return &Connection{
		ID:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// enqueue - non-blocking; false when the queue is full or closed.
func (that *Connection) enqueue(data []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *Connection) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.send)
	}
}

// readPump - hands every text frame to onMessage until the peer goes away.
// Frames over maxMessageSize are discarded and reported to onDrop.
func (that *Connection) readPump(onMessage func(data []byte), onDrop func(err error)) error {
	defer that.conn.Close()

	that.conn.SetReadLimit(maxFrameSize)
	if err := that.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}

	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, reader, err := that.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				return err
			}

			return nil
		}

		data, err := readFrame(reader)
		if errors.Is(err, errMessageTooLarge) {
			onDrop(err)
			continue
		}

		if err != nil {
			return err
		}

		if messageType == websocket.TextMessage {
			onMessage(data)
		}
	}
}

// readFrame - reads at most maxMessageSize bytes and discards the rest of a longer frame.
func readFrame(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxMessageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	if len(data) <= maxMessageSize {
		return data, nil
	}

	discarded, err := io.Copy(io.Discard, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to discard message: %w", err)
	}

	return nil, fmt.Errorf("%w: %d bytes", errMessageTooLarge, int64(len(data))+discarded)
}

// writePump - drains the send queue to the socket and keeps the peer alive with pings.
func (that *Connection) writePump() error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return errConnectionClosed
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}

		case <-ticker.C:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}
