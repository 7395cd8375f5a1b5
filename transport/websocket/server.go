package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	eventQueueSize  = 64
	shutdownTimeout = 5 * time.Second
)

type eventKind int

const (
	eventConnect eventKind = iota
	eventDisconnect
	eventMessage
)

type event struct {
	kind eventKind
	conn *Connection
	data []byte
}

// Server accepts websocket connections and serializes everything they do
// through one event loop, so the game state is only touched from Run.
type Server struct {
	logger  *slog.Logger
	manager gameManager
	router  *Router
	hub     *Hub

	upgrader websocket.Upgrader
	events   chan event
	done     chan struct{}
}

func New(logger *slog.Logger, manager gameManager, hub *Hub) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		router:  NewRouter(logger, manager),
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		events: make(chan event, eventQueueSize),
		done:   make(chan struct{}),
	}
}

// Start - starts WebSocket server and blocks until ctx is done or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	go that.Run(ctx)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", "error", err)
		}

		that.hub.CloseAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.ServeWS)

	return mux
}

// ServeWS - upgrades the request and starts the connection pumps.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(uuid.NewString(), wsConn, that.hub.sendBuffer)

	if !that.emit(event{kind: eventConnect, conn: conn}) {
		_ = wsConn.Close()
		return
	}

	go func() {
		if err := conn.writePump(); err != nil && !errors.Is(err, errConnectionClosed) {
			log.Debug("write pump stopped", "sessionID", conn.ID, "error", err)
		}
	}()

	go func() {
		err := conn.readPump(func(data []byte) {
			that.emit(event{kind: eventMessage, conn: conn, data: data})
		}, func(dropErr error) {
			log.Warn("oversized message dropped", "sessionID", conn.ID, "error", dropErr)
		})
		if err != nil {
			log.Warn("connection closed unexpectedly", "sessionID", conn.ID, "error", err)
		}

		that.emit(event{kind: eventDisconnect, conn: conn})
	}()
}

// Run - the event loop. It owns the game manager until ctx is done.
func (that *Server) Run(ctx context.Context) {
	defer close(that.done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-that.events:
			that.handle(ctx, ev)
		}
	}
}

func (that *Server) emit(ev event) bool {
	select {
	case that.events <- ev:
		return true
	case <-that.done:
		return false
	}
}

func (that *Server) handle(ctx context.Context, ev event) {
	switch ev.kind {
	case eventConnect:
		that.handleConnect(ev.conn)
	case eventDisconnect:
		that.hub.Unregister(ev.conn)
		that.manager.Disconnect(ev.conn.ID)
	case eventMessage:
		that.handleMessage(ctx, ev.conn, ev.data)
	}
}

// handleConnect - the newcomer gets its assignment first, then the current board.
func (that *Server) handleConnect(conn *Connection) {
	log := that.logger.With("method", "handleConnect")

	that.hub.Register(conn)
	player := that.manager.Connect(conn.ID)

	assign, err := encodeAssign(player)
	if err != nil {
		log.Error("failed to encode assign", "error", err)
		return
	}

	that.hub.Send(conn, assign)

	update, err := encodeUpdate(that.manager.Snapshot())
	if err != nil {
		log.Error("failed to encode update", "error", err)
		return
	}

	that.hub.Send(conn, update)
}

func (that *Server) handleMessage(ctx context.Context, conn *Connection, data []byte) {
	log := that.logger.With("method", "handleMessage", "sessionID", conn.ID)

	err := that.router.Route(ctx, conn.ID, data)

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrMalformedMessage):
		log.Warn("malformed message dropped", "error", err)
	default:
		log.Debug("message dropped", "error", err)
	}
}
