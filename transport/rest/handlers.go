package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	StateHandler(w http.ResponseWriter, _ *http.Request)
}

type stateProvider interface {
	CurrentState() entity.Snapshot
}

type handlers struct {
	logger *slog.Logger
	state  stateProvider
}

func NewHandlers(logger *slog.Logger, state stateProvider) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		state:  state,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "method", "PingHandler", "error", err)
	}
}

// StateHandler - returns the last broadcast board in the same shape as the update message.
func (that *handlers) StateHandler(w http.ResponseWriter, _ *http.Request) {
	log := that.logger.With("method", "StateHandler")

	data, err := json.Marshal(that.state.CurrentState())
	if err != nil {
		log.Error("failed to marshal state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(data); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
