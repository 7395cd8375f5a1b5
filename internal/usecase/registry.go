package usecase

import (
	"sort"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Registry maps live connections to the role they were assigned. It is not
// safe for concurrent use; the event loop owning the GameManager serializes access.
type Registry struct {
	players map[string]*entity.Player
	holders map[string]string // role -> session id
}

func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*entity.Player),
		holders: make(map[string]string),
	}
}

// OnConnect - assigns X, then O, then spectator to the new session.
func (that *Registry) OnConnect(sessionID string) *entity.Player {
	if player, ok := that.players[sessionID]; ok {
		return player
	}

	player := &entity.Player{ID: sessionID, Mark: entity.Spectator}

	for _, role := range []string{entity.PlayerX, entity.PlayerO} {
		if _, taken := that.holders[role]; !taken {
			player.Mark = role
			that.holders[role] = sessionID
			break
		}
	}

	that.players[sessionID] = player

	return player
}

// OnDisconnect - forgets the session and frees its role.
func (that *Registry) OnDisconnect(sessionID string) {
	player, ok := that.players[sessionID]
	if !ok {
		return
	}

	if !player.IsSpectator() && that.holders[player.Mark] == sessionID {
		delete(that.holders, player.Mark)
	}

	delete(that.players, sessionID)
}

// RoleOf - returns the session's role, or entity.Spectator for spectators and unknown sessions.
func (that *Registry) RoleOf(sessionID string) string {
	if player, ok := that.players[sessionID]; ok {
		return player.Mark
	}

	return entity.Spectator
}

// Sessions - returns the registered session IDs, sorted.
func (that *Registry) Sessions() []string {
	ids := make([]string, 0, len(that.players))
	for id := range that.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (that *Registry) Len() int {
	return len(that.players)
}
