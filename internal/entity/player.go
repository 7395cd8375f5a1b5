package entity

// Player is a live connection and the role it was assigned on connect.
type Player struct {
	ID   string `json:"id"`
	Mark string `json:"mark,omitempty"`
}

func (that *Player) IsSpectator() bool {
	return that.Mark == Spectator
}
