package battleship

import "github.com/google/uuid"

// Player is a participant of a game. The player's board lives in the
// match under the player's side.
type Player struct {
	uuid      string
	name      string
	side      Side
	sessionID string
}

func NewPlayer(side Side, name, sessionID string) *Player {
	return &Player{
		uuid:      uuid.NewString()[:10],
		name:      name,
		side:      side,
		sessionID: sessionID,
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Side() Side {
	return p.side
}

func (p *Player) IsHost() bool {
	return p.side == SideHost
}

func (p *Player) SessionID() string {
	return p.sessionID
}
