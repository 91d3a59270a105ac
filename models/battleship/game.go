package battleship

import (
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

// Game is the single authoritative instance of a match shared by two
// remote players. Every command takes the game lock, so commands are
// applied one at a time in the order they acquire it.
type Game struct {
	uuid      string
	createdAt time.Time

	mu           sync.Mutex
	match        *Match
	players      [2]*Player
	lastActivity time.Time
}

// ShotResult is what both players need to know about an accepted shot.
type ShotResult struct {
	Seq      int           `json:"seq"`
	Move     MoveRecord    `json:"move"`
	Turn     Side          `json:"turn"`
	Sunk     []Coordinates `json:"sunk,omitempty"`
	Finished bool          `json:"finished"`
	Winner   *Side         `json:"winner,omitempty"`

	DefenderRemainingShipCells int `json:"defender_remaining_ship_cells"`
}

func newGame(gameUuid string, match *Match) *Game {
	now := time.Now()
	return &Game{
		uuid:         gameUuid,
		createdAt:    now,
		match:        match,
		lastActivity: now,
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// IdleFor is the time since the last accepted command or seat change.
func (g *Game) IdleFor() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	return time.Since(g.lastActivity)
}

// must be called with g.mu held
func (g *Game) touch() {
	g.lastActivity = time.Now()
}

// AddPlayer seats a player on side.
func (g *Game) AddPlayer(side Side, name, sessionID string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players[side] != nil {
		return nil, cerr.ErrSideTaken(g.uuid, side.String())
	}

	player := NewPlayer(side, name, sessionID)
	g.players[side] = player
	g.touch()
	return player, nil
}

// AddJoinPlayer seats a player on the join side, failing if the game
// already has its opponent.
func (g *Game) AddJoinPlayer(name, sessionID string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players[SideJoin] != nil {
		return nil, cerr.ErrGameFull(g.uuid)
	}

	player := NewPlayer(SideJoin, name, sessionID)
	g.players[SideJoin] = player
	g.touch()
	return player, nil
}

// BindSession moves a named player's seat to a new session, e.g. after
// the player resumed the game from another connection.
func (g *Game) BindSession(name, sessionID string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, player := range g.players {
		if player != nil && player.name == name {
			player.sessionID = sessionID
			g.touch()
			return player, nil
		}
	}
	return nil, cerr.ErrPlayerNotInGame(name, g.uuid)
}

func (g *Game) Player(side Side) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.players[side]
}

// SessionID returns the session currently seated on side, or "".
func (g *Game) SessionID(side Side) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players[side] == nil {
		return ""
	}
	return g.players[side].sessionID
}

func (g *Game) IsFull() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.players[SideHost] != nil && g.players[SideJoin] != nil
}

func (g *Game) PlaceShip(side Side, shipIndex int, start, end Coordinates) (MatchView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.match.PlaceShip(side, shipIndex, start, end); err != nil {
		return MatchView{}, err
	}
	g.touch()
	return g.match.View(side), nil
}

// SetReady also returns the side's board as it was when it became
// ready, before the opponent can fire at it.
func (g *Game) SetReady(side Side) (Phase, Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	phase, err := g.match.SetReady(side)
	if err != nil {
		return phase, Grid{}, err
	}
	g.touch()
	return phase, g.match.Board(side).Grid(), nil
}

func (g *Game) FireAt(side Side, target Coordinates) (ShotResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	move, err := g.match.FireAt(side, target)
	if err != nil {
		return ShotResult{}, err
	}
	g.touch()

	defender := side.Other()
	result := ShotResult{
		Seq:                        len(g.match.moves) - 1,
		Move:                       move,
		Turn:                       g.match.Turn(),
		DefenderRemainingShipCells: g.match.Board(defender).RemainingShipCells(),
	}
	if move.Outcome == OutcomeHit {
		result.Sunk, _ = g.match.SunkShip(defender, target)
	}
	if winner, ok := g.match.Winner(); ok {
		result.Finished = true
		result.Winner = &winner
	}
	return result, nil
}

func (g *Game) View(side Side) MatchView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.View(side)
}

func (g *Game) Snapshot() MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.Snapshot()
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.Phase()
}

func (g *Game) Turn() Side {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.Turn()
}

func (g *Game) FirstTurn() Side {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.FirstTurn()
}

func (g *Game) Board(side Side) Grid {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match.Board(side).Grid()
}

func (g *Game) Fleet() []ShipSpec {
	return g.match.Fleet()
}
