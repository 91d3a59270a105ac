package battleship

import "fmt"

type Side uint8

const (
	SideHost Side = iota
	SideJoin
)

// Sides lists both sides in host, join order.
var Sides = [2]Side{SideHost, SideJoin}

func (s Side) Valid() bool {
	return s == SideHost || s == SideJoin
}

func (s Side) Other() Side {
	if s == SideHost {
		return SideJoin
	}
	return SideHost
}

func (s Side) String() string {
	switch s {
	case SideHost:
		return "host"
	case SideJoin:
		return "join"
	default:
		return "unknown"
	}
}

func ParseSide(str string) (Side, error) {
	switch str {
	case "host":
		return SideHost, nil
	case "join":
		return SideJoin, nil
	default:
		return SideHost, fmt.Errorf("invalid side: %q", str)
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid side: %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Phase uint8

const (
	PhasePlacement Phase = iota
	PhaseAwaitingOpponentReady
	PhaseActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseAwaitingOpponentReady:
		return "awaiting_opponent_ready"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, phase := range []Phase{PhasePlacement, PhaseAwaitingOpponentReady, PhaseActive, PhaseFinished} {
		if phase.String() == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("invalid phase: %q", text)
}

type sideState struct {
	board *Board
	ready bool
}

// Match is the authoritative state of one game between two sides.
// It performs no locking; callers serialize access (see Game).
type Match struct {
	sides     [2]sideState
	fleet     []ShipSpec
	firstTurn Side
	turn      Side
	winner    Side
	finished  bool
	moves     []MoveRecord
}

func NewMatch(fleet []ShipSpec, firstTurn Side) *Match {
	if !firstTurn.Valid() {
		panic(fmt.Sprintf("invalid first turn side: %d", firstTurn))
	}

	m := &Match{
		fleet:     copyFleet(fleet),
		firstTurn: firstTurn,
		turn:      firstTurn,
		moves:     make([]MoveRecord, 0, 2*FleetCells(fleet)),
	}
	for _, side := range Sides {
		m.sides[side].board = NewBoard(fleet)
	}
	return m
}

func NewStandardMatch(firstTurn Side) *Match {
	return NewMatch(StandardFleet, firstTurn)
}

func (m *Match) side(s Side) *sideState {
	if !s.Valid() {
		panic(fmt.Sprintf("invalid side: %d", s))
	}
	return &m.sides[s]
}

// PlaceShip places a ship on the acting side's own board.
func (m *Match) PlaceShip(side Side, shipIndex int, start, end Coordinates) error {
	st := m.side(side)
	if m.finished {
		return reject(ReasonAlreadyFinished, "match is over")
	}
	if st.ready {
		return reject(ReasonWrongPhase, "%s is ready and can no longer place ships", side)
	}
	return st.board.PlaceShip(shipIndex, start, end)
}

// SetReady locks the side's fleet. The match becomes active as soon
// as both sides are ready, with the first-turn side to move.
func (m *Match) SetReady(side Side) (Phase, error) {
	st := m.side(side)
	if m.finished {
		return PhaseFinished, reject(ReasonAlreadyFinished, "match is over")
	}
	if st.ready {
		return m.SidePhase(side), reject(ReasonWrongPhase, "%s is already ready", side)
	}
	if !st.board.FleetComplete() {
		index, spec, _ := st.board.NextShip()
		return m.SidePhase(side), reject(ReasonWrongPhase, "%s still has to place ship %d (%s)", side, index, spec.Name)
	}

	st.ready = true
	if m.side(side.Other()).ready {
		m.turn = m.firstTurn
	}
	return m.SidePhase(side), nil
}

// FireAt resolves a shot of side against the opponent's board. The
// turn passes to the other side after every accepted shot.
func (m *Match) FireAt(side Side, target Coordinates) (MoveRecord, error) {
	m.side(side)
	if m.finished {
		return MoveRecord{}, reject(ReasonAlreadyFinished, "match is over")
	}
	if m.Phase() != PhaseActive {
		return MoveRecord{}, reject(ReasonWrongPhase, "match is in %s phase", m.Phase())
	}
	if m.turn != side {
		return MoveRecord{}, reject(ReasonOutOfTurn, "it is %s's turn", m.turn)
	}

	defender := m.side(side.Other()).board
	outcome, err := defender.ResolveShot(target)
	if err != nil {
		return MoveRecord{}, err
	}

	move := MoveRecord{Side: side, Row: target.Row, Col: target.Col, Outcome: outcome}
	m.moves = append(m.moves, move)
	m.turn = side.Other()

	if defender.RemainingShipCells() == 0 {
		m.finished = true
		m.winner = side
	}
	return move, nil
}

func (m *Match) Phase() Phase {
	host, join := m.sides[SideHost].ready, m.sides[SideJoin].ready
	switch {
	case m.finished:
		return PhaseFinished
	case host && join:
		return PhaseActive
	case host || join:
		return PhaseAwaitingOpponentReady
	default:
		return PhasePlacement
	}
}

// SidePhase is the phase as seen by one side: a side that is ready
// waits for its opponent independently of the other side's progress.
func (m *Match) SidePhase(side Side) Phase {
	st := m.side(side)
	switch {
	case m.finished:
		return PhaseFinished
	case !st.ready:
		return PhasePlacement
	case m.side(side.Other()).ready:
		return PhaseActive
	default:
		return PhaseAwaitingOpponentReady
	}
}

func (m *Match) Turn() Side {
	return m.turn
}

func (m *Match) FirstTurn() Side {
	return m.firstTurn
}

func (m *Match) Winner() (Side, bool) {
	return m.winner, m.finished
}

func (m *Match) Ready(side Side) bool {
	return m.side(side).ready
}

// Board returns the side's own board. Callers must not mutate it;
// commands go through the match.
func (m *Match) Board(side Side) *Board {
	return m.side(side).board
}

// OpponentView is the side's own board as its opponent may see it.
func (m *Match) OpponentView(side Side) Grid {
	return m.side(side).board.OpponentView()
}

func (m *Match) Fleet() []ShipSpec {
	return copyFleet(m.fleet)
}

func (m *Match) Moves() []MoveRecord {
	return append([]MoveRecord(nil), m.moves...)
}

// SunkShip reports the cells of the defender's ship covering target
// when that ship has no unhit cell left.
func (m *Match) SunkShip(defender Side, target Coordinates) ([]Coordinates, bool) {
	board := m.side(defender).board
	index, ok := board.ShipAt(target)
	if !ok || !board.ShipSunk(index) {
		return nil, false
	}
	return board.Placements()[index], true
}
