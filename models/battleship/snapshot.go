package battleship

import (
	"fmt"
	"sort"
)

// MatchView is everything one side is allowed to render.
// The opponent's board only ever appears as its opponent view.
type MatchView struct {
	Side                       Side         `json:"side"`
	Phase                      Phase        `json:"phase"`
	MatchPhase                 Phase        `json:"match_phase"`
	Turn                       Side         `json:"turn"`
	IsTurn                     bool         `json:"is_turn"`
	Winner                     *Side        `json:"winner,omitempty"`
	Ready                      bool         `json:"ready"`
	OpponentReady              bool         `json:"opponent_ready"`
	NextShipIndex              int          `json:"next_ship_index"`
	Fleet                      []ShipSpec   `json:"fleet"`
	OwnBoard                   Grid         `json:"own_board"`
	OpponentBoard              Grid         `json:"opponent_board"`
	RemainingShipCells         int          `json:"remaining_ship_cells"`
	OpponentRemainingShipCells int          `json:"opponent_remaining_ship_cells"`
	Moves                      []MoveRecord `json:"moves"`
}

func (m *Match) View(side Side) MatchView {
	own := m.side(side).board
	opp := m.side(side.Other()).board
	nextIndex, _, _ := own.NextShip()

	view := MatchView{
		Side:                       side,
		Phase:                      m.SidePhase(side),
		MatchPhase:                 m.Phase(),
		Turn:                       m.turn,
		IsTurn:                     m.Phase() == PhaseActive && m.turn == side,
		Ready:                      m.side(side).ready,
		OpponentReady:              m.side(side.Other()).ready,
		NextShipIndex:              nextIndex,
		Fleet:                      m.Fleet(),
		OwnBoard:                   own.Grid(),
		OpponentBoard:              opp.OpponentView(),
		RemainingShipCells:         own.RemainingShipCells(),
		OpponentRemainingShipCells: opp.RemainingShipCells(),
		Moves:                      m.Moves(),
	}
	if winner, ok := m.Winner(); ok {
		view.Winner = &winner
	}
	return view
}

// MatchSnapshot is the persisted shape of a match. Boards are only
// recorded once their side is ready, either as placed or with the shots
// they have taken so far; turn and winner are derived by replaying the
// moves.
type MatchSnapshot struct {
	FirstTurn Side         `json:"first_turn"`
	HostReady bool         `json:"host_ready"`
	JoinReady bool         `json:"join_ready"`
	HostBoard []string     `json:"host_board,omitempty"`
	JoinBoard []string     `json:"join_board,omitempty"`
	Moves     []MoveRecord `json:"moves"`
}

func (s MatchSnapshot) Ready(side Side) bool {
	if side == SideHost {
		return s.HostReady
	}
	return s.JoinReady
}

func (s MatchSnapshot) Board(side Side) []string {
	if side == SideHost {
		return s.HostBoard
	}
	return s.JoinBoard
}

func (m *Match) Snapshot() MatchSnapshot {
	snap := MatchSnapshot{
		FirstTurn: m.firstTurn,
		HostReady: m.sides[SideHost].ready,
		JoinReady: m.sides[SideJoin].ready,
		Moves:     m.Moves(),
	}
	if snap.HostReady {
		snap.HostBoard = m.sides[SideHost].board.Grid().Rows()
	}
	if snap.JoinReady {
		snap.JoinBoard = m.sides[SideJoin].board.Grid().Rows()
	}
	return snap
}

// RestoreMatch rebuilds a match from a snapshot by restoring both
// fleets and replaying every move through the rules.
func RestoreMatch(fleet []ShipSpec, snap MatchSnapshot) (*Match, error) {
	if err := ValidateFleet(fleet); err != nil {
		return nil, err
	}
	if !snap.FirstTurn.Valid() {
		return nil, fmt.Errorf("invalid first turn side: %d", snap.FirstTurn)
	}

	m := NewMatch(fleet, snap.FirstTurn)
	persisted := make(map[Side]Grid, len(Sides))

	for _, side := range Sides {
		rows := snap.Board(side)
		if !snap.Ready(side) {
			if len(rows) != 0 {
				return nil, fmt.Errorf("%s is not ready but has a persisted board", side)
			}
			continue
		}

		grid, err := ParseGrid(rows)
		if err != nil {
			return nil, fmt.Errorf("%s board: %w", side, err)
		}
		board, err := RestoreBoard(fleet, withoutShots(grid))
		if err != nil {
			return nil, fmt.Errorf("%s board: %w", side, err)
		}

		persisted[side] = grid
		m.sides[side].board = board
		m.sides[side].ready = true
	}

	for i, move := range snap.Moves {
		replayed, err := m.FireAt(move.Side, move.Target())
		if err != nil {
			return nil, fmt.Errorf("replaying move %d: %w", i, err)
		}
		if replayed.Outcome != move.Outcome {
			return nil, fmt.Errorf("replaying move %d: recorded %s but board gives %s", i, move.Outcome, replayed.Outcome)
		}
	}

	for side, grid := range persisted {
		// a board stored when its side became ready carries no shots
		if grid == withoutShots(grid) {
			continue
		}
		if m.sides[side].board.Grid() != grid {
			return nil, fmt.Errorf("%s board does not match its move log", side)
		}
	}
	return m, nil
}

// RestoreBoard rebuilds a fully placed board from its grid. Ships are
// the 8-connected groups of ship and hit cells; each must be a straight
// run and runs are matched to fleet entries by length, in fleet order.
func RestoreBoard(fleet []ShipSpec, grid Grid) (*Board, error) {
	if err := ValidateFleet(fleet); err != nil {
		return nil, err
	}

	runs, err := shipRuns(grid)
	if err != nil {
		return nil, err
	}
	if len(runs) != len(fleet) {
		return nil, fmt.Errorf("board has %d ships, fleet has %d", len(runs), len(fleet))
	}

	board := NewBoard(fleet)
	used := make([]bool, len(runs))

	for i, spec := range fleet {
		found := -1
		for j, run := range runs {
			if !used[j] && len(run) == spec.Length {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("no run of length %d on the board for ship %d (%s)", spec.Length, i, spec.Name)
		}

		used[found] = true
		board.placements = append(board.placements, runs[found])
	}

	board.grid = grid
	return board, nil
}

func shipRuns(grid Grid) ([][]Coordinates, error) {
	var seen [GridSize][GridSize]bool
	runs := make([][]Coordinates, 0)

	isShip := func(c Coordinates) bool {
		state := grid.At(c)
		return state == CellShip || state == CellHit
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			origin := NewCoordinates(row, col)
			if seen[row][col] || !isShip(origin) {
				continue
			}

			group := []Coordinates{origin}
			seen[row][col] = true
			for i := 0; i < len(group); i++ {
				for _, n := range neighbours(group[i]) {
					if !seen[n.Row][n.Col] && isShip(n) {
						seen[n.Row][n.Col] = true
						group = append(group, n)
					}
				}
			}

			if !straight(group) {
				return nil, fmt.Errorf("ship cells around (%d,%d) do not form a straight run", row, col)
			}
			sort.Slice(group, func(i, j int) bool {
				if group[i].Row != group[j].Row {
					return group[i].Row < group[j].Row
				}
				return group[i].Col < group[j].Col
			})
			runs = append(runs, group)
		}
	}
	return runs, nil
}

func straight(cells []Coordinates) bool {
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		sameRow = sameRow && c.Row == cells[0].Row
		sameCol = sameCol && c.Col == cells[0].Col
	}
	return sameRow || sameCol
}

// withoutShots turns hits back into ships and misses into water.
func withoutShots(grid Grid) Grid {
	for row := range grid {
		for col := range grid[row] {
			switch grid[row][col] {
			case CellHit:
				grid[row][col] = CellShip
			case CellMiss:
				grid[row][col] = CellWater
			}
		}
	}
	return grid
}
