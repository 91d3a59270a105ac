package battleship

// Board is one side's grid together with the fleet that has to be
// placed on it. Ships are placed strictly in fleet order.
type Board struct {
	grid       Grid
	fleet      []ShipSpec
	placements [][]Coordinates
}

// NewBoard panics if the fleet is malformed; that is a programming
// error and never a consequence of a player's command.
func NewBoard(fleet []ShipSpec) *Board {
	if err := ValidateFleet(fleet); err != nil {
		panic(err)
	}

	return &Board{
		fleet:      copyFleet(fleet),
		placements: make([][]Coordinates, 0, len(fleet)),
	}
}

func NewStandardBoard() *Board {
	return NewBoard(StandardFleet)
}

// PlaceShip places fleet entry shipIndex on the straight run between
// start and end (in either order). Any failed check leaves the board
// untouched.
func (b *Board) PlaceShip(shipIndex int, start, end Coordinates) error {
	next := len(b.placements)
	if next >= len(b.fleet) {
		return reject(ReasonWrongPhase, "all %d ships are already placed", len(b.fleet))
	}
	if shipIndex != next {
		return reject(ReasonInvalidPlacement, "ship %d must be placed next, got %d", next, shipIndex)
	}
	spec := b.fleet[next]

	if !start.InBounds() || !end.InBounds() {
		return reject(ReasonInvalidPlacement, "run (%d,%d)-(%d,%d) is outside the board", start.Row, start.Col, end.Row, end.Col)
	}

	run := lineBetween(start, end)
	if run == nil {
		return reject(ReasonInvalidPlacement, "run (%d,%d)-(%d,%d) is not horizontal or vertical", start.Row, start.Col, end.Row, end.Col)
	}
	if len(run) != spec.Length {
		return reject(ReasonInvalidPlacement, "%s needs %d cells, run has %d", spec.Name, spec.Length, len(run))
	}

	for _, c := range run {
		if b.grid.At(c) != CellWater {
			return reject(ReasonInvalidPlacement, "cell (%d,%d) is already taken", c.Row, c.Col)
		}
	}

	for _, c := range run {
		for _, n := range neighbours(c) {
			if b.occupied(n) {
				return reject(ReasonInvalidPlacement, "cell (%d,%d) touches another ship at (%d,%d)", c.Row, c.Col, n.Row, n.Col)
			}
		}
	}

	for _, c := range run {
		b.grid[c.Row][c.Col] = CellShip
	}
	b.placements = append(b.placements, run)
	return nil
}

// ResolveShot fires at a cell of this board.
func (b *Board) ResolveShot(target Coordinates) (ShotOutcome, error) {
	if !target.InBounds() {
		return OutcomeMiss, reject(ReasonInvalidTarget, "target (%d,%d) is outside the board", target.Row, target.Col)
	}

	switch b.grid.At(target) {
	case CellHit, CellMiss:
		return OutcomeMiss, reject(ReasonAlreadyTargeted, "target (%d,%d) was already fired at", target.Row, target.Col)

	case CellShip:
		b.grid[target.Row][target.Col] = CellHit
		return OutcomeHit, nil

	default:
		b.grid[target.Row][target.Col] = CellMiss
		return OutcomeMiss, nil
	}
}

// RemainingShipCells counts the ship cells that have not been hit yet.
func (b *Board) RemainingShipCells() int {
	return b.grid.Count(CellShip)
}

func (b *Board) Grid() Grid {
	return b.grid
}

// OpponentView hides every unhit ship cell as water.
func (b *Board) OpponentView() Grid {
	view := b.grid
	for row := range view {
		for col := range view[row] {
			if view[row][col] == CellShip {
				view[row][col] = CellWater
			}
		}
	}
	return view
}

func (b *Board) Fleet() []ShipSpec {
	return copyFleet(b.fleet)
}

// NextShip returns the fleet entry that has to be placed next.
// ok is false once the whole fleet is on the board.
func (b *Board) NextShip() (index int, spec ShipSpec, ok bool) {
	index = len(b.placements)
	if index >= len(b.fleet) {
		return index, ShipSpec{}, false
	}
	return index, b.fleet[index], true
}

func (b *Board) FleetComplete() bool {
	return len(b.placements) == len(b.fleet)
}

func (b *Board) Placements() [][]Coordinates {
	out := make([][]Coordinates, len(b.placements))
	for i, run := range b.placements {
		out[i] = append([]Coordinates(nil), run...)
	}
	return out
}

// ShipAt returns the fleet index of the ship covering c.
func (b *Board) ShipAt(c Coordinates) (int, bool) {
	for i, run := range b.placements {
		for _, cell := range run {
			if cell == c {
				return i, true
			}
		}
	}
	return -1, false
}

func (b *Board) ShipSunk(shipIndex int) bool {
	if shipIndex < 0 || shipIndex >= len(b.placements) {
		return false
	}

	for _, c := range b.placements[shipIndex] {
		if b.grid.At(c) != CellHit {
			return false
		}
	}
	return true
}

func (b *Board) occupied(c Coordinates) bool {
	state := b.grid.At(c)
	return state == CellShip || state == CellHit
}

// lineBetween returns the cells from start to end, or nil when
// they do not share a row or a column.
func lineBetween(start, end Coordinates) []Coordinates {
	switch {
	case start.Row == end.Row:
		lo, hi := minMax(start.Col, end.Col)
		run := make([]Coordinates, 0, hi-lo+1)
		for col := lo; col <= hi; col++ {
			run = append(run, NewCoordinates(start.Row, col))
		}
		return run

	case start.Col == end.Col:
		lo, hi := minMax(start.Row, end.Row)
		run := make([]Coordinates, 0, hi-lo+1)
		for row := lo; row <= hi; row++ {
			run = append(run, NewCoordinates(row, start.Col))
		}
		return run

	default:
		return nil
	}
}

// neighbours returns the in-bounds 8-neighbourhood of c.
func neighbours(c Coordinates) []Coordinates {
	out := make([]Coordinates, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := NewCoordinates(c.Row+dr, c.Col+dc)
			if n.InBounds() {
				out = append(out, n)
			}
		}
	}
	return out
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
