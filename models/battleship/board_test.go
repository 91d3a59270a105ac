package battleship

import (
	"errors"
	"testing"
)

// standardRuns places the standard fleet spread over rows 0 to 8.
var standardRuns = [][2]Coordinates{
	{{0, 0}, {0, 3}},
	{{2, 0}, {2, 2}},
	{{4, 0}, {4, 1}},
	{{6, 0}, {6, 1}},
	{{8, 0}, {8, 0}},
	{{8, 5}, {8, 5}},
}

func placeRuns(t *testing.T, b *Board, runs [][2]Coordinates) {
	t.Helper()
	for i, run := range runs {
		if err := b.PlaceShip(i, run[0], run[1]); err != nil {
			t.Fatalf("placing ship %d: %v", i, err)
		}
	}
}

func TestNewBoardPanicsOnMalformedFleet(t *testing.T) {
	tests := []struct {
		name  string
		fleet []ShipSpec
	}{
		{name: "empty fleet", fleet: nil},
		{name: "zero length", fleet: []ShipSpec{{Name: "Ghost", Length: 0}}},
		{name: "longer than board", fleet: []ShipSpec{{Name: "Ark", Length: GridSize + 1}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected NewBoard to panic")
				}
			}()
			NewBoard(test.fleet)
		})
	}
}

func TestPlaceStandardFleet(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)

	if !b.FleetComplete() {
		t.Fatal("expected fleet to be complete")
	}
	if got := b.RemainingShipCells(); got != 13 {
		t.Fatalf("expected remaining ship cells: %d\tgot: %d", 13, got)
	}

	err := b.PlaceShip(6, NewCoordinates(9, 9), NewCoordinates(9, 9))
	if !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected wrong phase rejection for seventh ship, got: %v", err)
	}
}

func TestPlaceShipMarksExactlyTheRun(t *testing.T) {
	b := NewBoard([]ShipSpec{{Name: "Carrier", Length: 4}})
	// endpoints given in reverse order
	if err := b.PlaceShip(0, NewCoordinates(7, 5), NewCoordinates(4, 5)); err != nil {
		t.Fatal(err)
	}

	grid := b.Grid()
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			want := CellWater
			if col == 5 && row >= 4 && row <= 7 {
				want = CellShip
			}
			if grid[row][col] != want {
				t.Errorf("cell (%d,%d): expected %s got %s", row, col, want, grid[row][col])
			}
		}
	}

	placements := b.Placements()
	if len(placements) != 1 || placements[0][0] != NewCoordinates(4, 5) || placements[0][3] != NewCoordinates(7, 5) {
		t.Fatalf("unexpected placements: %v", placements)
	}
}

func TestPlaceShipRejections(t *testing.T) {
	fleet := []ShipSpec{
		{Name: "Battleship", Length: 3},
		{Name: "Cruiser", Length: 2},
	}

	tests := []struct {
		name       string
		shipIndex  int
		start, end Coordinates
		reason     Reason
	}{
		{name: "diagonal", shipIndex: 1, start: NewCoordinates(5, 5), end: NewCoordinates(6, 6), reason: ReasonInvalidPlacement},
		{name: "wrong length", shipIndex: 1, start: NewCoordinates(5, 5), end: NewCoordinates(5, 7), reason: ReasonInvalidPlacement},
		{name: "out of bounds", shipIndex: 1, start: NewCoordinates(9, 9), end: NewCoordinates(9, 10), reason: ReasonInvalidPlacement},
		{name: "negative coordinates", shipIndex: 1, start: NewCoordinates(-1, 0), end: NewCoordinates(0, 0), reason: ReasonInvalidPlacement},
		{name: "overlapping", shipIndex: 1, start: NewCoordinates(0, 1), end: NewCoordinates(1, 1), reason: ReasonInvalidPlacement},
		{name: "adjacent side", shipIndex: 1, start: NewCoordinates(1, 0), end: NewCoordinates(1, 1), reason: ReasonInvalidPlacement},
		{name: "adjacent diagonal", shipIndex: 1, start: NewCoordinates(1, 3), end: NewCoordinates(2, 3), reason: ReasonInvalidPlacement},
		{name: "adjacent end", shipIndex: 1, start: NewCoordinates(0, 3), end: NewCoordinates(0, 4), reason: ReasonInvalidPlacement},
		{name: "out of order", shipIndex: 0, start: NewCoordinates(5, 5), end: NewCoordinates(5, 6), reason: ReasonInvalidPlacement},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := NewBoard(fleet)
			if err := b.PlaceShip(0, NewCoordinates(0, 0), NewCoordinates(0, 2)); err != nil {
				t.Fatal(err)
			}
			before := b.Grid()

			err := b.PlaceShip(test.shipIndex, test.start, test.end)
			reason, ok := RejectionReason(err)
			if !ok || reason != test.reason {
				t.Fatalf("expected reason: %s\tgot: %v", test.reason, err)
			}
			if b.Grid() != before {
				t.Fatal("rejected placement mutated the board")
			}
			if index, _, _ := b.NextShip(); index != 1 {
				t.Fatalf("expected next ship index: %d\tgot: %d", 1, index)
			}
		})
	}
}

func TestPlaceShipAllowsGapOfOneCell(t *testing.T) {
	b := NewBoard([]ShipSpec{{Name: "A", Length: 2}, {Name: "B", Length: 2}})
	placeRuns(t, b, [][2]Coordinates{
		{{0, 0}, {0, 1}},
		{{2, 0}, {2, 1}},
	})
}

func TestResolveShot(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)

	outcome, err := b.ResolveShot(NewCoordinates(0, 0))
	if err != nil || outcome != OutcomeHit {
		t.Fatalf("expected hit, got %s (%v)", outcome, err)
	}
	outcome, err = b.ResolveShot(NewCoordinates(9, 9))
	if err != nil || outcome != OutcomeMiss {
		t.Fatalf("expected miss, got %s (%v)", outcome, err)
	}

	grid := b.Grid()
	if grid[0][0] != CellHit || grid[9][9] != CellMiss {
		t.Fatalf("unexpected cells after shots: %s %s", grid[0][0], grid[9][9])
	}
	if got := b.RemainingShipCells(); got != 12 {
		t.Fatalf("expected remaining ship cells: %d\tgot: %d", 12, got)
	}

	for _, target := range []Coordinates{{0, 0}, {9, 9}} {
		_, err := b.ResolveShot(target)
		if !errors.Is(err, ErrAlreadyTargeted) {
			t.Fatalf("expected already targeted for %v, got: %v", target, err)
		}
	}
	if b.Grid() != grid {
		t.Fatal("already targeted shot mutated the board")
	}

	if _, err := b.ResolveShot(NewCoordinates(10, 0)); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected invalid target, got: %v", err)
	}
}

func TestOpponentViewHidesShips(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)
	_, _ = b.ResolveShot(NewCoordinates(0, 1))
	_, _ = b.ResolveShot(NewCoordinates(5, 5))

	view := b.OpponentView()
	if view.Count(CellShip) != 0 {
		t.Fatal("opponent view exposes ship cells")
	}
	if view[0][1] != CellHit || view[5][5] != CellMiss || view[0][0] != CellWater {
		t.Fatalf("unexpected opponent view:\n%s", view)
	}
}

func TestShipSunk(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)

	index, ok := b.ShipAt(NewCoordinates(4, 1))
	if !ok || index != 2 {
		t.Fatalf("expected ship 2 at (4,1), got %d %v", index, ok)
	}

	_, _ = b.ResolveShot(NewCoordinates(4, 0))
	if b.ShipSunk(2) {
		t.Fatal("ship reported sunk after one hit")
	}
	_, _ = b.ResolveShot(NewCoordinates(4, 1))
	if !b.ShipSunk(2) {
		t.Fatal("ship not reported sunk after all hits")
	}
}
