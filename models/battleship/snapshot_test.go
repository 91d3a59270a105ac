package battleship

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGridRowsRoundTrip(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)
	_, _ = b.ResolveShot(NewCoordinates(0, 0))
	_, _ = b.ResolveShot(NewCoordinates(9, 9))

	rows := b.Grid().Rows()
	if len(rows) != GridSize {
		t.Fatalf("expected %d rows, got %d", GridSize, len(rows))
	}
	if rows[0] != "HSSSWWWWWW" {
		t.Fatalf("unexpected first row: %s", rows[0])
	}
	if rows[8] != "SWWWWSWWWW" {
		t.Fatalf("unexpected row 8: %s", rows[8])
	}
	if rows[9] != "WWWWWWWWWM" {
		t.Fatalf("unexpected last row: %s", rows[9])
	}

	parsed, err := ParseGrid(rows)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != b.Grid() {
		t.Fatal("parsed grid differs from the original")
	}
}

func TestParseGridErrors(t *testing.T) {
	valid := NewStandardBoard().Grid().Rows()

	tests := []struct {
		name string
		rows []string
	}{
		{name: "too few rows", rows: valid[:9]},
		{name: "short row", rows: append(append([]string{}, valid[:9]...), "WWW")},
		{name: "unknown token", rows: append(append([]string{}, valid[:9]...), "WWWWWWWWWX")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseGrid(test.rows); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestMoveRecordJSON(t *testing.T) {
	move := MoveRecord{Side: SideJoin, Row: 3, Col: 7, Outcome: OutcomeHit}

	raw, err := json.Marshal(move)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"side":"join","row":3,"col":7,"outcome":"H"}` {
		t.Fatalf("unexpected move json: %s", raw)
	}

	var decoded MoveRecord
	if err := json.Unmarshal([]byte(`{"side":"host","row":0,"col":1,"outcome":"M"}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != (MoveRecord{Side: SideHost, Row: 0, Col: 1, Outcome: OutcomeMiss}) {
		t.Fatalf("unexpected decoded move: %+v", decoded)
	}
}

func TestRestoreBoard(t *testing.T) {
	b := NewStandardBoard()
	placeRuns(t, b, standardRuns)

	restored, err := RestoreBoard(StandardFleet, b.Grid())
	if err != nil {
		t.Fatal(err)
	}
	if !restored.FleetComplete() {
		t.Fatal("restored board fleet is not complete")
	}

	want, got := b.Placements(), restored.Placements()
	for i := range want {
		if len(want[i]) != len(got[i]) || want[i][0] != got[i][0] {
			t.Fatalf("ship %d restored at %v, placed at %v", i, got[i], want[i])
		}
	}
}

func TestRestoreBoardRejectsInvalidGrids(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{
			name: "touching ships",
			rows: []string{
				"SSSSWWWWWW",
				"WWWWSWWWWW",
				"SSSWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SWWWWWWWWW",
				"WWWWWWWWWW",
			},
		},
		{
			name: "missing ship",
			rows: []string{
				"SSSSWWWWWW",
				"WWWWWWWWWW",
				"SSSWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SWWWWWWWWW",
				"WWWWWWWWWW",
			},
		},
		{
			name: "wrong lengths",
			rows: []string{
				"SSSSSWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SSWWWWWWWW",
				"WWWWWWWWWW",
				"SWWWWSWWWW",
				"WWWWWWWWWW",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid, err := ParseGrid(test.rows)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := RestoreBoard(StandardFleet, grid); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestRestoreMatchReplaysMoves(t *testing.T) {
	m := newActiveMatch(t)
	shots := []struct {
		side   Side
		target Coordinates
	}{
		{SideHost, NewCoordinates(1, 9)},
		{SideJoin, NewCoordinates(9, 9)},
		{SideHost, NewCoordinates(5, 5)},
		{SideJoin, NewCoordinates(0, 0)},
	}
	for _, shot := range shots {
		if _, err := m.FireAt(shot.side, shot.target); err != nil {
			t.Fatal(err)
		}
	}

	snap := m.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded MatchSnapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}

	restored, err := RestoreMatch(StandardFleet, decoded)
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range Sides {
		if restored.Board(side).Grid() != m.Board(side).Grid() {
			t.Fatalf("%s board differs after restore", side)
		}
	}
	if restored.Turn() != m.Turn() || restored.Phase() != m.Phase() {
		t.Fatalf("restored turn %s phase %s, want %s %s", restored.Turn(), restored.Phase(), m.Turn(), m.Phase())
	}
	if len(restored.Moves()) != len(shots) {
		t.Fatalf("expected %d moves, got %d", len(shots), len(restored.Moves()))
	}
}

func TestRestoreMatchWithOneReadySide(t *testing.T) {
	m := NewStandardMatch(SideHost)
	placeMatchRuns(t, m, SideHost, standardRuns)
	_, _ = m.SetReady(SideHost)

	restored, err := RestoreMatch(StandardFleet, m.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if restored.SidePhase(SideHost) != PhaseAwaitingOpponentReady || restored.SidePhase(SideJoin) != PhasePlacement {
		t.Fatalf("unexpected phases after restore: %s %s", restored.SidePhase(SideHost), restored.SidePhase(SideJoin))
	}
}

func TestRestoreMatchRejectsTamperedLog(t *testing.T) {
	m := newActiveMatch(t)
	_, _ = m.FireAt(SideHost, NewCoordinates(1, 9))

	snap := m.Snapshot()
	snap.Moves[0].Outcome = OutcomeMiss
	if _, err := RestoreMatch(StandardFleet, snap); err == nil {
		t.Fatal("expected an error for a wrong outcome")
	}

	snap = m.Snapshot()
	snap.Moves = append(snap.Moves, MoveRecord{Side: SideHost, Row: 0, Col: 0, Outcome: OutcomeMiss})
	_, err := RestoreMatch(StandardFleet, snap)
	if err == nil || !strings.Contains(err.Error(), "out_of_turn") {
		t.Fatalf("expected out of turn replay error, got: %v", err)
	}

	snap = m.Snapshot()
	snap.Moves = nil
	if _, err := RestoreMatch(StandardFleet, snap); err == nil {
		t.Fatal("expected an error for a board that disagrees with its moves")
	}
}

func TestGridString(t *testing.T) {
	b := NewBoard([]ShipSpec{{Name: "Dinghy", Length: 1}})
	_ = b.PlaceShip(0, NewCoordinates(0, 0), NewCoordinates(0, 0))

	out := b.Grid().String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != GridSize+1 {
		t.Fatalf("expected %d lines, got %d", GridSize+1, len(lines))
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "0") || !strings.Contains(lines[1], "S") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}

func TestRestoreMatchFromBoardsStoredAtReady(t *testing.T) {
	m := newActiveMatch(t)
	snap := m.Snapshot()

	if _, err := m.FireAt(SideHost, NewCoordinates(1, 9)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.FireAt(SideJoin, NewCoordinates(9, 9)); err != nil {
		t.Fatal(err)
	}
	snap.Moves = m.Moves()

	restored, err := RestoreMatch(StandardFleet, snap)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Turn() != SideHost {
		t.Fatalf("expected host to move next, got %s", restored.Turn())
	}
	if restored.Board(SideJoin).Grid() != m.Board(SideJoin).Grid() {
		t.Fatal("restored join board differs from the live one")
	}
}
