package battleship

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCreateAndGetGame(t *testing.T) {
	bgm := NewBattleshipGameManager()

	game := bgm.CreateGame()
	if len(game.Uuid()) != gameUuidLen {
		t.Fatalf("expected game uuid of length %d, got %q", gameUuidLen, game.Uuid())
	}

	found, err := bgm.GetGame(game.Uuid())
	if err != nil {
		t.Fatal(err)
	}
	if found != game {
		t.Fatal("GetGame returned a different game")
	}

	bgm.TerminateGame(game.Uuid())
	if _, err := bgm.GetGame(game.Uuid()); err == nil {
		t.Fatal("expected terminated game to be gone")
	}
}

func TestGameSeats(t *testing.T) {
	bgm := NewBattleshipGameManager()
	game := bgm.CreateGame()

	host, err := game.AddPlayer(SideHost, "alice", "session-a")
	if err != nil {
		t.Fatal(err)
	}
	if !host.IsHost() || host.Name() != "alice" {
		t.Fatalf("unexpected host player: %+v", host)
	}
	if _, err := game.AddPlayer(SideHost, "mallory", "session-m"); err == nil {
		t.Fatal("expected host side to be taken")
	}

	if _, err := game.AddJoinPlayer("bob", "session-b"); err != nil {
		t.Fatal(err)
	}
	if _, err := game.AddJoinPlayer("carol", "session-c"); err == nil {
		t.Fatal("expected game to be full")
	}
	if !game.IsFull() {
		t.Fatal("expected game to be full")
	}

	if _, err := game.BindSession("bob", "session-b2"); err != nil {
		t.Fatal(err)
	}
	if game.SessionID(SideJoin) != "session-b2" {
		t.Fatalf("expected join session: %s\tgot: %s", "session-b2", game.SessionID(SideJoin))
	}
	if _, err := game.BindSession("carol", "session-c"); err == nil {
		t.Fatal("expected unknown player to be rejected")
	}
}

func TestGameFireAtReportsSunkShip(t *testing.T) {
	bgm := NewBattleshipGameManager(WithFleet([]ShipSpec{
		{Name: "Cruiser", Length: 2},
		{Name: "Dinghy", Length: 1},
	}))
	game := bgm.CreateGame()

	placements := map[Side][][2]Coordinates{
		SideHost: {{{0, 0}, {0, 1}}, {{5, 5}, {5, 5}}},
		SideJoin: {{{9, 8}, {9, 9}}, {{3, 3}, {3, 3}}},
	}
	for _, side := range Sides {
		for i, run := range placements[side] {
			if _, err := game.PlaceShip(side, i, run[0], run[1]); err != nil {
				t.Fatal(err)
			}
		}
		if _, _, err := game.SetReady(side); err != nil {
			t.Fatal(err)
		}
	}

	result, err := game.FireAt(SideHost, NewCoordinates(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Sunk) != 1 || result.Turn != SideJoin || result.Seq != 0 {
		t.Fatalf("unexpected shot result: %+v", result)
	}
	if result.DefenderRemainingShipCells != 2 || result.Finished {
		t.Fatalf("unexpected shot result: %+v", result)
	}

	if _, err := game.FireAt(SideHost, NewCoordinates(9, 9)); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("expected out of turn, got: %v", err)
	}
	_, _ = game.FireAt(SideJoin, NewCoordinates(9, 9))
	_, _ = game.FireAt(SideHost, NewCoordinates(9, 9))
	_, _ = game.FireAt(SideJoin, NewCoordinates(9, 8))

	result, err = game.FireAt(SideHost, NewCoordinates(9, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Finished || result.Winner == nil || *result.Winner != SideHost {
		t.Fatalf("expected host to win, got: %+v", result)
	}
}

func TestGameSerializesConcurrentShots(t *testing.T) {
	bgm := NewBattleshipGameManager()
	game := bgm.CreateGame()
	for i, run := range standardRuns {
		_, _ = game.PlaceShip(SideHost, i, run[0], run[1])
	}
	for i, run := range joinRuns {
		_, _ = game.PlaceShip(SideJoin, i, run[0], run[1])
	}
	_, _, _ = game.SetReady(SideHost)
	_, _, _ = game.SetReady(SideJoin)

	// both sides race for the same turn; exactly one shot may land
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, side := range Sides {
		wg.Add(1)
		go func(side Side) {
			defer wg.Done()
			_, err := game.FireAt(side, NewCoordinates(9, 0))
			errs <- err
		}(side)
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted shot, got %d", accepted)
	}
}

func TestAddGameKeepsExisting(t *testing.T) {
	bgm := NewBattleshipGameManager()
	game := bgm.CreateGame()

	same := bgm.AddGame(game.Uuid(), NewStandardMatch(SideJoin))
	if same != game {
		t.Fatal("AddGame replaced an in-memory game")
	}

	restored := bgm.AddGame("abc123", NewStandardMatch(SideHost))
	if found, err := bgm.GetGame("abc123"); err != nil || found != restored {
		t.Fatalf("restored game not registered: %v", err)
	}
}

func TestCleanupRemovesFinishedGames(t *testing.T) {
	bgm := NewBattleshipGameManager(WithFleet([]ShipSpec{{Name: "Dinghy", Length: 1}}))
	game := bgm.CreateGame()
	open := bgm.CreateGame()

	_, _ = game.PlaceShip(SideHost, 0, NewCoordinates(0, 0), NewCoordinates(0, 0))
	_, _ = game.PlaceShip(SideJoin, 0, NewCoordinates(1, 1), NewCoordinates(1, 1))
	_, _, _ = game.SetReady(SideHost)
	_, _, _ = game.SetReady(SideJoin)
	_, _ = game.FireAt(SideHost, NewCoordinates(1, 1))

	bgm.cleanup()

	if _, err := bgm.GetGame(game.Uuid()); err == nil {
		t.Fatal("finished game survived cleanup")
	}
	if _, err := bgm.GetGame(open.Uuid()); err != nil {
		t.Fatal("open game removed by cleanup")
	}
}

func TestCleanupKeepsActiveGames(t *testing.T) {
	bgm := NewBattleshipGameManager(
		WithFleet([]ShipSpec{{Name: "Cruiser", Length: 2}}),
		WithGameCleanupInterval(50*time.Millisecond),
	)
	game := bgm.CreateGame()
	idle := bgm.CreateGame()

	_, _ = game.PlaceShip(SideHost, 0, NewCoordinates(0, 0), NewCoordinates(0, 1))
	_, _ = game.PlaceShip(SideJoin, 0, NewCoordinates(5, 5), NewCoordinates(5, 6))
	_, _, _ = game.SetReady(SideHost)
	_, _, _ = game.SetReady(SideJoin)

	// the game is older than the interval but was just played
	time.Sleep(30 * time.Millisecond)
	if _, err := game.FireAt(SideHost, NewCoordinates(9, 9)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	bgm.cleanup()

	if _, err := bgm.GetGame(game.Uuid()); err != nil {
		t.Fatalf("active game in phase %s was dropped by cleanup: %v", game.Phase(), err)
	}
	if _, err := bgm.GetGame(idle.Uuid()); err == nil {
		t.Fatal("idle game survived cleanup")
	}
}

func TestSetReadyReturnsBoardBeforeShots(t *testing.T) {
	bgm := NewBattleshipGameManager(WithFleet([]ShipSpec{{Name: "Cruiser", Length: 2}}))
	game := bgm.CreateGame()

	_, _ = game.PlaceShip(SideHost, 0, NewCoordinates(0, 0), NewCoordinates(0, 1))
	_, _ = game.PlaceShip(SideJoin, 0, NewCoordinates(5, 5), NewCoordinates(5, 6))

	phase, hostBoard, err := game.SetReady(SideHost)
	if err != nil || phase != PhaseAwaitingOpponentReady {
		t.Fatalf("unexpected ready result: %s %v", phase, err)
	}
	phase, _, err = game.SetReady(SideJoin)
	if err != nil || phase != PhaseActive {
		t.Fatalf("unexpected ready result: %s %v", phase, err)
	}

	if _, err := game.FireAt(SideHost, NewCoordinates(5, 5)); err != nil {
		t.Fatal(err)
	}
	if _, err := game.FireAt(SideJoin, NewCoordinates(0, 0)); err != nil {
		t.Fatal(err)
	}

	if hostBoard.Count(CellHit) != 0 || hostBoard.Count(CellShip) != 2 {
		t.Fatalf("board captured at ready changed after a shot:\n%s", hostBoard)
	}
	live := game.Board(SideHost)
	if live.Count(CellHit) != 1 {
		t.Fatal("expected the live board to record the hit")
	}
}

func TestOpponentSessionID(t *testing.T) {
	bgm := NewBattleshipGameManager()
	game := bgm.CreateGame()
	_, _ = game.AddPlayer(SideHost, "alice", "session-a")

	if _, ok := bgm.OpponentSessionID(game.Uuid(), SideHost); ok {
		t.Fatal("expected no opponent before the join side is seated")
	}

	_, _ = game.AddJoinPlayer("bob", "session-b")
	if id, ok := bgm.OpponentSessionID(game.Uuid(), SideHost); !ok || id != "session-b" {
		t.Fatalf("expected session-b, got %q (%v)", id, ok)
	}
	if id, ok := bgm.OpponentSessionID(game.Uuid(), SideJoin); !ok || id != "session-a" {
		t.Fatalf("expected session-a, got %q (%v)", id, ok)
	}
	if _, ok := bgm.OpponentSessionID("nope", SideHost); ok {
		t.Fatal("expected no opponent for an unknown game")
	}
}
