package sqlc

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saeidalz13/battleship-duel/models/battleship"
)

// StoredGame is a persisted game in the shape the rules engine can
// restore from.
type StoredGame struct {
	Uuid     string
	HostName string
	JoinName string
	Snapshot battleship.MatchSnapshot
}

type GamesManager struct {
	db      *sql.DB
	queries *Queries
}

func NewGamesManager(db *sql.DB) *GamesManager {
	return &GamesManager{db: db, queries: New(db)}
}

func (gm *GamesManager) execTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := gm.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(gm.queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (gm *GamesManager) CreateGame(ctx context.Context, gameUuid, hostName string, firstTurn battleship.Side) error {
	return gm.queries.InsertGame(ctx, InsertGameParams{
		ID:        gameUuid,
		HostName:  hostName,
		FirstTurn: firstTurn.String(),
	})
}

func (gm *GamesManager) SetJoinPlayer(ctx context.Context, gameUuid, joinName string) error {
	return gm.queries.UpdateGameJoinName(ctx, UpdateGameJoinNameParams{
		ID:       gameUuid,
		JoinName: joinName,
	})
}

// SaveBoard records the board of a side that just became ready.
func (gm *GamesManager) SaveBoard(ctx context.Context, gameUuid string, side battleship.Side, rows []string, phase battleship.Phase) error {
	arg := UpdateBoardParams{
		ID:     gameUuid,
		Board:  rows,
		Status: phase.String(),
	}
	if side == battleship.SideHost {
		return gm.queries.UpdateHostBoard(ctx, arg)
	}
	return gm.queries.UpdateJoinBoard(ctx, arg)
}

// SaveMove appends the move and the resulting turn in one transaction.
func (gm *GamesManager) SaveMove(ctx context.Context, gameUuid string, result battleship.ShotResult) error {
	return gm.execTx(ctx, func(q *Queries) error {
		err := q.InsertMove(ctx, InsertMoveParams{
			GameID:  gameUuid,
			Seq:     int32(result.Seq),
			Side:    result.Move.Side.String(),
			RowIdx:  int16(result.Move.Row),
			ColIdx:  int16(result.Move.Col),
			Outcome: string(result.Move.Outcome.Token()),
		})
		if err != nil {
			return err
		}

		status := battleship.PhaseActive
		var winner sql.NullString
		if result.Winner != nil {
			status = battleship.PhaseFinished
			winner = sql.NullString{String: result.Winner.String(), Valid: true}
		}
		return q.UpdateGameTurn(ctx, UpdateGameTurnParams{
			ID:     gameUuid,
			Turn:   result.Turn.String(),
			Winner: winner,
			Status: status.String(),
		})
	})
}

func (gm *GamesManager) LoadGame(ctx context.Context, gameUuid string) (StoredGame, error) {
	game, err := gm.queries.GetGame(ctx, gameUuid)
	if err != nil {
		return StoredGame{}, err
	}
	moves, err := gm.queries.ListMovesByGame(ctx, gameUuid)
	if err != nil {
		return StoredGame{}, err
	}

	firstTurn, err := battleship.ParseSide(game.FirstTurn)
	if err != nil {
		return StoredGame{}, err
	}

	snap := battleship.MatchSnapshot{
		FirstTurn: firstTurn,
		HostReady: game.HostReady,
		JoinReady: game.JoinReady,
		HostBoard: game.HostBoard,
		JoinBoard: game.JoinBoard,
		Moves:     make([]battleship.MoveRecord, 0, len(moves)),
	}
	for i, m := range moves {
		if int(m.Seq) != i {
			return StoredGame{}, fmt.Errorf("game %s: move log has a gap at seq %d", gameUuid, i)
		}
		side, err := battleship.ParseSide(m.Side)
		if err != nil {
			return StoredGame{}, err
		}
		var outcome battleship.ShotOutcome
		if err := outcome.UnmarshalText([]byte(m.Outcome)); err != nil {
			return StoredGame{}, err
		}
		snap.Moves = append(snap.Moves, battleship.MoveRecord{
			Side:    side,
			Row:     int(m.RowIdx),
			Col:     int(m.ColIdx),
			Outcome: outcome,
		})
	}

	return StoredGame{
		Uuid:     game.ID,
		HostName: game.HostName,
		JoinName: game.JoinName,
		Snapshot: snap,
	}, nil
}
