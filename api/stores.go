package api

import (
	"context"
	"log"

	"github.com/saeidalz13/battleship-duel/db/sqlc"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	"github.com/saeidalz13/battleship-duel/models/lobby"
	"github.com/sqlc-dev/pqtype"
)

// GameStore persists games so they survive a server restart.
type GameStore interface {
	CreateGame(ctx context.Context, gameUuid, hostName string, firstTurn mb.Side) error
	SetJoinPlayer(ctx context.Context, gameUuid, joinName string) error
	SaveBoard(ctx context.Context, gameUuid string, side mb.Side, rows []string, phase mb.Phase) error
	SaveMove(ctx context.Context, gameUuid string, result mb.ShotResult) error
	LoadGame(ctx context.Context, gameUuid string) (sqlc.StoredGame, error)
}

type LobbyStore interface {
	SavePlayer(ctx context.Context, player lobby.Player) error
	SavePlayerStatus(ctx context.Context, name, status string) error
	SaveChallenge(ctx context.Context, challenge lobby.Challenge) error
	SaveChallengeStatus(ctx context.Context, challenge lobby.Challenge) error
}

type AnalyticsStore interface {
	IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error
	IncrementChallengesSentCount(ctx context.Context, serverIpNet pqtype.Inet) error
}

var (
	_ GameStore      = (*sqlc.GamesManager)(nil)
	_ LobbyStore     = (*sqlc.LobbyManager)(nil)
	_ AnalyticsStore = (*sqlc.AnalyticsManager)(nil)
)

// persist runs a store call with the querier timeout. Store failures are
// logged only; the in-memory game stays authoritative.
func persist(op string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		log.Printf("%s failed: %v\n", op, err)
	}
}
