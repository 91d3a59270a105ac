package sqlc

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/saeidalz13/battleship-duel/models/lobby"
)

type LobbyManager struct {
	queries Querier
}

func NewLobbyManager(queries Querier) *LobbyManager {
	return &LobbyManager{queries: queries}
}

func (lm *LobbyManager) SavePlayer(ctx context.Context, player lobby.Player) error {
	id, err := uuid.Parse(player.ID)
	if err != nil {
		return err
	}
	_, err = lm.queries.UpsertPlayer(ctx, UpsertPlayerParams{
		ID:     id,
		Name:   player.Name,
		Status: player.Status,
	})
	return err
}

func (lm *LobbyManager) SavePlayerStatus(ctx context.Context, name, status string) error {
	return lm.queries.UpdatePlayerStatus(ctx, UpdatePlayerStatusParams{
		Name:   name,
		Status: status,
	})
}

func (lm *LobbyManager) SaveChallenge(ctx context.Context, challenge lobby.Challenge) error {
	id, err := uuid.Parse(challenge.ID)
	if err != nil {
		return err
	}
	return lm.queries.InsertChallenge(ctx, InsertChallengeParams{
		ID:         id,
		FromPlayer: challenge.FromPlayer,
		ToPlayer:   challenge.ToPlayer,
		Status:     challenge.Status,
	})
}

func (lm *LobbyManager) SaveChallengeStatus(ctx context.Context, challenge lobby.Challenge) error {
	id, err := uuid.Parse(challenge.ID)
	if err != nil {
		return err
	}
	return lm.queries.UpdateChallengeStatus(ctx, UpdateChallengeStatusParams{
		ID:     id,
		Status: challenge.Status,
		GameID: sql.NullString{String: challenge.GameUuid, Valid: challenge.GameUuid != ""},
	})
}
