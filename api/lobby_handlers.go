package api

import (
	"context"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/lobby"
)

// Registering a name is required before challenging other players. A
// known name is taken over by the registering session.
func (rp *RequestProcessor) handleRegisterPlayer(session *mc.Session, payload []byte) error {
	req, err := mc.DecodePayload[mc.ReqRegisterPlayer](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeRegisterPlayer, cerr.ErrInvalidPayload(err)))
	}

	player, existed, err := rp.lobby.CheckAndAddPlayer(req.Name, session.Id())
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeRegisterPlayer, err))
	}
	if previous := session.PlayerName(); previous != "" && previous != player.Name {
		rp.lobby.Disconnect(previous, session.Id())
	}
	session.SetPlayerName(player.Name)

	if rp.players != nil {
		persist("save player", func(ctx context.Context) error {
			return rp.players.SavePlayer(ctx, player)
		})
	}

	resp := mc.NewMessage[mc.RespRegisterPlayer](mc.CodeRegisterPlayer)
	resp.AddPayload(mc.RespRegisterPlayer{
		Player:            player,
		Existed:           existed,
		PendingChallenges: rp.lobby.PendingFor(player.Name),
	})
	return rp.write(session, resp)
}

func (rp *RequestProcessor) handleListPlayers(session *mc.Session) error {
	resp := mc.NewMessage[mc.RespListPlayers](mc.CodeListPlayers)
	resp.AddPayload(mc.RespListPlayers{Players: rp.lobby.ListPlayers(session.PlayerName())})
	return rp.write(session, resp)
}

func (rp *RequestProcessor) handleSendChallenge(session *mc.Session, payload []byte) error {
	name := session.PlayerName()
	if name == "" {
		return rp.write(session, errorMessage(mc.CodeSendChallenge, cerr.ErrSessionNotRegistered()))
	}

	req, err := mc.DecodePayload[mc.ReqSendChallenge](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeSendChallenge, cerr.ErrInvalidPayload(err)))
	}

	challenge, err := rp.lobby.SendChallenge(name, req.To)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeSendChallenge, err))
	}

	if rp.players != nil {
		persist("save challenge", func(ctx context.Context) error {
			return rp.players.SaveChallenge(ctx, challenge)
		})
	}
	if rp.analytics != nil {
		persist("increment challenges sent", func(ctx context.Context) error {
			return rp.analytics.IncrementChallengesSentCount(ctx, rp.serverInet())
		})
	}

	resp := mc.NewMessage[mc.RespChallenge](mc.CodeSendChallenge)
	resp.AddPayload(mc.RespChallenge{Challenge: challenge})
	if err := rp.write(session, resp); err != nil {
		return err
	}

	if receiver, ok := rp.lobby.SessionOf(challenge.ToPlayer); ok {
		incoming := mc.NewMessage[mc.RespChallenge](mc.CodeIncomingChallenge)
		incoming.AddPayload(mc.RespChallenge{Challenge: challenge})
		rp.notify(receiver, incoming)
	}
	return nil
}

// Accepting a challenge creates the game. The challenger hosts it and
// moves first.
func (rp *RequestProcessor) handleAcceptChallenge(session *mc.Session, payload []byte) error {
	name := session.PlayerName()
	if name == "" {
		return rp.write(session, errorMessage(mc.CodeAcceptChallenge, cerr.ErrSessionNotRegistered()))
	}

	req, err := mc.DecodePayload[mc.ReqChallenge](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeAcceptChallenge, cerr.ErrInvalidPayload(err)))
	}

	pending, err := rp.lobby.FindChallenge(req.ChallengeID)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeAcceptChallenge, err))
	}
	hostSessionId, ok := rp.lobby.SessionOf(pending.FromPlayer)
	if !ok {
		return rp.write(session, errorMessage(mc.CodeAcceptChallenge, cerr.ErrPlayerNotOnline(pending.FromPlayer)))
	}

	var game *mb.Game
	challenge, err := rp.lobby.Accept(req.ChallengeID, name, func(c lobby.Challenge) (string, error) {
		game = rp.gameManager.CreateGame()
		if _, err := game.AddPlayer(mb.SideHost, c.FromPlayer, hostSessionId); err != nil {
			rp.gameManager.TerminateGame(game.Uuid())
			return "", err
		}
		if _, err := game.AddPlayer(mb.SideJoin, c.ToPlayer, session.Id()); err != nil {
			rp.gameManager.TerminateGame(game.Uuid())
			return "", err
		}
		return game.Uuid(), nil
	})
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeAcceptChallenge, err))
	}

	session.SetGame(game.Uuid(), mb.SideJoin)
	if hostSession, err := rp.sessionManager.FindSession(hostSessionId); err == nil {
		hostSession.SetGame(game.Uuid(), mb.SideHost)
	}

	rp.persistNewGame(game, challenge.FromPlayer, challenge.ToPlayer)
	if rp.players != nil {
		persist("save challenge status", func(ctx context.Context) error {
			return rp.players.SaveChallengeStatus(ctx, challenge)
		})
		for _, player := range []string{challenge.FromPlayer, challenge.ToPlayer} {
			persist("save player status", func(ctx context.Context) error {
				return rp.players.SavePlayerStatus(ctx, player, lobby.StatusInGame)
			})
		}
	}

	resp := mc.NewMessage[mc.RespChallenge](mc.CodeAcceptChallenge)
	resp.AddPayload(mc.RespChallenge{Challenge: challenge})
	if err := rp.write(session, resp); err != nil {
		return err
	}

	rp.startPlacement(game)
	return nil
}

func (rp *RequestProcessor) handleDeclineChallenge(session *mc.Session, payload []byte) error {
	name := session.PlayerName()
	if name == "" {
		return rp.write(session, errorMessage(mc.CodeDeclineChallenge, cerr.ErrSessionNotRegistered()))
	}

	req, err := mc.DecodePayload[mc.ReqChallenge](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeDeclineChallenge, cerr.ErrInvalidPayload(err)))
	}

	challenge, err := rp.lobby.Decline(req.ChallengeID, name)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeDeclineChallenge, err))
	}

	if rp.players != nil {
		persist("save challenge status", func(ctx context.Context) error {
			return rp.players.SaveChallengeStatus(ctx, challenge)
		})
	}

	resp := mc.NewMessage[mc.RespChallenge](mc.CodeDeclineChallenge)
	resp.AddPayload(mc.RespChallenge{Challenge: challenge})
	if err := rp.write(session, resp); err != nil {
		return err
	}

	if challenger, ok := rp.lobby.SessionOf(challenge.FromPlayer); ok {
		declined := mc.NewMessage[mc.RespChallenge](mc.CodeChallengeDeclined)
		declined.AddPayload(mc.RespChallenge{Challenge: challenge})
		rp.notify(challenger, declined)
	}
	return nil
}

// backOnline returns the named players of a finished game to the lobby.
func (rp *RequestProcessor) backOnline(game *mb.Game) {
	for _, side := range mb.Sides {
		player := game.Player(side)
		if player == nil || player.Name() == "" {
			continue
		}
		lobbyPlayer, err := rp.lobby.FindPlayer(player.Name())
		if err != nil || lobbyPlayer.Status != lobby.StatusInGame {
			continue
		}
		if err := rp.lobby.SetStatus(lobbyPlayer.Name, lobby.StatusOnline); err != nil {
			continue
		}
		if rp.players != nil {
			persist("save player status", func(ctx context.Context) error {
				return rp.players.SavePlayerStatus(ctx, lobbyPlayer.Name, lobby.StatusOnline)
			})
		}
	}
}
