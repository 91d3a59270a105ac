package api

import (
	"context"
	"log"

	"github.com/saeidalz13/battleship-duel/db/sqlc"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/lobby"
)

// sessionGame resolves the game the session currently holds a seat in.
func (rp *RequestProcessor) sessionGame(session *mc.Session) (*mb.Game, mb.Side, error) {
	gameUuid, side, ok := session.Game()
	if !ok {
		return nil, side, cerr.ErrSessionNoGame()
	}

	game, err := rp.gameManager.GetGame(gameUuid)
	if err != nil {
		return nil, side, err
	}

	// the seat may have moved to another session through a resume
	if game.SessionID(side) != session.Id() {
		session.ClearGame()
		return nil, side, cerr.ErrSessionNoGame()
	}
	return game, side, nil
}

func (rp *RequestProcessor) persistNewGame(game *mb.Game, hostName, joinName string) {
	if rp.analytics != nil {
		persist("increment games created", func(ctx context.Context) error {
			return rp.analytics.IncrementGamesCreatedCount(ctx, rp.serverInet())
		})
	}
	if rp.games == nil {
		return
	}

	persist("create game", func(ctx context.Context) error {
		return rp.games.CreateGame(ctx, game.Uuid(), hostName, game.FirstTurn())
	})
	if joinName != "" {
		persist("set join player", func(ctx context.Context) error {
			return rp.games.SetJoinPlayer(ctx, game.Uuid(), joinName)
		})
	}
}

// startPlacement tells both seated players to place their fleets.
func (rp *RequestProcessor) startPlacement(game *mb.Game) {
	for _, side := range mb.Sides {
		var opponent string
		if p := game.Player(side.Other()); p != nil {
			opponent = p.Name()
		}

		msg := mc.NewMessage[mc.RespStartPlacement](mc.CodeStartPlacement)
		msg.AddPayload(mc.RespStartPlacement{
			GameUuid:  game.Uuid(),
			Side:      side,
			FirstTurn: game.FirstTurn(),
			Opponent:  opponent,
			Fleet:     game.Fleet(),
		})
		rp.notify(game.SessionID(side), msg)
	}
}

func (rp *RequestProcessor) handleCreateGame(session *mc.Session, payload []byte) error {
	name := session.PlayerName()
	if name == "" {
		req, err := mc.DecodePayload[mc.ReqCreateGame](payload)
		if err != nil {
			return rp.write(session, errorMessage(mc.CodeCreateGame, cerr.ErrInvalidPayload(err)))
		}
		name = req.Name
	}

	game := rp.gameManager.CreateGame()
	host, err := game.AddPlayer(mb.SideHost, name, session.Id())
	if err != nil {
		rp.gameManager.TerminateGame(game.Uuid())
		return rp.write(session, errorMessage(mc.CodeCreateGame, err))
	}
	session.SetGame(game.Uuid(), mb.SideHost)
	if session.PlayerName() != "" {
		_ = rp.lobby.SetStatus(name, lobby.StatusInGame)
	}

	rp.persistNewGame(game, name, "")

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		HostUuid: host.Uuid(),
		Side:     mb.SideHost,
	})
	return rp.write(session, resp)
}

func (rp *RequestProcessor) handleJoinGame(session *mc.Session, payload []byte) error {
	req, err := mc.DecodePayload[mc.ReqJoinGame](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeJoinGame, cerr.ErrInvalidPayload(err)))
	}

	game, err := rp.gameManager.GetGame(req.GameUuid)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeJoinGame, err))
	}

	name := session.PlayerName()
	if name == "" {
		name = req.Name
	}
	player, err := game.AddJoinPlayer(name, session.Id())
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeJoinGame, err))
	}
	session.SetGame(game.Uuid(), mb.SideJoin)
	if session.PlayerName() != "" {
		_ = rp.lobby.SetStatus(name, lobby.StatusInGame)
	}

	if rp.games != nil {
		persist("set join player", func(ctx context.Context) error {
			return rp.games.SetJoinPlayer(ctx, game.Uuid(), name)
		})
	}

	resp := mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame)
	resp.AddPayload(mc.RespJoinGame{
		GameUuid:   game.Uuid(),
		PlayerUuid: player.Uuid(),
		Side:       mb.SideJoin,
	})
	if err := rp.write(session, resp); err != nil {
		return err
	}

	rp.startPlacement(game)
	return nil
}

func (rp *RequestProcessor) handlePlaceShip(session *mc.Session, payload []byte) error {
	req, err := mc.DecodePayload[mc.ReqPlaceShip](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodePlaceShip, cerr.ErrInvalidPayload(err)))
	}

	game, side, err := rp.sessionGame(session)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodePlaceShip, err))
	}

	view, err := game.PlaceShip(side, req.ShipIndex, req.Start, req.End)
	if err != nil {
		log.Printf("place ship rejected [%s]: %v\n", session.Id(), err)
		return rp.write(session, errorMessage(mc.CodePlaceShip, err))
	}

	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	resp.AddPayload(mc.RespPlaceShip{
		ShipIndex:     req.ShipIndex,
		NextShipIndex: view.NextShipIndex,
		FleetComplete: view.NextShipIndex >= len(view.Fleet),
		OwnBoard:      view.OwnBoard,
	})
	return rp.write(session, resp)
}

func (rp *RequestProcessor) handleReady(session *mc.Session) error {
	game, side, err := rp.sessionGame(session)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeReady, err))
	}

	phase, board, err := game.SetReady(side)
	if err != nil {
		log.Printf("ready rejected [%s]: %v\n", session.Id(), err)
		return rp.write(session, errorMessage(mc.CodeReady, err))
	}

	if rp.games != nil {
		persist("save board", func(ctx context.Context) error {
			return rp.games.SaveBoard(ctx, game.Uuid(), side, board.Rows(), phase)
		})
	}

	resp := mc.NewMessage[mc.RespReady](mc.CodeReady)
	resp.AddPayload(mc.RespReady{Phase: phase})
	if err := rp.write(session, resp); err != nil {
		return err
	}

	rp.notify(game.SessionID(side.Other()), mc.NewMessage[mc.NoPayload](mc.CodeOpponentReady))

	if phase == mb.PhaseActive {
		turn := game.Turn()
		for _, s := range mb.Sides {
			msg := mc.NewMessage[mc.RespStartGame](mc.CodeStartGame)
			msg.AddPayload(mc.RespStartGame{Turn: turn, IsTurn: turn == s})
			rp.notify(game.SessionID(s), msg)
		}
	}
	return nil
}

// A shot is answered to both players: the shooter learns the outcome and
// the defender learns it is their turn. A winning shot also ends the game
// for both.
func (rp *RequestProcessor) handleFire(session *mc.Session, payload []byte) error {
	req, err := mc.DecodePayload[mc.ReqFire](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeFire, cerr.ErrInvalidPayload(err)))
	}

	game, side, err := rp.sessionGame(session)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeFire, err))
	}

	result, err := game.FireAt(side, mb.NewCoordinates(req.Row, req.Col))
	if err != nil {
		log.Printf("fire rejected [%s]: %v\n", session.Id(), err)
		return rp.write(session, errorMessage(mc.CodeFire, err))
	}

	if rp.games != nil {
		persist("save move", func(ctx context.Context) error {
			return rp.games.SaveMove(ctx, game.Uuid(), result)
		})
	}

	respShooter := mc.NewMessage[mc.RespFire](mc.CodeFire)
	respShooter.AddPayload(mc.RespFire{ShotResult: result, IsTurn: !result.Finished && result.Turn == side})
	if err := rp.write(session, respShooter); err != nil {
		return err
	}

	defender := side.Other()
	respDefender := mc.NewMessage[mc.RespFire](mc.CodeFire)
	respDefender.AddPayload(mc.RespFire{ShotResult: result, IsTurn: !result.Finished && result.Turn == defender})
	rp.notify(game.SessionID(defender), respDefender)

	if result.Finished {
		winner := *result.Winner
		for _, s := range mb.Sides {
			msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
			msg.AddPayload(mc.RespEndGame{Winner: winner, Won: winner == s})
			rp.notify(game.SessionID(s), msg)
		}
		rp.backOnline(game)
	}
	return nil
}

func (rp *RequestProcessor) handleMatchState(session *mc.Session) error {
	game, side, err := rp.sessionGame(session)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeMatchState, err))
	}

	resp := mc.NewMessage[mb.MatchView](mc.CodeMatchState)
	resp.AddPayload(game.View(side))
	return rp.write(session, resp)
}

// A named player takes their seat back from a new session. Games no
// longer in memory are restored from the store by replaying their moves.
func (rp *RequestProcessor) handleResumeGame(session *mc.Session, payload []byte) error {
	req, err := mc.DecodePayload[mc.ReqResumeGame](payload)
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeResumeGame, cerr.ErrInvalidPayload(err)))
	}

	name := req.Name
	if name == "" {
		name = session.PlayerName()
	}
	if name == "" {
		return rp.write(session, errorMessage(mc.CodeResumeGame, cerr.ErrPlayerNameInvalid(name)))
	}

	game, err := rp.gameManager.GetGame(req.GameUuid)
	if err != nil {
		game, err = rp.restoreGame(req.GameUuid, err)
		if err != nil {
			return rp.write(session, errorMessage(mc.CodeResumeGame, err))
		}
	}

	player, err := game.BindSession(name, session.Id())
	if err != nil {
		return rp.write(session, errorMessage(mc.CodeResumeGame, err))
	}
	session.SetGame(game.Uuid(), player.Side())

	resp := mc.NewMessage[mb.MatchView](mc.CodeResumeGame)
	resp.AddPayload(game.View(player.Side()))
	if err := rp.write(session, resp); err != nil {
		return err
	}

	rp.notify(game.SessionID(player.Side().Other()), mc.NewMessage[mc.NoPayload](mc.CodeOtherPlayerReconnected))
	return nil
}

// restoreGame loads a game from the store into memory. notFound is
// returned as is when there is no store to ask.
func (rp *RequestProcessor) restoreGame(gameUuid string, notFound error) (*mb.Game, error) {
	if rp.games == nil {
		return nil, notFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	stored, err := rp.games.LoadGame(ctx, gameUuid)
	if err != nil {
		log.Printf("failed to load game %s: %v\n", gameUuid, err)
		return nil, notFound
	}

	match, err := mb.RestoreMatch(rp.gameManager.Fleet(), stored.Snapshot)
	if err != nil {
		log.Printf("failed to restore game %s: %v\n", gameUuid, err)
		return nil, err
	}

	game := rp.gameManager.AddGame(gameUuid, match)
	// seats are claimed by name through BindSession
	_, _ = game.AddPlayer(mb.SideHost, stored.HostName, "")
	_, _ = game.AddPlayer(mb.SideJoin, stored.JoinName, "")
	log.Printf("game restored from store: %s\n", gameUuid)
	return game, nil
}
