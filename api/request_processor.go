package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/lobby"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	lobby          *lobby.Lobby

	games     GameStore
	players   LobbyStore
	analytics AnalyticsStore
	ipnet     net.IPNet
}

type RequestProcessorOption func(*RequestProcessor)

func WithGameStore(store GameStore) RequestProcessorOption {
	return func(rp *RequestProcessor) {
		rp.games = store
	}
}

func WithLobbyStore(store LobbyStore) RequestProcessorOption {
	return func(rp *RequestProcessor) {
		rp.players = store
	}
}

func WithAnalytics(store AnalyticsStore) RequestProcessorOption {
	return func(rp *RequestProcessor) {
		rp.analytics = store
	}
}

func WithLobby(l *lobby.Lobby) RequestProcessorOption {
	return func(rp *RequestProcessor) {
		rp.lobby = l
	}
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	opts ...RequestProcessorOption,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		lobby:          lobby.NewLobby(),
		ipnet:          serverIpNet(),
	}
	for _, opt := range opts {
		opt(rp)
	}
	return rp
}

// serverIpNet finds the first non-loopback IPv4 address of this host, the
// key of the analytics counters. Loopback is used when there is none.
func serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	log.Println("no external ipv4 address found; using loopback")
	return loopback
}

// Expose this method to use it in testing
func (rp *RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp *RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		// the session's own loop carries on with this connection
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			log.Println(err)
			msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
			msg.AddError(err.Error(), "")
			_ = conn.WriteJSON(msg)
			_ = conn.Close()
		}
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		rp.leave(session)
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.write(session, resp); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.write(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeRegisterPlayer:
			err = rp.handleRegisterPlayer(session, payload)

		case mc.CodeListPlayers:
			err = rp.handleListPlayers(session)

		case mc.CodeSendChallenge:
			err = rp.handleSendChallenge(session, payload)

		case mc.CodeAcceptChallenge:
			err = rp.handleAcceptChallenge(session, payload)

		case mc.CodeDeclineChallenge:
			err = rp.handleDeclineChallenge(session, payload)

		// In this branch we initialize the game and hence create a host player
		case mc.CodeCreateGame:
			err = rp.handleCreateGame(session, payload)

		// This branch handles joining a new player to an existing game.
		case mc.CodeJoinGame:
			err = rp.handleJoinGame(session, payload)

		case mc.CodePlaceShip:
			err = rp.handlePlaceShip(session, payload)

		// This code means the player has placed the whole fleet and
		// is ready to start the game
		case mc.CodeReady:
			err = rp.handleReady(session)

		case mc.CodeFire:
			err = rp.handleFire(session, payload)

		case mc.CodeMatchState:
			err = rp.handleMatchState(session)

		case mc.CodeResumeGame:
			err = rp.handleResumeGame(session, payload)

		case mc.CodePlayerInteraction:
			if receiver, ok := rp.opponentSessionId(session); ok {
				if err := rp.sessionManager.Communicate(receiver, payload, mc.MessageTypeBytes); err != nil {
					log.Printf("failed to relay interaction to [%s]: %v\n", receiver, err)
				}
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			err = rp.write(session, respInvalidSignal)
		}

		if err != nil {
			break sessionLoop
		}
	}
}

// leave cleans up what the session owned once its loop ends. Games are
// kept so the player can resume them from a new session.
func (rp *RequestProcessor) leave(session *mc.Session) {
	if game, side, err := rp.sessionGame(session); err == nil && game.Phase() != mb.PhaseFinished {
		rp.notify(game.SessionID(side.Other()), mc.NewMessage[mc.NoPayload](mc.CodeOtherPlayerDisconnected))
	}

	name := session.PlayerName()
	if name == "" {
		return
	}
	if rp.lobby.Disconnect(name, session.Id()) && rp.players != nil {
		persist("save player status", func(ctx context.Context) error {
			return rp.players.SavePlayerStatus(ctx, name, lobby.StatusOffline)
		})
	}
}

func (rp *RequestProcessor) write(session *mc.Session, msg interface{}) error {
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

// notify sends msg to another session. A failing receiver never ends
// the sender's loop.
func (rp *RequestProcessor) notify(receiverSessionId string, msg interface{}) {
	if receiverSessionId == "" {
		return
	}
	if err := rp.sessionManager.Communicate(receiverSessionId, msg, mc.MessageTypeJSON); err != nil {
		log.Printf("failed to notify session [%s]: %v\n", receiverSessionId, err)
	}
}

func (rp *RequestProcessor) opponentSessionId(session *mc.Session) (string, bool) {
	gameUuid, side, ok := session.Game()
	if !ok {
		return "", false
	}
	return rp.gameManager.OpponentSessionID(gameUuid, side)
}

// errorMessage wraps err in a message with code. Rule rejections carry
// their reason token so clients can tell them apart.
func errorMessage(code uint8, err error) mc.Message[mc.NoPayload] {
	msg := mc.NewMessage[mc.NoPayload](code)
	reason, ok := mb.RejectionReason(err)
	if ok {
		msg.AddError(err.Error(), reason.String())
	} else {
		msg.AddError(err.Error(), "")
	}
	return msg
}
