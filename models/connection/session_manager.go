package connection

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	Communicate(receiverSessionId string, msg interface{}, msgType uint8) error
	HandleAbnormalClosureSession(session *Session) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

// OpponentFinder resolves the session playing against a side of a game.
type OpponentFinder interface {
	OpponentSessionID(gameUuid string, side mb.Side) (string, bool)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	opponents       OpponentFinder
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

func WithOpponentFinder(finder OpponentFinder) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.opponents = finder
	}
}

func WithSessionCleanupInterval(interval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = interval
	}
}

func WithGracePeriod(period time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = period
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
		gracePeriod:     gracePeriod,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

// ReconnectSession hands a fresh connection to a session whose
// previous connection closed abnormally. The session's own read loop
// picks the new connection up, whether it is waiting out the grace
// period or still blocked reading the old connection.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	session.reconnectionAfterAbnormalClosure(conn)
	return nil
}

// This method sends the msg from one session to another. It never waits
// out the receiver's grace period; that is up to the receiver's own loop.
func (bsm *BattleshipSessionManager) Communicate(receiverSessionId string, msg interface{}, msgType uint8) error {
	receiverSession, err := bsm.FindSession(receiverSessionId)
	if err != nil {
		return err
	}
	return receiverSession.writeToConnWithRetry(msg, msgType)
}

// To ensure that there is no dangling connections, sessions that
// have been idle for longer than the cleanup interval are removed.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		bsm.cleanup()
	}
}

func (bsm *BattleshipSessionManager) cleanup() {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for ID, session := range bsm.sessions {
		if session.idleFor() > bsm.cleanupInterval {
			delete(bsm.sessions, ID)
			log.Printf("session removed: %s", ID)
		}
	}
}

// This function takes care of abnormal closures happening
// to either of the clients. This happens due to backgrounding
// in mobile clients or any other unexpected reasons for web apps.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	gameUuid, side, ok := s.Game()
	if !ok || bsm.opponents == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("session has no game")
	}

	// Absence of the other session means this game is invalid
	otherSessionId, ok := bsm.opponents.OpponentSessionID(gameUuid, side)
	if !ok {
		return NewConnErr(ConnLoopBreak).AddDesc("other player is not seated; invalid session")
	}
	otherSession, err := bsm.FindSession(otherSessionId)
	if err != nil {
		return NewConnErr(ConnLoopBreak).AddDesc("other session is nil; invalid session")
	}

	reconnected := s.reconnectionSignal()

	// If the other session connection is faulty too, there is no need to continue
	if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerGracePeriod), MessageTypeJSON); err != nil {
		return err
	}

	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerDisconnected), MessageTypeJSON); err != nil {
			return err
		}

		log.Printf("session terminated: %s\n", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-reconnected:
		if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerReconnected), MessageTypeJSON); err != nil {
			return err
		}
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	code, ok := ConnErrCode(err)
	if !ok || code != ConnLoopAbnormalClosureRetry {
		return err
	}
	if graceErr := bsm.HandleAbnormalClosureSession(session); graceErr != nil {
		return err
	}
	// the message is resent on the new connection
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		conn := session.Conn()
		messageType, payload, err := conn.ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		// The client came back before the closure of its old connection
		// was noticed; the failed read belongs to the replaced conn.
		if session.Conn() != conn {
			retries = 0
			continue
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}

func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
