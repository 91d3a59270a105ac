package battleship

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const gameUuidLen = 6

type GameManager interface {
	CreateGame() *Game
	AddGame(gameUuid string, match *Match) *Game
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	OpponentSessionID(gameUuid string, side Side) (string, bool)
	Fleet() []ShipSpec
	CleanupPeriodically()
}

type BattleshipGameManager struct {
	games           map[string]*Game
	fleet           []ShipSpec
	cleanupInterval time.Duration
	mu              sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

// WithFleet replaces the standard fleet for every game created by the manager.
func WithFleet(fleet []ShipSpec) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		if err := ValidateFleet(fleet); err != nil {
			panic(err)
		}
		bgm.fleet = copyFleet(fleet)
	}
}

func WithGameCleanupInterval(interval time.Duration) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.cleanupInterval = interval
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games:           make(map[string]*Game, 10),
		fleet:           copyFleet(StandardFleet),
		cleanupInterval: time.Minute * 30,
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

// CreateGame registers a new game under a short unique code. The
// host side always moves first.
func (bgm *BattleshipGameManager) CreateGame() *Game {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	gameUuid := uuid.NewString()[:gameUuidLen]
	for _, prs := bgm.games[gameUuid]; prs; _, prs = bgm.games[gameUuid] {
		gameUuid = uuid.NewString()[:gameUuidLen]
	}

	game := newGame(gameUuid, NewMatch(bgm.fleet, SideHost))
	bgm.games[gameUuid] = game
	return game
}

// AddGame registers an already existing match, e.g. one restored from
// the store. An in-memory game with the same uuid wins.
func (bgm *BattleshipGameManager) AddGame(gameUuid string, match *Match) *Game {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	if game, prs := bgm.games[gameUuid]; prs && game != nil {
		return game
	}

	game := newGame(gameUuid, match)
	bgm.games[gameUuid] = game
	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

// OpponentSessionID returns the session seated opposite side in the
// game, if there is one.
func (bgm *BattleshipGameManager) OpponentSessionID(gameUuid string, side Side) (string, bool) {
	game, err := bgm.GetGame(gameUuid)
	if err != nil {
		return "", false
	}
	sessionID := game.SessionID(side.Other())
	return sessionID, sessionID != ""
}

func (bgm *BattleshipGameManager) Fleet() []ShipSpec {
	return copyFleet(bgm.fleet)
}

// Finished games and games idle for longer than the cleanup interval
// are removed so abandoned matches do not pile up in memory.
func (bgm *BattleshipGameManager) CleanupPeriodically() {
	ticker := time.NewTicker(bgm.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		bgm.cleanup()
	}
}

func (bgm *BattleshipGameManager) cleanup() {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	for gameUuid, game := range bgm.games {
		if game.Phase() == PhaseFinished || game.IdleFor() > bgm.cleanupInterval {
			delete(bgm.games, gameUuid)
			log.Printf("game removed: %s", gameUuid)
		}
	}
}
