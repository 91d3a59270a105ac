package lobby

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusInGame  = "in_game"
)

const (
	ChallengePending  = "pending"
	ChallengeAccepted = "accepted"
	ChallengeDeclined = "declined"
)

const maxNameLen = 32

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	SessionID string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Challenge struct {
	ID         string    `json:"id"`
	FromPlayer string    `json:"from_player"`
	ToPlayer   string    `json:"to_player"`
	Status     string    `json:"status"`
	GameUuid   string    `json:"game_uuid,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Lobby keeps track of the named players that are connected and the
// challenges they send each other.
type Lobby struct {
	players    map[string]*Player
	challenges map[string]*Challenge
	mu         sync.RWMutex
}

func NewLobby() *Lobby {
	return &Lobby{
		players:    make(map[string]*Player, 10),
		challenges: make(map[string]*Challenge, 10),
	}
}

func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return "", cerr.ErrPlayerNameInvalid(name)
	}
	return name, nil
}

// CheckAndAddPlayer registers name, or marks an already known player
// online again under the new session. existed reports which one happened.
func (l *Lobby) CheckAndAddPlayer(name, sessionID string) (player Player, existed bool, err error) {
	name, err = NormalizeName(name)
	if err != nil {
		return Player{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if p, prs := l.players[name]; prs {
		p.Status = StatusOnline
		p.SessionID = sessionID
		p.UpdatedAt = time.Now()
		return *p, true, nil
	}

	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    StatusOnline,
		SessionID: sessionID,
		UpdatedAt: time.Now(),
	}
	l.players[name] = p
	return *p, false, nil
}

func (l *Lobby) FindPlayer(name string) (Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, prs := l.players[name]
	if !prs {
		return Player{}, cerr.ErrPlayerNotExist(name)
	}
	return *p, nil
}

func (l *Lobby) SetStatus(name, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, prs := l.players[name]
	if !prs {
		return cerr.ErrPlayerNotExist(name)
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// Disconnect marks the player offline, unless the player has already
// moved on to another session.
func (l *Lobby) Disconnect(name, sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, prs := l.players[name]
	if !prs || p.SessionID != sessionID {
		return false
	}
	p.Status = StatusOffline
	p.SessionID = ""
	p.UpdatedAt = time.Now()
	return true
}

// ListPlayers returns every player but the caller, sorted by name.
func (l *Lobby) ListPlayers(exclude string) []Player {
	l.mu.RLock()
	defer l.mu.RUnlock()

	players := make([]Player, 0, len(l.players))
	for name, p := range l.players {
		if name == exclude {
			continue
		}
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players
}

func (l *Lobby) SendChallenge(from, to string) (Challenge, error) {
	if from == to {
		return Challenge{}, cerr.ErrSelfChallenge(from)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, prs := l.players[from]; !prs {
		return Challenge{}, cerr.ErrPlayerNotExist(from)
	}
	target, prs := l.players[to]
	if !prs {
		return Challenge{}, cerr.ErrPlayerNotExist(to)
	}
	if target.Status != StatusOnline {
		return Challenge{}, cerr.ErrPlayerNotOnline(to)
	}

	c := &Challenge{
		ID:         uuid.NewString(),
		FromPlayer: from,
		ToPlayer:   to,
		Status:     ChallengePending,
		CreatedAt:  time.Now(),
	}
	l.challenges[c.ID] = c
	return *c, nil
}

func (l *Lobby) FindChallenge(challengeID string) (Challenge, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, prs := l.challenges[challengeID]
	if !prs {
		return Challenge{}, cerr.ErrChallengeNotExists(challengeID)
	}
	return *c, nil
}

// PendingFor returns the pending challenges addressed to name, oldest first.
func (l *Lobby) PendingFor(name string) []Challenge {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pending := make([]Challenge, 0)
	for _, c := range l.challenges {
		if c.ToPlayer == name && c.Status == ChallengePending {
			pending = append(pending, *c)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending
}

// Accept resolves a pending challenge addressed to receiver. The game is
// created by the caller through newGame, which only runs once the
// challenge is known to be acceptable; it returns the game uuid.
func (l *Lobby) Accept(challengeID, receiver string, newGame func(c Challenge) (string, error)) (Challenge, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.pendingChallenge(challengeID, receiver)
	if err != nil {
		return Challenge{}, err
	}

	gameUuid, err := newGame(*c)
	if err != nil {
		return Challenge{}, err
	}

	c.Status = ChallengeAccepted
	c.GameUuid = gameUuid
	for _, name := range []string{c.FromPlayer, c.ToPlayer} {
		if p, prs := l.players[name]; prs {
			p.Status = StatusInGame
			p.UpdatedAt = time.Now()
		}
	}
	return *c, nil
}

func (l *Lobby) Decline(challengeID, receiver string) (Challenge, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.pendingChallenge(challengeID, receiver)
	if err != nil {
		return Challenge{}, err
	}
	c.Status = ChallengeDeclined
	return *c, nil
}

func (l *Lobby) pendingChallenge(challengeID, receiver string) (*Challenge, error) {
	c, prs := l.challenges[challengeID]
	if !prs {
		return nil, cerr.ErrChallengeNotExists(challengeID)
	}
	if c.ToPlayer != receiver {
		return nil, cerr.ErrChallengeWrongReceiver(challengeID, receiver)
	}
	if c.Status != ChallengePending {
		return nil, cerr.ErrChallengeNotPending(challengeID, c.Status)
	}
	return c, nil
}

// SessionOf returns the session the named player is connected with.
func (l *Lobby) SessionOf(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, prs := l.players[name]
	if !prs || p.SessionID == "" {
		return "", false
	}
	return p.SessionID, true
}
