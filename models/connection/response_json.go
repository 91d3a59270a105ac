package connection

import (
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	"github.com/saeidalz13/battleship-duel/models/lobby"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespRegisterPlayer struct {
	Player            lobby.Player      `json:"player"`
	Existed           bool              `json:"existed"`
	PendingChallenges []lobby.Challenge `json:"pending_challenges"`
}

type RespListPlayers struct {
	Players []lobby.Player `json:"players"`
}

type RespChallenge struct {
	Challenge lobby.Challenge `json:"challenge"`
}

type RespCreateGame struct {
	GameUuid string  `json:"game_uuid"`
	HostUuid string  `json:"host_uuid"`
	Side     mb.Side `json:"side"`
}

type RespJoinGame struct {
	GameUuid   string  `json:"game_uuid"`
	PlayerUuid string  `json:"player_uuid"`
	Side       mb.Side `json:"side"`
}

type RespStartPlacement struct {
	GameUuid  string        `json:"game_uuid"`
	Side      mb.Side       `json:"side"`
	FirstTurn mb.Side       `json:"first_turn"`
	Opponent  string        `json:"opponent,omitempty"`
	Fleet     []mb.ShipSpec `json:"fleet"`
}

type RespPlaceShip struct {
	ShipIndex     int     `json:"ship_index"`
	NextShipIndex int     `json:"next_ship_index"`
	FleetComplete bool    `json:"fleet_complete"`
	OwnBoard      mb.Grid `json:"own_board"`
}

type RespReady struct {
	Phase mb.Phase `json:"phase"`
}

type RespStartGame struct {
	Turn   mb.Side `json:"turn"`
	IsTurn bool    `json:"is_turn"`
}

type RespFire struct {
	mb.ShotResult
	IsTurn bool `json:"is_turn"`
}

type RespEndGame struct {
	Winner mb.Side `json:"winner"`
	Won    bool    `json:"won"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
