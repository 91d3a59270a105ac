package connection

import (
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
)

type ReqRegisterPlayer struct {
	Name string `json:"name"`
}

type ReqSendChallenge struct {
	To string `json:"to"`
}

type ReqChallenge struct {
	ChallengeID string `json:"challenge_id"`
}

type ReqCreateGame struct {
	Name string `json:"name,omitempty"`
}

type ReqJoinGame struct {
	GameUuid string `json:"game_uuid"`
	Name     string `json:"name,omitempty"`
}

type ReqPlaceShip struct {
	ShipIndex int            `json:"ship_index"`
	Start     mb.Coordinates `json:"start"`
	End       mb.Coordinates `json:"end"`
}

type ReqFire struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ReqResumeGame struct {
	GameUuid string `json:"game_uuid"`
	Name     string `json:"name"`
}
