package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Lobby
	CodeRegisterPlayer
	CodeListPlayers
	CodeSendChallenge
	CodeIncomingChallenge
	CodeAcceptChallenge
	CodeDeclineChallenge
	CodeChallengeDeclined

	// Game setup by code, without the lobby
	CodeCreateGame
	CodeJoinGame

	CodeStartPlacement
	CodePlaceShip
	CodeReady
	CodeOpponentReady
	CodeStartGame
	CodeFire
	CodeEndGame

	// Full view of the game for the requesting side
	CodeMatchState
	CodeResumeGame

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeOtherPlayerDisconnected
	CodeOtherPlayerReconnected
	CodeOtherPlayerGracePeriod

	// Players can send template texts and emojis to each other
	CodePlayerInteraction
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
