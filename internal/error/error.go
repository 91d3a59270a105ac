package error

import "fmt"

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrGameFull(gameUuid string) error {
	return fmt.Errorf("game already has two players, uuid: %s", gameUuid)
}

func ErrSideTaken(gameUuid, side string) error {
	return fmt.Errorf("side %s is already taken in game %s", side, gameUuid)
}

func ErrPlayerNotExist(playerId string) error {
	return fmt.Errorf("player does not exist: %s", playerId)
}

func ErrPlayerNotInGame(name, gameUuid string) error {
	return fmt.Errorf("player %s is not part of game %s", name, gameUuid)
}

func ErrPlayerNameInvalid(name string) error {
	return fmt.Errorf("player name is invalid: %q", name)
}

func ErrPlayerNotOnline(name string) error {
	return fmt.Errorf("player is not online: %s", name)
}

func ErrSelfChallenge(name string) error {
	return fmt.Errorf("player cannot challenge themselves: %s", name)
}

func ErrChallengeNotExists(challengeId string) error {
	return fmt.Errorf("challenge with this id does not exist, id: %s", challengeId)
}

func ErrChallengeNotPending(challengeId, status string) error {
	return fmt.Errorf("challenge %s is not pending, status: %s", challengeId, status)
}

func ErrChallengeWrongReceiver(challengeId, name string) error {
	return fmt.Errorf("challenge %s was not sent to %s", challengeId, name)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrSessionNotRegistered() error {
	return fmt.Errorf("session has no registered player; send a register request first")
}

func ErrSessionNoGame() error {
	return fmt.Errorf("session is not part of any game")
}

func ErrInvalidPayload(err error) error {
	return fmt.Errorf("the payload could not be parsed: %w", err)
}
