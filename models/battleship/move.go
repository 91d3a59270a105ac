package battleship

import "fmt"

type ShotOutcome uint8

const (
	OutcomeMiss ShotOutcome = iota
	OutcomeHit
)

// Token uses the same alphabet as the cell it produces.
func (o ShotOutcome) Token() byte {
	if o == OutcomeHit {
		return TokenHit
	}
	return TokenMiss
}

func (o ShotOutcome) String() string {
	if o == OutcomeHit {
		return "hit"
	}
	return "miss"
}

func (o ShotOutcome) MarshalText() ([]byte, error) {
	return []byte{o.Token()}, nil
}

func (o *ShotOutcome) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid shot outcome: %q", text)
	}

	switch text[0] {
	case TokenHit:
		*o = OutcomeHit
	case TokenMiss:
		*o = OutcomeMiss
	default:
		return fmt.Errorf("invalid shot outcome: %q", text)
	}
	return nil
}

// MoveRecord is one accepted shot, in the order the match applied it.
type MoveRecord struct {
	Side    Side        `json:"side"`
	Row     int         `json:"row"`
	Col     int         `json:"col"`
	Outcome ShotOutcome `json:"outcome"`
}

func (m MoveRecord) Target() Coordinates {
	return NewCoordinates(m.Row, m.Col)
}
