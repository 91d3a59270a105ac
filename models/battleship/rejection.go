package battleship

import (
	"errors"
	"fmt"
)

type Reason uint8

const (
	ReasonInvalidPlacement Reason = iota + 1
	ReasonOutOfTurn
	ReasonWrongPhase
	ReasonAlreadyFinished
	ReasonAlreadyTargeted
	ReasonInvalidTarget
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalidPlacement:
		return "invalid_placement"
	case ReasonOutOfTurn:
		return "out_of_turn"
	case ReasonWrongPhase:
		return "wrong_phase"
	case ReasonAlreadyFinished:
		return "already_finished"
	case ReasonAlreadyTargeted:
		return "already_targeted"
	case ReasonInvalidTarget:
		return "invalid_target"
	default:
		return "unknown"
	}
}

// Rejection is returned for every command that breaks a game rule.
// The board and match are left exactly as they were.
type Rejection struct {
	Reason Reason
	Detail string
}

var (
	ErrInvalidPlacement = &Rejection{Reason: ReasonInvalidPlacement}
	ErrOutOfTurn        = &Rejection{Reason: ReasonOutOfTurn}
	ErrWrongPhase       = &Rejection{Reason: ReasonWrongPhase}
	ErrAlreadyFinished  = &Rejection{Reason: ReasonAlreadyFinished}
	ErrAlreadyTargeted  = &Rejection{Reason: ReasonAlreadyTargeted}
	ErrInvalidTarget    = &Rejection{Reason: ReasonInvalidTarget}
)

func reject(reason Reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return r.Reason.String()
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// Is matches any rejection with the same reason, so callers can
// use errors.Is(err, ErrOutOfTurn) regardless of the detail.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return t.Reason == r.Reason
}

// RejectionReason reports the rule that err broke, if err is a rejection.
func RejectionReason(err error) (Reason, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return 0, false
}
