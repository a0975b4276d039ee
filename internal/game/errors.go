package game

import "errors"

// Game-rule rejections. These are expected, recoverable conditions: the
// API layer turns them into message-bearing views rather than failures,
// and no session state is mutated when they are returned.
var (
	// ErrInvalidBet means the bet was non-positive or exceeded the balance.
	ErrInvalidBet = errors.New("bet must be greater than zero and no more than the balance")

	// ErrIllegalTransition means the action is not permitted in the
	// session's current state and could not be self-healed.
	ErrIllegalTransition = errors.New("action not allowed in the current game state")
)
