package store

import "github.com/fairjack/fairjack-be/internal/game"

// Store is the session repository the engine persists through. The engine
// treats it as read-then-write per action; implementations only need to
// keep the latest snapshot per session.
type Store interface {
	// SaveSession stores the session snapshot, replacing any previous one.
	SaveSession(s *game.Session) error

	// GetSession retrieves a session by ID. A missing session returns
	// ErrNotFound; callers render the neutral default view for it.
	GetSession(id string) (*game.Session, error)

	// DeleteSession removes a session.
	DeleteSession(id string) error
}
