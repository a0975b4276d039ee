package store

import (
	"github.com/fairjack/fairjack-be/internal/db"
	"github.com/fairjack/fairjack-be/internal/game"
)

// DatabaseStore is the database-backed session repository. Sessions
// survive a server restart when this store is configured.
type DatabaseStore struct {
	db *db.Database
}

func NewDatabaseStore(database *db.Database) *DatabaseStore {
	return &DatabaseStore{db: database}
}

func (s *DatabaseStore) SaveSession(sess *game.Session) error {
	return s.db.SaveSession(sess)
}

func (s *DatabaseStore) GetSession(id string) (*game.Session, error) {
	sess, err := s.db.GetSession(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *DatabaseStore) DeleteSession(id string) error {
	return s.db.DeleteSession(id)
}
