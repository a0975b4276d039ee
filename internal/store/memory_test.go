package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairjack/fairjack-be/internal/game"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	sess := game.NewSession(1000)

	require.NoError(t, s.SaveSession(sess))

	got, err := s.GetSession(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetSession("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	sess := game.NewSession(1000)
	require.NoError(t, s.SaveSession(sess))

	require.NoError(t, s.DeleteSession(sess.ID))

	_, err := s.GetSession(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteSession(sess.ID), ErrNotFound)
}
