package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func livePlayingSession() *Session {
	s := NewSession(1000)
	if err := s.PlaceBet(50); err != nil {
		panic(err)
	}
	return s
}

func TestProjectHidesHoleCard(t *testing.T) {
	s := livePlayingSession()
	view := s.CurrentView()

	require.Len(t, view.DealerCards, 2)
	assert.False(t, view.DealerCards[0].Hidden)
	hole := view.DealerCards[1]
	assert.True(t, hole.Hidden)
	assert.Empty(t, hole.Suit, "hidden card must not leak its suit")
	assert.Empty(t, hole.Rank, "hidden card must not leak its rank")

	assert.Equal(t, 0, view.DealerScore, "concealed dealer hand scores as 0")
	assert.Equal(t, Score(s.PlayerCards), view.PlayerScore)
}

func TestProjectHiddenCardSerialization(t *testing.T) {
	s := livePlayingSession()
	data, err := json.Marshal(s.CurrentView())
	require.NoError(t, err)

	var decoded struct {
		DealerCards []map[string]interface{} `json:"dealerCards"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.DealerCards, 2)

	_, hasSuit := decoded.DealerCards[1]["suit"]
	_, hasRank := decoded.DealerCards[1]["rank"]
	assert.False(t, hasSuit, "hole card JSON must omit the suit entirely")
	assert.False(t, hasRank, "hole card JSON must omit the rank entirely")
}

func TestProjectHideDealerExceptFirst(t *testing.T) {
	s := livePlayingSession()
	// Simulate drift: an extra visible dealer card while concealment is on.
	s.DealerCards = append(s.DealerCards, Card{Suit: Clubs, Rank: Five})

	view := s.Project(ViewOptions{HideDealerExceptFirst: true})
	require.Len(t, view.DealerCards, 3)
	assert.False(t, view.DealerCards[0].Hidden)
	assert.True(t, view.DealerCards[1].Hidden)
	assert.True(t, view.DealerCards[2].Hidden, "cards past the up card are suppressed")
	assert.Equal(t, 0, view.DealerScore)
}

func TestProjectRevealedDealer(t *testing.T) {
	s := livePlayingSession()
	steps, err := s.Stand()
	require.NoError(t, err)

	final := steps[len(steps)-1]
	assert.Equal(t, Score(s.DealerCards), final.DealerScore)
	for _, card := range final.DealerCards {
		assert.False(t, card.Hidden)
		assert.NotEmpty(t, card.Rank)
	}
}

func TestProjectInitialDealMarksBothHands(t *testing.T) {
	s := livePlayingSession()
	view := s.Project(ViewOptions{InitialDeal: true, HideDealerExceptFirst: true})

	assert.True(t, view.PlayerCards[1].New)
	assert.True(t, view.DealerCards[1].New)
	assert.False(t, view.PlayerCards[0].New)
}

func TestProjectMarksNewestPlayerCardOnBust(t *testing.T) {
	s := playingSession(
		[]Card{{Rank: King}, {Rank: Queen}},
		[]Card{{Rank: Ten}, {Rank: Seven, Hidden: true}},
		[]Card{{Rank: Five}},
		50, 950)
	require.NoError(t, s.Hit())

	view := s.Project(ViewOptions{MarkNewCard: true})
	assert.True(t, view.PlayerCards[2].New, "bust card is the player's")
	for _, card := range view.DealerCards {
		assert.False(t, card.New)
	}
}

func TestProjectServerSeedWithheldUntilCompleted(t *testing.T) {
	s := livePlayingSession()

	view := s.CurrentView()
	require.NotNil(t, view.ProvablyFair)
	assert.Empty(t, view.ProvablyFair.ServerSeed, "live round must not expose the server seed")
	assert.NotEmpty(t, view.ProvablyFair.HashedServerSeed)
	assert.NotEmpty(t, view.ProvablyFair.ClientSeed)

	_, err := s.Stand()
	require.NoError(t, err)

	settled := s.CurrentView()
	assert.True(t, settled.ProvablyFair.Completed)
	assert.Equal(t, s.ProvablyFair.ServerSeed, settled.ProvablyFair.ServerSeed)
}

func TestDefaultView(t *testing.T) {
	view := DefaultView("Session expired. Start a new game to keep playing.")

	assert.Equal(t, StateBetting, view.State)
	assert.NotEmpty(t, view.Message)
	assert.Empty(t, view.SessionID)
	assert.NotNil(t, view.PlayerCards)
	assert.NotNil(t, view.DealerCards)
	assert.Nil(t, view.ProvablyFair)
}
