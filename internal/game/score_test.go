package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected int
	}{
		{"blackjack", []Card{{Rank: Ace}, {Rank: King}}, 21},
		{"double ace", []Card{{Rank: Ace}, {Rank: Ace}}, 12},
		{"soft 17", []Card{{Rank: Ace}, {Rank: Six}}, 17},
		{"ace rescued", []Card{{Rank: Ace}, {Rank: Five}, {Rank: Eight}}, 14},
		{"pair of tens", []Card{{Rank: Ten}, {Rank: Ten}}, 20},
		{"face cards", []Card{{Rank: Jack}, {Rank: Queen}}, 20},
		{"bust", []Card{{Rank: King}, {Rank: Queen}, {Rank: Two}}, 22},
		{"all aces hard still busts", []Card{{Rank: Ace}, {Rank: Ace}, {Rank: King}, {Rank: Queen}}, 22},
		{"empty hand", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.cards))
		})
	}
}

func TestIsNatural(t *testing.T) {
	assert.True(t, isNatural([]Card{{Rank: Ace}, {Rank: King}}))
	assert.False(t, isNatural([]Card{{Rank: Seven}, {Rank: Seven}, {Rank: Seven}}), "three-card 21 is not a natural")
	assert.False(t, isNatural([]Card{{Rank: Ten}, {Rank: Nine}}))
}
