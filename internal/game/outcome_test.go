package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		player   []Card
		dealer   []Card
		expected Outcome
	}{
		{"player bust", []Card{{Rank: King}, {Rank: Queen}, {Rank: Two}}, []Card{{Rank: Ten}, {Rank: Seven}}, OutcomeBust},
		{"both bust is player bust", []Card{{Rank: King}, {Rank: Queen}, {Rank: Two}}, []Card{{Rank: Ten}, {Rank: Nine}, {Rank: Five}}, OutcomeBust},
		{"dealer bust", []Card{{Rank: Ten}, {Rank: Nine}}, []Card{{Rank: Ten}, {Rank: Six}, {Rank: King}}, OutcomeDealerBust},
		{"natural beats plain 20", []Card{{Rank: Ace}, {Rank: King}}, []Card{{Rank: King}, {Rank: Queen}}, OutcomeBlackjack},
		{"natural vs natural pushes", []Card{{Rank: Ace}, {Rank: King}}, []Card{{Rank: Ace}, {Rank: Queen}}, OutcomePush},
		{"natural beats three-card 21", []Card{{Rank: Ace}, {Rank: King}}, []Card{{Rank: Seven}, {Rank: Seven}, {Rank: Seven}}, OutcomeBlackjack},
		{"dealer late natural still pushes", []Card{{Rank: Ace}, {Rank: Jack}}, []Card{{Rank: Ten}, {Rank: Ace}}, OutcomePush},
		{"higher total wins", []Card{{Rank: Ten}, {Rank: Nine}}, []Card{{Rank: Ten}, {Rank: Eight}}, OutcomePlayerWin},
		{"lower total loses", []Card{{Rank: Ten}, {Rank: Seven}}, []Card{{Rank: Ten}, {Rank: Eight}}, OutcomeDealerWin},
		{"equal totals push", []Card{{Rank: Ten}, {Rank: Eight}}, []Card{{Rank: Nine}, {Rank: Nine}}, OutcomePush},
		{"three-card 21 vs dealer 20", []Card{{Rank: Seven}, {Rank: Seven}, {Rank: Seven}}, []Card{{Rank: King}, {Rank: Queen}}, OutcomePlayerWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.player, tt.dealer))
		})
	}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		bet      int
		expected int
	}{
		{OutcomePlayerWin, 100, 200},
		{OutcomeDealerBust, 100, 200},
		{OutcomePush, 100, 100},
		{OutcomeBlackjack, 100, 250},
		{OutcomeBlackjack, 50, 125},
		{OutcomeDealerWin, 100, 0},
		{OutcomeBust, 100, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.expected, Payout(tt.bet, tt.outcome))
		})
	}
}
