package game

type Outcome string

const (
	OutcomeBust       Outcome = "bust"       // Player went over 21
	OutcomeDealerBust Outcome = "dealerBust" // Dealer went over 21
	OutcomeBlackjack  Outcome = "blackjack"  // Player natural, pays 3:2
	OutcomePush       Outcome = "push"       // Tie, stake returned
	OutcomePlayerWin  Outcome = "playerWin"  // Player total beats dealer
	OutcomeDealerWin  Outcome = "dealerWin"  // Dealer total beats player
)

// Resolve classifies a finished round. The checks run in a fixed order:
// player bust, dealer bust, naturals, then plain totals. A dealer two-card
// 21 pushes a player natural even when the dealer only completed the hand
// after the player stood.
func Resolve(playerCards, dealerCards []Card) Outcome {
	playerScore := Score(playerCards)
	dealerScore := Score(dealerCards)

	switch {
	case playerScore > 21:
		return OutcomeBust
	case dealerScore > 21:
		return OutcomeDealerBust
	case isNatural(playerCards):
		if isNatural(dealerCards) {
			return OutcomePush
		}
		return OutcomeBlackjack
	case playerScore > dealerScore:
		return OutcomePlayerWin
	case playerScore < dealerScore:
		return OutcomeDealerWin
	default:
		return OutcomePush
	}
}

// Payout returns the amount credited back to the balance for an outcome.
// The stake was debited when the bet was placed, so even-money wins return
// 2x and a push returns the stake. Losses return nothing.
func Payout(bet int, outcome Outcome) int {
	switch outcome {
	case OutcomePlayerWin, OutcomeDealerBust:
		return bet * 2
	case OutcomePush:
		return bet
	case OutcomeBlackjack:
		// 3:2 on the win plus the stake back.
		return bet*2 + bet/2
	default:
		return 0
	}
}
