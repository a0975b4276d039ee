package game

// Score calculates the blackjack total of a hand, accounting for aces.
// Aces start at 11 and are downgraded to 1 one at a time while the total
// is over 21, so the result is the best attainable total, or the minimal
// bust total when even all-hard aces cannot save the hand.
func Score(cards []Card) int {
	total := 0
	aces := 0

	for _, card := range cards {
		if card.IsAce() {
			aces++
		}
		total += card.Value()
	}

	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}

	return total
}

// isNatural reports whether a hand is a natural blackjack: exactly two
// cards totalling 21.
func isNatural(cards []Card) bool {
	return len(cards) == 2 && Score(cards) == 21
}
