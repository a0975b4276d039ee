package game

import (
	"math/rand"
	"time"

	"github.com/fairjack/fairjack-be/internal/provablyfair"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

type Deck struct {
	Cards []Card `json:"cards"`
}

// NewOrderedDeck creates the 52-card deck in canonical order: suits outer
// loop, ranks inner loop, per the Suits/Ranks enumeration. This order is
// the base domain for every shuffle, provably fair or not.
func NewOrderedDeck() *Deck {
	deck := &Deck{Cards: make([]Card, 0, DeckSize)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.Cards = append(deck.Cards, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// NewFairDeck creates a deck shuffled by the seed-derived permutation.
// Identical seeds always produce the identical deck, which is what lets a
// third party recompute and verify the shuffle after the seeds are
// revealed.
func NewFairDeck(serverSeed, clientSeed string, nonce uint64) *Deck {
	ordered := NewOrderedDeck()
	perm := provablyfair.Permutation(serverSeed, clientSeed, nonce, DeckSize)

	cards := make([]Card, DeckSize)
	for i, p := range perm {
		cards[i] = ordered.Cards[p]
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the deck in place with a non-deterministic source.
// Not verifiable; the session uses NewFairDeck instead.
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw removes and returns the top card. The top of the deck is the end of
// the slice, so the first card dealt is the last index of the permutation.
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card := d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
