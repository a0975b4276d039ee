package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/fairjack/fairjack-be/internal/provablyfair"
)

type State string

const (
	StateBetting    State = "betting"    // Waiting for a bet
	StatePlaying    State = "playing"    // Player may hit or stand
	StateDealerTurn State = "dealerTurn" // Dealer drawing to 17
	StateGameOver   State = "gameOver"   // Round settled, awaiting new round
)

// Session is a single-player blackjack session. It is the only stateful
// piece of the engine: every action mutates it and the caller persists the
// result. Callers must serialize actions per session; the session itself
// carries no lock.
type Session struct {
	ID           string               `json:"id"`
	Deck         *Deck                `json:"deck,omitempty"`
	DealerCards  []Card               `json:"dealerCards"`
	PlayerCards  []Card               `json:"playerCards"`
	State        State                `json:"state"`
	Balance      int                  `json:"balance"`
	Bet          int                  `json:"bet"`
	LastBet      int                  `json:"lastBet"` // previous round's bet, advisory only
	Result       Outcome              `json:"result,omitempty"`
	ProvablyFair *provablyfair.Record `json:"provablyFair"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// NewSession creates a session in the betting state with the supplied
// starting balance and a fresh provably-fair record. The hashed server
// seed is available to the client immediately; the deck is only built
// once a bet commits the round.
func NewSession(balance int) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New().String(),
		State:        StateBetting,
		Balance:      balance,
		ProvablyFair: provablyfair.NewRecord(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PlaceBet debits the stake, builds the fair deck for this round's seeds
// and deals the opening hands: dealer up card, dealer hole card (hidden),
// then two player cards face up.
func (s *Session) PlaceBet(amount int) error {
	if s.State != StateBetting {
		return ErrIllegalTransition
	}
	if amount <= 0 || amount > s.Balance {
		return ErrInvalidBet
	}

	s.Balance -= amount
	s.Bet = amount

	fair := s.ProvablyFair
	s.Deck = NewFairDeck(fair.ServerSeed, fair.ClientSeed, fair.Nonce)

	up := s.mustDraw()
	hole := s.mustDraw()
	hole.Hidden = true
	s.DealerCards = []Card{up, hole}
	s.PlayerCards = []Card{s.mustDraw(), s.mustDraw()}

	s.State = StatePlaying
	s.UpdatedAt = time.Now()
	return nil
}

// Hit deals the player one card. On bust the round ends immediately: the
// dealer's whole hand is revealed without drawing, no payout is made and
// the fairness record is completed so the seed becomes verifiable.
func (s *Session) Hit() error {
	if s.State != StatePlaying {
		return ErrIllegalTransition
	}

	s.PlayerCards = append(s.PlayerCards, s.mustDraw())

	if Score(s.PlayerCards) > 21 {
		s.revealDealer()
		s.settle(OutcomeBust)
	}

	s.UpdatedAt = time.Now()
	return nil
}

// Stand ends the player's turn and plays out the dealer: reveal the hole
// card, then draw until the dealer has 17 or more (the dealer stands on
// every 17, soft included). Each observable moment is returned as a view
// snapshot so the caller can animate the draws one by one. The final
// snapshot carries the settled result.
//
// If the state has drifted away from playing but the hands are still
// consistent (cards dealt, no result), the session self-heals back to
// playing first; duplicate or out-of-order requests then converge instead
// of failing.
func (s *Session) Stand() ([]View, error) {
	if s.State != StatePlaying {
		if len(s.PlayerCards) > 0 && len(s.DealerCards) > 0 && s.Result == "" {
			s.State = StatePlaying
		} else {
			return nil, ErrIllegalTransition
		}
	}

	s.State = StateDealerTurn
	s.revealDealer()

	steps := []View{s.Project(ViewOptions{})}

	for Score(s.DealerCards) < 17 {
		s.DealerCards = append(s.DealerCards, s.mustDraw())
		steps = append(steps, s.Project(ViewOptions{MarkNewCard: true}))
	}

	s.settle(Resolve(s.PlayerCards, s.DealerCards))
	s.UpdatedAt = time.Now()

	steps = append(steps, s.Project(ViewOptions{}))
	return steps, nil
}

// NextRound resets the table for a fresh round: hands, bet and result are
// cleared, the balance carries over, the just-ended bet is remembered for
// client convenience, and a brand new seed pair is issued. Seeds are never
// reused across rounds.
func (s *Session) NextRound() error {
	if s.State != StateGameOver {
		return ErrIllegalTransition
	}

	s.LastBet = s.Bet
	s.Bet = 0
	s.DealerCards = nil
	s.PlayerCards = nil
	s.Deck = nil
	s.Result = ""
	s.ProvablyFair = provablyfair.NewRecord()
	s.State = StateBetting
	s.UpdatedAt = time.Now()
	return nil
}

// settle records the outcome, credits any payout and completes the
// fairness record. Completing the record is what allows the server seed
// to be revealed for verification.
func (s *Session) settle(outcome Outcome) {
	s.Result = outcome
	s.Balance += Payout(s.Bet, outcome)
	s.State = StateGameOver
	s.ProvablyFair.Completed = true
}

func (s *Session) revealDealer() {
	for i := range s.DealerCards {
		s.DealerCards[i].Hidden = false
	}
}

// mustDraw panics on an empty deck. Blackjack's draw limits make underflow
// unreachable from any legal action sequence, so hitting it means the
// engine itself is broken.
func (s *Session) mustDraw() Card {
	card, ok := s.Deck.Draw()
	if !ok {
		panic("deck underflow: drew more than 52 cards in one round")
	}
	return card
}
