package game

// CardView is a card as the client is allowed to see it. A concealed card
// carries only the hidden flag; rank and suit are never serialized for it.
type CardView struct {
	Suit   Suit `json:"suit,omitempty"`
	Rank   Rank `json:"rank,omitempty"`
	Hidden bool `json:"hidden,omitempty"`
	New    bool `json:"new,omitempty"` // drives the deal/draw animation
}

// FairView is the externally visible slice of the fairness record. The
// server seed appears only once the round is completed; before that the
// client has the hash commitment and its own seed.
type FairView struct {
	GameID           string `json:"gameId"`
	HashedServerSeed string `json:"hashedServerSeed"`
	ClientSeed       string `json:"clientSeed"`
	Nonce            uint64 `json:"nonce"`
	ServerSeed       string `json:"serverSeed,omitempty"`
	Completed        bool   `json:"completed"`
}

// View is the client-facing projection of a session. It is rebuilt from
// scratch on every action and holds no reference back to the session.
type View struct {
	SessionID    string     `json:"sessionId,omitempty"`
	State        State      `json:"state"`
	PlayerCards  []CardView `json:"playerCards"`
	DealerCards  []CardView `json:"dealerCards"`
	PlayerScore  int        `json:"playerScore"`
	DealerScore  int        `json:"dealerScore"`
	Balance      int        `json:"balance"`
	Bet          int        `json:"bet"`
	LastBet      int        `json:"lastBet,omitempty"`
	Result       Outcome    `json:"result,omitempty"`
	Message      string     `json:"message,omitempty"`
	ProvablyFair *FairView  `json:"provablyFair,omitempty"`
}

type ViewOptions struct {
	// MarkNewCard flags the most recently dealt card for animation.
	MarkNewCard bool
	// InitialDeal flags the trailing card of both hands instead.
	InitialDeal bool
	// HideDealerExceptFirst masks every dealer card after the up card,
	// even ones not individually hidden. Used while the hole card is down.
	HideDealerExceptFirst bool
}

// Project maps the session to its client view. Hidden cards become opaque
// placeholders, and while any dealer concealment is active the dealer
// score is reported as 0 so the score field cannot leak what the cards do
// not show.
func (s *Session) Project(opts ViewOptions) View {
	dealerConcealed := opts.HideDealerExceptFirst

	dealerCards := make([]CardView, len(s.DealerCards))
	for i, card := range s.DealerCards {
		masked := card.Hidden || (opts.HideDealerExceptFirst && i > 0)
		if masked {
			dealerCards[i] = CardView{Hidden: true}
			dealerConcealed = true
			continue
		}
		dealerCards[i] = CardView{Suit: card.Suit, Rank: card.Rank}
	}

	playerCards := make([]CardView, len(s.PlayerCards))
	for i, card := range s.PlayerCards {
		playerCards[i] = CardView{Suit: card.Suit, Rank: card.Rank}
	}

	if opts.InitialDeal {
		markLast(playerCards)
		markLast(dealerCards)
	} else if opts.MarkNewCard {
		if s.newestCardIsDealers() {
			markLast(dealerCards)
		} else {
			markLast(playerCards)
		}
	}

	dealerScore := 0
	if !dealerConcealed {
		dealerScore = Score(s.DealerCards)
	}

	return View{
		SessionID:    s.ID,
		State:        s.State,
		PlayerCards:  playerCards,
		DealerCards:  dealerCards,
		PlayerScore:  Score(s.PlayerCards),
		DealerScore:  dealerScore,
		Balance:      s.Balance,
		Bet:          s.Bet,
		LastBet:      s.LastBet,
		Result:       s.Result,
		ProvablyFair: projectFair(s),
	}
}

// CurrentView projects the session with the concealment appropriate to its
// state: the hole card stays down until the player stands or busts.
func (s *Session) CurrentView() View {
	return s.Project(ViewOptions{HideDealerExceptFirst: s.State == StatePlaying})
}

// DefaultView is the neutral view returned when no session exists for a
// request. It prompts the client to start fresh and mutates nothing.
func DefaultView(message string) View {
	return View{
		State:       StateBetting,
		PlayerCards: []CardView{},
		DealerCards: []CardView{},
		Message:     message,
	}
}

// newestCardIsDealers decides which hand received the most recent card.
// Player cards only arrive while the player is acting; once the dealer is
// drawing, or the round settled any way other than a player bust, the
// trailing dealer card is the fresh one.
func (s *Session) newestCardIsDealers() bool {
	switch s.State {
	case StateDealerTurn:
		return true
	case StateGameOver:
		return s.Result != OutcomeBust
	default:
		return false
	}
}

func markLast(cards []CardView) {
	if len(cards) > 0 {
		cards[len(cards)-1].New = true
	}
}

func projectFair(s *Session) *FairView {
	rec := s.ProvablyFair
	if rec == nil {
		return nil
	}
	view := &FairView{
		GameID:           rec.GameID,
		HashedServerSeed: rec.HashedServerSeed,
		ClientSeed:       rec.ClientSeed,
		Nonce:            rec.Nonce,
		Completed:        rec.Completed,
	}
	// The raw seed stays server-side until the round is settled.
	if rec.Completed {
		view.ServerSeed = rec.ServerSeed
	}
	return view
}
