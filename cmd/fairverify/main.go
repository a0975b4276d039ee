// fairverify recomputes a round's deck from revealed seeds so anyone can
// check that the cards dealt match the operator's pre-committed shuffle.
//
// Usage:
//
//	fairverify --server-seed <seed> --client-seed <seed> [--nonce 0] [--hash <hashedServerSeed>]
//
// The deck is printed in deal order: the first line is the dealer's up
// card, the second the hole card, the third and fourth the player's
// opening hand, and so on through every card the round could have drawn.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fairjack/fairjack-be/internal/game"
	"github.com/fairjack/fairjack-be/internal/provablyfair"
)

var cli struct {
	ServerSeed string `required:"" help:"Server seed revealed after settlement."`
	ClientSeed string `required:"" help:"Client seed shown before the round."`
	Nonce      uint64 `default:"0" help:"Round nonce (currently always 0)."`
	Hash       string `optional:"" help:"Hashed server seed published before the round; verified when given."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("fairverify"),
		kong.Description("Recompute a provably-fair blackjack shuffle from its seeds."))

	if cli.Hash != "" {
		got := provablyfair.HashSeed(cli.ServerSeed)
		if got != cli.Hash {
			fmt.Fprintf(os.Stderr, "COMMITMENT MISMATCH\n  published hash: %s\n  hash of seed:   %s\nThe revealed seed is not the one the operator committed to.\n", cli.Hash, got)
			os.Exit(1)
		}
		fmt.Println("commitment ok: hash matches the revealed server seed")
	}

	deck := game.NewFairDeck(cli.ServerSeed, cli.ClientSeed, cli.Nonce)

	fmt.Printf("deck for seeds (server=%s..., client=%s, nonce=%d), in deal order:\n",
		cli.ServerSeed[:min(8, len(cli.ServerSeed))], cli.ClientSeed, cli.Nonce)
	pos := 1
	for {
		card, ok := deck.Draw()
		if !ok {
			break
		}
		fmt.Printf("%2d. %s of %s\n", pos, card.Rank, card.Suit)
		pos++
	}
}
