package provablyfair

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// byteGenerator produces a deterministic byte stream from a seed pair using
// HMAC-SHA256. Block i is HMAC(serverSeed, "clientSeed:nonce:i"); bytes are
// consumed in order across blocks.
type byteGenerator struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      int
	cursor     int
	buffer     [sha256.Size]byte
}

func newByteGenerator(serverSeed, clientSeed string, nonce uint64) *byteGenerator {
	return &byteGenerator{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
		cursor:     sha256.Size, // force a block on first next()
	}
}

func (g *byteGenerator) next() byte {
	if g.cursor >= sha256.Size {
		mac := hmac.New(sha256.New, []byte(g.serverSeed))
		fmt.Fprintf(mac, "%s:%d:%d", g.clientSeed, g.nonce, g.round)
		copy(g.buffer[:], mac.Sum(nil))
		g.round++
		g.cursor = 0
	}
	b := g.buffer[g.cursor]
	g.cursor++
	return b
}

func (g *byteGenerator) nextUint16() uint16 {
	hi := g.next()
	lo := g.next()
	return uint16(hi)<<8 | uint16(lo)
}

// Permutation derives a permutation of [0,n) from the seed pair via a
// Fisher-Yates shuffle over the HMAC byte stream. Identical inputs always
// yield the identical permutation; that determinism is the whole point.
//
// Indices are drawn by rejection sampling: a 16-bit sample is discarded
// when it falls past the largest multiple of the bucket count, so no index
// is favoured by modulo bias.
func Permutation(serverSeed, clientSeed string, nonce uint64, n int) []int {
	g := newByteGenerator(serverSeed, clientSeed, nonce)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		m := uint32(i + 1)
		limit := (1 << 16) / m * m

		var r uint32
		for {
			r = uint32(g.nextUint16())
			if r < limit {
				break
			}
		}

		j := int(r % m)
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}
