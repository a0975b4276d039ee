package provablyfair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutationDeterminism(t *testing.T) {
	p1 := Permutation("server-seed-abc", "client-seed-def", 0, 52)
	p2 := Permutation("server-seed-abc", "client-seed-def", 0, 52)
	assert.Equal(t, p1, p2, "identical seeds must yield identical permutations")
}

func TestPermutationIsValid(t *testing.T) {
	seeds := []struct{ server, client string }{
		{"a", "b"},
		{"9f86d081884c7d65", "e3b0c44298fc1c14"},
		{"server", ""},
		{"", "client"},
	}

	for _, s := range seeds {
		perm := Permutation(s.server, s.client, 0, 52)
		require.Len(t, perm, 52)

		seen := make(map[int]bool, 52)
		for _, idx := range perm {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 52)
			assert.False(t, seen[idx], "index %d appeared twice", idx)
			seen[idx] = true
		}
	}
}

func TestPermutationVariesWithSeeds(t *testing.T) {
	base := Permutation("server", "client", 0, 52)

	assert.NotEqual(t, base, Permutation("server2", "client", 0, 52))
	assert.NotEqual(t, base, Permutation("server", "client2", 0, 52))
	assert.NotEqual(t, base, Permutation("server", "client", 1, 52))
}

func TestGenerateSeed(t *testing.T) {
	seed := GenerateSeed(32)
	assert.Len(t, seed, 64, "32 bytes hex-encode to 64 characters")
	assert.NotEqual(t, seed, GenerateSeed(32))
}

func TestHashSeed(t *testing.T) {
	// SHA-256("test")
	assert.Equal(t,
		"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		HashSeed("test"))
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord()

	assert.NotEmpty(t, rec.GameID)
	assert.Equal(t, HashSeed(rec.ServerSeed), rec.HashedServerSeed)
	assert.Equal(t, uint64(0), rec.Nonce)
	assert.False(t, rec.Completed)

	other := NewRecord()
	assert.NotEqual(t, rec.ServerSeed, other.ServerSeed, "seeds must never repeat across rounds")
	assert.NotEqual(t, rec.ClientSeed, other.ClientSeed)
	assert.NotEqual(t, rec.GameID, other.GameID)
}
