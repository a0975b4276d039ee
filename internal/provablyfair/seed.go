package provablyfair

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const (
	ServerSeedBytes = 32
	ClientSeedBytes = 16
)

// GenerateSeed returns a hex-encoded string carrying n bytes of entropy
// from the operating system's CSPRNG.
func GenerateSeed(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// HashSeed returns the hex-encoded SHA-256 digest of the seed. Publishing
// the digest before play commits the operator to the seed.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// Record holds the fairness material for a single round. The server seed
// must never leave the server until Completed is set; the hashed seed is
// safe to publish immediately.
type Record struct {
	GameID           string `json:"gameId"`
	ServerSeed       string `json:"serverSeed"`
	HashedServerSeed string `json:"hashedServerSeed"`
	ClientSeed       string `json:"clientSeed"`
	Nonce            uint64 `json:"nonce"`
	Completed        bool   `json:"completed"`
}

// NewRecord generates fresh seeds for a new round. Seeds are never reused:
// every round gets its own record. Nonce is fixed at 0 for now; it exists
// so a future multi-shuffle round can reuse a seed pair without replaying
// the same permutation.
func NewRecord() *Record {
	serverSeed := GenerateSeed(ServerSeedBytes)
	return &Record{
		GameID:           uuid.New().String(),
		ServerSeed:       serverSeed,
		HashedServerSeed: HashSeed(serverSeed),
		ClientSeed:       GenerateSeed(ClientSeedBytes),
		Nonce:            0,
		Completed:        false,
	}
}
