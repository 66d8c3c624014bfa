// internal/daily/daily.go
//
// Deterministic seeding for the daily board.
// Everyone playing on the same UTC date gets the same starting board and the
// same refill sequence for the same moves.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a PCG seed pair derived from a keyed BLAKE2b hash of the
// date key. Salts longer than a BLAKE2b key are hashed down first.
func Seed(date time.Time, salt string) (uint64, uint64) {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is ruled out above.
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}
