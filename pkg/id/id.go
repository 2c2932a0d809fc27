package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Monotonic entropy keeps IDs minted in the same millisecond ordered.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a trade ID stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID whose timestamp is t. IDs sort lexicographically
// by creation time, which is the order trades were journaled in.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Only possible if the clock runs past year 10889 or entropy overflows.
		panic(err)
	}
	return id.String()
}

// Time returns the creation time encoded in a trade ID.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
