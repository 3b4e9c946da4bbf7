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

	// Monotonic keeps IDs minted within the same millisecond ordered, so a
	// CSV import of many rows still yields distinct, sortable identifiers.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string for a ledger transaction.
func New() string {
	return At(time.Now())
}

// At returns a ULID whose timestamp component is t. Times before the Unix
// epoch cannot be encoded and fall back to the current time.
func At(t time.Time) string {
	if t.Before(time.Unix(0, 0)) {
		t = time.Now()
	}

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Only on entropy overflow within a single millisecond.
		panic(err)
	}
	return id.String()
}
