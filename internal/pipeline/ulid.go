package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job ids are ULIDs: 48 bits of millisecond time then 80 bits of randomness,
// Crockford base32 encoded, so they sort by submission time. A per-process
// sequence replaces the first random bits when several ids share a millisecond.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var ids struct {
	sync.Mutex
	lastMS uint64
	seq    uint16
}

// NewJobID returns a 26-character, time-ordered job id.
func NewJobID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	ms := uint64(now.UnixMilli())

	ids.Lock()
	if ms == ids.lastMS {
		ids.seq++
	} else {
		ids.lastMS = ms
		ids.seq = 0
	}
	seq := ids.seq
	ids.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], ms<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], seq)
	return encodeBase32(b)
}

// encodeBase32 writes the 128 bits of b as 26 five-bit digits, most
// significant first; the leading digit carries only 3 bits.
func encodeBase32(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[0:8])
	lo := binary.BigEndian.Uint64(b[8:16])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
