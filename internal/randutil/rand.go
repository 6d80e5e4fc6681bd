// Package randutil centralises how game randomness is created and consumed.
package randutil

import (
	"encoding/binary"
	"io"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the random source consumed by decks and players.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Two games built from the same seed make identical draws, discards and
// tie-breaks.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Pick returns a uniformly chosen element of items. It panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// NewReader returns an io.Reader producing a deterministic byte stream for
// seed, independent of the *rand.Rand that New returns for the same seed.
func NewReader(seed int64) io.Reader {
	return &reader{src: rand.NewPCG(mix(uint64(seed)^goldenRatio64), mix(uint64(seed)))}
}

type reader struct {
	src *rand.PCG
	buf [8]byte
	n   int // unread bytes left in buf
}

func (r *reader) Read(p []byte) (int, error) {
	for i := range p {
		if r.n == 0 {
			binary.LittleEndian.PutUint64(r.buf[:], r.src.Uint64())
			r.n = len(r.buf)
		}
		p[i] = r.buf[len(r.buf)-r.n]
		r.n--
	}
	return len(p), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
