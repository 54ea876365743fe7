package sequence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cloudflare/circl/xof"
)

// ErrNoCapacity is returned when the carrier has no embeddable slots.
var ErrNoCapacity = errors.New("carrier has no embeddable channels")

// Position identifies a single embeddable channel slot in a carrier:
// the pixel index (row-major) and the channel index within that pixel.
type Position struct {
	Pixel   int
	Channel int
}

// Sequence yields a pseudorandom permutation of every embeddable slot in a
// carrier. Two sequences built from the same seed and geometry yield the
// identical positions in the identical order; this is the contract that
// lets extraction mirror embedding exactly.
type Sequence struct {
	perm     []uint32
	channels int // embeddable channels per pixel
	next     int
}

// New builds the full-capacity position sequence for a carrier of the given
// geometry. When skipAlpha is set and the carrier has four channels, the
// fourth channel is excluded so embedding never disturbs transparency.
//
// The permutation is always generated over the whole carrier, regardless of
// how many positions the caller will consume. A payload-sized permutation
// would shift the mapping with message length and leak length information
// through the traversal itself.
func New(seed []byte, pixels, channels int, skipAlpha bool) (*Sequence, error) {
	if pixels < 0 || channels < 1 || channels > 4 {
		return nil, fmt.Errorf("invalid carrier geometry: %d pixels, %d channels", pixels, channels)
	}

	embeddable := channels
	if skipAlpha && channels == 4 {
		embeddable = 3
	}

	slots := pixels * embeddable
	if slots == 0 {
		return nil, ErrNoCapacity
	}
	if uint64(slots) > math.MaxUint32 {
		return nil, fmt.Errorf("carrier too large: %d slots", slots)
	}

	return &Sequence{
		perm:     permute(seed, slots),
		channels: embeddable,
	}, nil
}

// Len returns the number of positions in the sequence, which equals the
// carrier's embeddable slot count.
func (s *Sequence) Len() int {
	return len(s.perm)
}

// Next returns the next position in the sequence. The second return value
// is false once the sequence is exhausted.
func (s *Sequence) Next() (Position, bool) {
	if s.next >= len(s.perm) {
		return Position{}, false
	}
	slot := int(s.perm[s.next])
	s.next++
	return Position{
		Pixel:   slot / s.channels,
		Channel: slot % s.channels,
	}, true
}

// Reset restarts the sequence from its first position.
func (s *Sequence) Reset() {
	s.next = 0
}

// permute returns a Fisher–Yates permutation of [0, n) driven by a SHAKE128
// stream keyed with the seed. The procedure is fixed so independent
// implementations agree bit-for-bit: absorb the seed, then for i from n-1
// down to 1 swap element i with an unbiased draw from [0, i+1).
func permute(seed []byte, n int) []uint32 {
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}

	d := newDrawer(seed)
	for i := n - 1; i > 0; i-- {
		j := d.uint64n(uint64(i) + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// drawer produces unbiased uniform integers from a SHAKE128 stream.
type drawer struct {
	stream xof.XOF
	buf    [8]byte
}

func newDrawer(seed []byte) *drawer {
	stream := xof.SHAKE128.New()
	stream.Write(seed)
	return &drawer{stream: stream}
}

// next64 reads the next eight stream bytes as a big-endian uint64.
func (d *drawer) next64() uint64 {
	d.stream.Read(d.buf[:])
	return binary.BigEndian.Uint64(d.buf[:])
}

// uint64n returns an unbiased uniform draw from [0, n) by rejection
// sampling: draws below 2^64 mod n are discarded, leaving a range that n
// divides evenly.
func (d *drawer) uint64n(n uint64) uint64 {
	threshold := -n % n
	for {
		v := d.next64()
		if v >= threshold {
			return v % n
		}
	}
}
