package stego

import (
	"errors"

	"github.com/pixelveil/stego-go/internal/sequence"
)

// errSequenceExhausted signals a bug: the capacity check should make running
// out of positions impossible.
var errSequenceExhausted = errors.New("position sequence exhausted")

// bitWriter packs a bit stream into a pixel buffer, bitsPerSlot bits per
// sequencer position. Bits are consumed most significant first and occupy
// the low bitsPerSlot bits of each targeted channel; a trailing partial
// chunk is zero-padded on the right, which the reader discards by
// truncating at the known stream length.
type bitWriter struct {
	buf         *PixelBuffer
	seq         *sequence.Sequence
	bitsPerSlot int
	mask        uint8
	acc         uint64
	nacc        int
}

func newBitWriter(buf *PixelBuffer, seq *sequence.Sequence, bitsPerSlot int) *bitWriter {
	return &bitWriter{
		buf:         buf,
		seq:         seq,
		bitsPerSlot: bitsPerSlot,
		mask:        uint8(1)<<bitsPerSlot - 1,
	}
}

// writeBits appends the low n bits of v to the stream, most significant
// first. n must be at most 32.
func (w *bitWriter) writeBits(v uint64, n int) error {
	w.acc = w.acc<<n | v&(uint64(1)<<n-1)
	w.nacc += n
	for w.nacc >= w.bitsPerSlot {
		chunk := uint8(w.acc>>(w.nacc-w.bitsPerSlot)) & w.mask
		w.nacc -= w.bitsPerSlot
		w.acc &= uint64(1)<<w.nacc - 1
		if err := w.emit(chunk); err != nil {
			return err
		}
	}
	return nil
}

// flush writes any buffered partial chunk, left-aligned within the slot.
func (w *bitWriter) flush() error {
	if w.nacc == 0 {
		return nil
	}
	chunk := uint8(w.acc<<(w.bitsPerSlot-w.nacc)) & w.mask
	w.acc, w.nacc = 0, 0
	return w.emit(chunk)
}

// emit replaces the low bits of the next sequencer-chosen channel.
func (w *bitWriter) emit(chunk uint8) error {
	pos, ok := w.seq.Next()
	if !ok {
		return errSequenceExhausted
	}
	off := pos.Pixel*w.buf.Channels + pos.Channel
	w.buf.Pix[off] = w.buf.Pix[off]&^w.mask | chunk
	return nil
}

// bitReader mirrors bitWriter: it collects the low bitsPerSlot bits of each
// sequencer-chosen channel and hands them back as a contiguous bit stream.
// Chunks can straddle logical boundaries (a slot may hold the tail of the
// header and the head of the ciphertext), so the reader keeps leftover bits
// across calls.
type bitReader struct {
	buf         *PixelBuffer
	seq         *sequence.Sequence
	bitsPerSlot int
	mask        uint8
	acc         uint64
	nacc        int
}

func newBitReader(buf *PixelBuffer, seq *sequence.Sequence, bitsPerSlot int) *bitReader {
	return &bitReader{
		buf:         buf,
		seq:         seq,
		bitsPerSlot: bitsPerSlot,
		mask:        uint8(1)<<bitsPerSlot - 1,
	}
}

// readBits returns the next n stream bits, most significant first.
// n must be at most 32.
func (r *bitReader) readBits(n int) (uint64, error) {
	for r.nacc < n {
		pos, ok := r.seq.Next()
		if !ok {
			return 0, errSequenceExhausted
		}
		off := pos.Pixel*r.buf.Channels + pos.Channel
		chunk := r.buf.Pix[off] & r.mask
		r.acc = r.acc<<r.bitsPerSlot | uint64(chunk)
		r.nacc += r.bitsPerSlot
	}
	v := r.acc >> (r.nacc - n)
	r.nacc -= n
	r.acc &= uint64(1)<<r.nacc - 1
	return v, nil
}
