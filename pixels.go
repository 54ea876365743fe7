package stego

import (
	"errors"
	"fmt"
)

// PixelBuffer is a decoded carrier image: an interleaved grid of channel
// intensities, Width*Height pixels of Channels bytes each, rows first.
// Three channels is RGB, four is RGBA.
//
// The codec treats the buffer as caller-owned. Embed clones it before the
// first bit is written and returns the clone; Extract only reads. Callers
// sharing one buffer across concurrent calls must serialize access
// themselves, though independent calls on different buffers are safe.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewPixelBuffer allocates a zeroed carrier buffer of the given geometry.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	b := &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.Pix = make([]uint8, width*height*channels)
	return b, nil
}

// Clone returns a deep copy sharing no storage with the receiver.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      pix,
	}
}

// Pixels returns the number of pixels in the buffer.
func (b *PixelBuffer) Pixels() int {
	return b.Width * b.Height
}

// EmbeddableSlots returns the number of channel slots available for
// embedding. With skipAlpha set, the alpha channel of four-channel buffers
// is excluded.
func (b *PixelBuffer) EmbeddableSlots(skipAlpha bool) int {
	channels := b.Channels
	if skipAlpha && channels == 4 {
		channels = 3
	}
	return b.Pixels() * channels
}

// validate checks the buffer's geometry. Pix may be nil only before
// allocation by NewPixelBuffer.
func (b *PixelBuffer) validate() error {
	if b == nil {
		return errors.New("nil pixel buffer")
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", b.Width, b.Height)
	}
	if b.Channels < 3 || b.Channels > 4 {
		return fmt.Errorf("unsupported channel count %d (want 3 or 4)", b.Channels)
	}
	if b.Pix != nil && len(b.Pix) != b.Width*b.Height*b.Channels {
		return fmt.Errorf("pixel data length %d does not match %dx%dx%d",
			len(b.Pix), b.Width, b.Height, b.Channels)
	}
	return nil
}

// checkBuffer validates a caller-supplied buffer for a codec call.
func checkBuffer(b *PixelBuffer) error {
	if b == nil {
		return fmt.Errorf("%w: nil pixel buffer", ErrInvalidInput)
	}
	if b.Pix == nil {
		return fmt.Errorf("%w: pixel buffer has no data", ErrInvalidInput)
	}
	if err := b.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
