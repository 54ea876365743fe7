package stego

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pixelveil/stego-go/internal/aead"
	"github.com/pixelveil/stego-go/internal/kdf"
	"github.com/pixelveil/stego-go/internal/sequence"
)

// headerBits is the width of the embedded length header: a 32-bit
// big-endian ciphertext byte count, always occupying the first positions of
// the sequence so extraction can size the payload without guessing.
const headerBits = 32

// Embed hides message inside a copy of the carrier, protected by password.
// The caller's buffer is never mutated; all validation and capacity
// checking happen before the clone is written.
//
// Fails with ErrInvalidInput for an empty message or password, a malformed
// buffer or option, and with ErrInsufficientCapacity when the encrypted
// message plus header does not fit the carrier. A payload that exactly
// fills the carrier is valid.
func Embed(buf *PixelBuffer, message, password string, opts ...Option) (*PixelBuffer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrInvalidInput)
	}
	if !utf8.ValidString(message) {
		return nil, fmt.Errorf("%w: message is not valid UTF-8", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	material, err := kdf.Derive([]byte(password), cfg.kdfParams())
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	nonce, err := aead.NewNonce(cfg.randReader)
	if err != nil {
		return nil, err
	}
	ciphertext, err := aead.Encrypt(material.Key, []byte(message), nonce)
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}

	seq, err := newSequence(material.Seed, buf, cfg)
	if err != nil {
		return nil, err
	}

	totalBits := headerBits + len(ciphertext)*8
	capacityBits := seq.Len() * cfg.bitsPerSlot
	if totalBits > capacityBits {
		return nil, &CapacityError{NeededBits: totalBits, AvailableBits: capacityBits}
	}

	out := buf.Clone()
	w := newBitWriter(out, seq, cfg.bitsPerSlot)
	if err := w.writeBits(uint64(len(ciphertext)), headerBits); err != nil {
		return nil, err
	}
	for _, b := range ciphertext {
		if err := w.writeBits(uint64(b), 8); err != nil {
			return nil, err
		}
	}
	if err := w.flush(); err != nil {
		return nil, err
	}

	return out, nil
}

// Extract recovers a message hidden by Embed with the same password and
// configuration.
//
// Fails with ErrCorruptHeader when the recovered length header is
// implausible and with ErrAuthenticationFailed when the payload's tag does
// not verify; both are the expected outcomes for a wrong password or a
// carrier with no embedded message.
func Extract(buf *PixelBuffer, password string, opts ...Option) (string, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return "", err
	}
	if err := checkBuffer(buf); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	material, err := kdf.Derive([]byte(password), cfg.kdfParams())
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	seq, err := newSequence(material.Seed, buf, cfg)
	if err != nil {
		return "", err
	}

	capacityBits := seq.Len() * cfg.bitsPerSlot
	if capacityBits < headerBits {
		return "", &CapacityError{NeededBits: headerBits, AvailableBits: capacityBits}
	}

	r := newBitReader(buf, seq, cfg.bitsPerSlot)
	rawLen, err := r.readBits(headerBits)
	if err != nil {
		return "", err
	}
	length := uint32(rawLen)

	switch {
	case length <= aead.Overhead:
		return "", &HeaderError{Length: length, Reason: "no room for payload past cipher overhead"}
	case headerBits+int64(length)*8 > int64(capacityBits):
		return "", &HeaderError{Length: length, Reason: "exceeds carrier capacity"}
	}

	ciphertext := make([]byte, length)
	for i := range ciphertext {
		b, err := r.readBits(8)
		if err != nil {
			return "", err
		}
		ciphertext[i] = uint8(b)
	}

	plaintext, err := aead.Decrypt(material.Key, ciphertext)
	if err != nil {
		if errors.Is(err, aead.ErrAuthenticationFailed) {
			return "", ErrAuthenticationFailed
		}
		return "", fmt.Errorf("decrypt payload: %w", err)
	}

	return string(plaintext), nil
}

// CapacityBits returns the carrier's embeddable capacity in bits under the
// given configuration: embeddable slots times bits per slot.
func CapacityBits(buf *PixelBuffer, opts ...Option) (int, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	if err := checkBuffer(buf); err != nil {
		return 0, err
	}
	return buf.EmbeddableSlots(cfg.skipAlpha) * cfg.bitsPerSlot, nil
}

// MaxMessageSize returns the largest message, in bytes, that Embed can hide
// in the carrier under the given configuration, accounting for the length
// header and the cipher's fixed overhead. Returns 0 when even an empty
// payload would not fit.
func MaxMessageSize(buf *PixelBuffer, opts ...Option) (int, error) {
	capacityBits, err := CapacityBits(buf, opts...)
	if err != nil {
		return 0, err
	}
	max := (capacityBits-headerBits)/8 - aead.Overhead
	if max < 0 {
		return 0, nil
	}
	return max, nil
}

// newSequence builds the full-capacity position sequence for a buffer,
// mapping sequencer failures onto the package error taxonomy.
func newSequence(seed []byte, buf *PixelBuffer, cfg *config) (*sequence.Sequence, error) {
	seq, err := sequence.New(seed, buf.Pixels(), buf.Channels, cfg.skipAlpha)
	if err != nil {
		if errors.Is(err, sequence.ErrNoCapacity) {
			return nil, &CapacityError{NeededBits: headerBits, AvailableBits: 0}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return seq, nil
}
