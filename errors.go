package stego

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidInput is returned for an empty password or message, a nil or
	// malformed pixel buffer, or malformed options. Nothing has been
	// computed; the caller can retry with corrected input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientCapacity is returned when the message plus its fixed
	// overhead does not fit the carrier's embeddable slots.
	ErrInsufficientCapacity = errors.New("insufficient carrier capacity")

	// ErrCorruptHeader is returned when the length header recovered from a
	// carrier is implausible. It signals a wrong password, a carrier with no
	// embedded message, or a corrupted one.
	ErrCorruptHeader = errors.New("corrupt length header")

	// ErrAuthenticationFailed is returned when the payload's authentication
	// tag does not verify. This is the primary signal for "wrong password or
	// tampered carrier"; no plaintext is ever returned alongside it.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong password or corrupted carrier")
)

// CapacityError reports how badly a payload missed the carrier's capacity.
type CapacityError struct {
	// NeededBits is the total payload size in bits, header included.
	NeededBits int
	// AvailableBits is the carrier's embeddable capacity in bits.
	AvailableBits int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient carrier capacity: need %d bits, have %d", e.NeededBits, e.AvailableBits)
}

// Is implements errors.Is for sentinel error matching.
func (e *CapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

// HeaderError reports an implausible recovered length header.
type HeaderError struct {
	// Length is the ciphertext byte length the header claimed.
	Length uint32
	// Reason describes why the length was rejected.
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("corrupt length header: claims %d bytes (%s)", e.Length, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *HeaderError) Is(target error) bool {
	return target == ErrCorruptHeader
}
