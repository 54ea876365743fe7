package kdf

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of the derived AES-256 key in bytes.
	KeySize = 32
	// SeedSize is the size of the derived position seed in bytes.
	SeedSize = 32

	// masterSize is the size of the Argon2id output stretched by HKDF.
	masterSize = 64

	// argonSalt is the fixed application salt. It is not secret: the scheme
	// hides the existence of a message, not the derivation parameters, and a
	// fixed salt is what makes derivation reproducible from the password alone.
	argonSalt = "pixelveil:stego:argon2id:v1"

	// keyInfo and seedInfo are the HKDF domain-separation strings for the
	// two outputs. Distinct info strings keep the key and the seed
	// cryptographically independent of each other.
	keyInfo  = "pixelveil:stego:key:v1"
	seedInfo = "pixelveil:stego:seed:v1"
)

// DefaultThreads is the Argon2id lane count. It participates in the hash
// input, so both sides of a transfer must use the same value.
const DefaultThreads = 4

// ErrEmptyPassword is returned when the password is empty.
var ErrEmptyPassword = errors.New("password must not be empty")

// Params holds the Argon2id cost parameters.
type Params struct {
	// Time is the number of Argon2id passes.
	Time uint32
	// MemoryKiB is the Argon2id memory cost in KiB.
	MemoryKiB uint32
	// Threads is the Argon2id lane count.
	Threads uint8
}

// DefaultParams returns cost parameters that keep interactive derivation
// under roughly 100ms on current hardware.
func DefaultParams() Params {
	return Params{Time: 3, MemoryKiB: 64 * 1024, Threads: DefaultThreads}
}

// Material holds the outputs of a derivation.
type Material struct {
	// Key is the AES-256 key for the payload cipher.
	Key []byte
	// Seed drives the position sequencer's pseudorandom permutation.
	Seed []byte
}

// Derive stretches the password into cipher key material and a position
// seed. The derivation is deterministic: the same password and parameters
// always produce bit-identical outputs.
func Derive(password []byte, p Params) (*Material, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return nil, fmt.Errorf("invalid KDF parameters: time=%d memory=%dKiB threads=%d",
			p.Time, p.MemoryKiB, p.Threads)
	}

	master := argon2.IDKey(password, []byte(argonSalt), p.Time, p.MemoryKiB, p.Threads, masterSize)

	key, err := expand(master, keyInfo, KeySize)
	if err != nil {
		return nil, err
	}
	seed, err := expand(master, seedInfo, SeedSize)
	if err != nil {
		return nil, err
	}

	return &Material{Key: key, Seed: seed}, nil
}

// expand derives length bytes from the master secret using HKDF-SHA-512
// with the given info string.
func expand(master []byte, info string, length int) ([]byte, error) {
	reader := hkdf.New(sha512.New, master, nil, []byte(info))
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("expand %q: %w", info, err)
	}
	return out, nil
}
