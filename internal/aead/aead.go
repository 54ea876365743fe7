package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the size of an AES-256 key in bytes.
	KeySize = 32
	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16
	// Overhead is the fixed ciphertext expansion: nonce plus tag.
	Overhead = NonceSize + TagSize
)

var (
	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCiphertextTooShort is returned when the ciphertext cannot even
	// hold a nonce and tag.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrAuthenticationFailed is returned when the GCM tag does not verify.
	// No plaintext is ever returned alongside it.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// NewNonce draws a fresh NonceSize-byte nonce from rng, or from crypto/rand
// when rng is nil. Callers must never reuse a nonce with the same key.
func NewNonce(rng io.Reader) ([]byte, error) {
	if rng == nil {
		rng = rand.Reader
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt seals plaintext with AES-256-GCM.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes).
func Encrypt(key, plaintext, nonce []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("invalid nonce size: got %d, want %d", len(nonce), NonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return append(append([]byte{}, nonce...), ciphertext...), nil
}

// Decrypt opens a nonce-prefixed AES-256-GCM ciphertext. A failed tag check
// fails closed with ErrAuthenticationFailed; this is the expected signal for
// a wrong password or a tampered carrier, not a bug.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(ciphertext) < Overhead {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrCiphertextTooShort, len(ciphertext), Overhead)
	}

	nonce := ciphertext[:NonceSize]
	sealed := ciphertext[NonceSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
