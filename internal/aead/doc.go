// Package aead provides the authenticated payload cipher for the codec.
//
// The payload is sealed with AES-256-GCM and serialized as
// nonce (12 bytes) || ciphertext || tag (16 bytes), so a ciphertext is
// exactly Overhead bytes longer than its plaintext. The tag is what lets
// the decoder distinguish a recovered message from a wrong password or a
// corrupted carrier: Decrypt verifies it and fails closed, never returning
// partial plaintext.
//
// Nonces MUST be unique per encryption under the same key. Nonce reuse
// breaks AES-GCM completely, allowing attackers to recover the
// authentication key and forge messages.
package aead
