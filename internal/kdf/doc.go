// Package kdf turns a password into the two secrets the codec needs: a
// symmetric cipher key and a position-sequencer seed.
//
// Derivation runs Argon2id over the password with a fixed application salt,
// then expands the result with HKDF-SHA-512 under two distinct info strings.
// The split matters: the seed alone must not reveal the key, since the seed's
// effect (the order in which carrier slots are visited) is in principle
// observable by anyone who can diff the carrier against the original image.
//
// Everything here is deterministic by construction. There is no random
// input, so the decoding side can reproduce the identical key and seed from
// the password alone.
package kdf
