// Package stego hides an encrypted payload inside the pixel data of a
// carrier image and recovers it later, given a shared password.
//
// The codec operates purely on in-memory pixel buffers: an image decoding
// layer supplies the [PixelBuffer], and a UI or CLI supplies the message and
// password. Nothing in this package touches the filesystem; see the imageio
// subpackage for file format plumbing.
//
// # Algorithm Suite
//
//   - Argon2id: password-based key derivation with a fixed application salt,
//     stretched into a cipher key and a position seed via HKDF-SHA-512 under
//     distinct domain-separation strings.
//
//   - AES-256-GCM: authenticated encryption of the message. Extraction with
//     a wrong password or from a tampered carrier fails the tag check and
//     returns [ErrAuthenticationFailed] rather than garbage text.
//
//   - SHAKE128-driven Fisher–Yates: a deterministic permutation of every
//     embeddable channel slot, reproduced identically on both sides from the
//     password-derived seed. Payload bits land scattered across the whole
//     image, never in a contiguous run.
//
// # Wire Layout
//
// The embedded bit stream is a 32-bit big-endian ciphertext byte length
// followed by the ciphertext bits, most significant bit first, packed into
// the low bits of each sequencer-chosen channel. The ciphertext itself is
// nonce || encrypted message || tag.
//
// Basic usage:
//
//	carrier, err := imageio.DecodeFile("carrier.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stamped, err := stego.Embed(carrier, "meet at noon", "hunter2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg, err := stego.Extract(stamped, "hunter2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(msg)
package stego
