// Package sequence generates the deterministic pseudorandom order in which
// carrier slots are visited during embedding and extraction.
//
// The order is a full permutation of every embeddable slot, so payload bits
// are spread across the whole image instead of sitting in a contiguous,
// easily detectable run. The permutation is a Fisher–Yates shuffle whose
// randomness comes from a SHAKE128 extendable-output function keyed with the
// seed derived from the password. SHAKE gives the two properties the codec
// needs at once: the stream is exactly reproducible from the seed on any
// platform (unlike a language's default random facility), and it is
// cryptographically strong, so observing part of the traversal order reveals
// nothing about the rest.
package sequence
