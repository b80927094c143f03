// Package secret holds the small byte-level helpers shared by the hashing
// engine and the login protocol: hex encoding, random salt and form token
// generation, timing-safe comparison, and best-effort wiping of password
// material.
//
// # Randomness
//
// Every random value produced here is read from crypto/rand.  Nothing in
// this package ever falls back to math/rand.
//
// # Comparison
//
// Hashes and tokens must be compared with [Equal], never with ==.  Equal
// returns early only when the lengths differ; the content comparison does
// not stop at the first differing byte.
//
// # Wiping
//
// [Wipe] and [Buffer] overwrite password bytes with zeros once they are no
// longer needed.  Go's garbage collector may already have copied the data
// elsewhere (string conversions, stack growth, heap moves), so this is a
// defence-in-depth measure and not a guarantee of erasure.
package secret
