package chash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash selects the function that maps a key to its primary slot.
type Hash uint8

const (
	// HashModulo maps key to key mod capacity.
	HashModulo Hash = iota
	// HashXX maps key to xxhash64(key) mod capacity.
	HashXX
	// HashString is reserved for string-keyed hashing and has no
	// implementation.
	HashString
	// HashCrypto is reserved for cryptographic hashing and has no
	// implementation.
	HashCrypto
)

func (h Hash) String() string {
	switch h {
	case HashModulo:
		return "modulo"
	case HashXX:
		return "xxhash"
	case HashString:
		return "string"
	case HashCrypto:
		return "crypto"
	default:
		return "unknown"
	}
}

func (h Hash) supported() bool {
	return h == HashModulo || h == HashXX
}

// Sum returns the full hash of key before it is reduced to a slot index.
func (h Hash) Sum(key uint16) uint64 {
	if h == HashXX {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], key)
		return xxhash.Sum64(b[:])
	}
	return uint64(key)
}

// Index returns the primary slot of key in a table of the given capacity.
// The result is in [0, capacity). capacity must be positive.
func (h Hash) Index(key uint16, capacity int) int {
	return int(h.Sum(key) % uint64(capacity))
}

// HashIndex is the default hash: key mod capacity.
func HashIndex(key uint16, capacity int) int {
	return HashModulo.Index(key, capacity)
}
