package chash

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a nil or released table, a bad
	// requested capacity, an out-of-range key or a bad option.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a key is not stored in the table.
	ErrNotFound = errors.New("key not found")

	// ErrAllocationFailure is returned when a slot store cannot be allocated
	// or grown. The table is left as it was before the failing call.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrTableFull is returned when no slot can be found for a key and the
	// table is already at MaxCapacity.
	ErrTableFull = errors.New("hash table full")

	// ErrKeyExists is returned by Add when the key is already stored.
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidCapacity is returned by New for a zero, negative or
	// over-maximum capacity. It matches ErrInvalidArgument.
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be in [1, %d]", ErrInvalidArgument, MaxCapacity)

	// ErrInvalidKey is returned for the reserved sentinel key.
	ErrInvalidKey = fmt.Errorf("%w: key must be in [0, %d]", ErrInvalidArgument, MaxKey)

	// ErrReleased is returned when a released table is used.
	ErrReleased = fmt.Errorf("%w: table released", ErrInvalidArgument)

	// ErrUnsupportedHash is returned for hash strategies that are reserved
	// but have no implementation.
	ErrUnsupportedHash = fmt.Errorf("%w: unsupported hash strategy", ErrInvalidArgument)
)

// KeyError records the operation and key that failed.
//
// The underlying sentinel can be matched with errors.Is.
type KeyError struct {
	Op    string
	Key   uint16
	cause error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("chash: %s key %d: %v", e.Op, e.Key, e.cause)
}

func (e *KeyError) Unwrap() error { return e.cause }

func keyError(op string, key uint16, cause error) error {
	return &KeyError{Op: op, Key: key, cause: cause}
}
