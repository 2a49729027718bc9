/*
Package chash provides a fixed-capacity hash table mapping uint16 keys to
string values with pluggable collision resolution.

Basic usage:

	import "github.com/theflywheel/chash"

	// Create a table with 50 slots using quadratic probing
	t, err := chash.New(50, chash.WithStrategy(chash.QuadraticProbing))
	if err != nil {
		log.Fatal(err)
	}
	defer t.Release()

	// Insert data
	err = t.Add(156, "Hello")

	// Retrieve data
	v, err := t.Find(156)
	if errors.Is(err, chash.ErrNotFound) {
		fmt.Println("missing")
	}

Features:

  - Keys in [0, MaxKey]; 0xFFFF is reserved as the empty-slot sentinel
  - Capacity in [1, MaxCapacity]; out-of-range requests fail rather than clamp
  - Separate chaining, linear probing, quadratic probing and double hashing
  - Modulo and xxhash index functions
  - Automatic doubling when the load factor reaches 80% (configurable)
  - Deep Copy, Move and idempotent Release
  - Not safe for concurrent use

Implementation Details:

Every table owns one slot array. Under chaining each slot also owns a
singly linked list of overflow nodes. The open-addressing strategies derive
candidate i from the primary index and i alone, so no probe state survives
between calls, and every search stops after capacity candidates. A lookup
ends at the first empty slot.

Deleting from an open-addressing table leaves a tombstone: lookups probe
past it, inserts reuse it. Resizes drop tombstones, and so does Compact,
which runs on its own once tombstones exceed a quarter of the slots.

A resize builds the larger slot array completely before swapping it in. If
it cannot be built, the Add that triggered it is undone and reports
ErrAllocationFailure.
*/
package chash
