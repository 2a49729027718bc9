package chash

import (
	"errors"
	"fmt"
)

// Table maps uint16 keys to string values in a fixed number of slots.
//
// A Table is not safe for concurrent use.
type Table struct {
	st    *store
	opts  options
	log   *Logger
	stats Stats
}

// Stats counts structural events over the life of a table.
type Stats struct {
	Resizes     int
	Compactions int
	Collisions  int
	Tombstones  int
}

// New creates a table with exactly capacity slots, all empty.
// capacity must be in [1, MaxCapacity]; larger requests are rejected, not
// clamped.
func New(capacity int, opts ...Option) (*Table, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	st, err := newStore(o.alloc, capacity, o.strategy, o.hash)
	if err != nil {
		return nil, err
	}
	return &Table{st: st, opts: o, log: o.logger.WithStrategy(o.strategy)}, nil
}

func (t *Table) usable() error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidArgument)
	}
	if t.st == nil {
		return ErrReleased
	}
	return nil
}

// Add stores value under key. The key must not already be present.
func (t *Table) Add(key uint16, value string) error {
	if err := t.usable(); err != nil {
		return keyError("add", key, err)
	}
	if key == Sentinel {
		return keyError("add", key, ErrInvalidKey)
	}
	if s, _ := t.st.find(key); s != nil {
		return keyError("add", key, ErrKeyExists)
	}

	var pl placement
	for {
		if t.st.count < t.st.capacity() {
			var err error
			if pl, err = t.st.insert(key, value); err == nil {
				break
			}
		}
		if t.st.capacity() >= MaxCapacity {
			return keyError("add", key, ErrTableFull)
		}
		if err := t.grow(); err != nil {
			return keyError("add", key, err)
		}
	}

	if t.LoadFactor() >= t.opts.limit && t.st.capacity() < MaxCapacity {
		if err := t.grow(); err != nil {
			t.st.undo(key, pl)
			return keyError("add", key, err)
		}
	}
	if pl.collided {
		t.stats.Collisions++
	}
	return nil
}

// grow rehashes every entry into a store of double capacity, capped at
// MaxCapacity, and swaps it in. Quadratic sequences cover only part of the
// slots, so a rehash that runs out of candidates doubles again. On failure
// the current store is untouched.
func (t *Table) grow() error {
	from := t.st.capacity()
	to := from
	for {
		to *= 2
		if to > MaxCapacity {
			to = MaxCapacity
		}
		err := t.rebuild(to)
		if errors.Is(err, ErrTableFull) && to < MaxCapacity {
			continue
		}
		t.log.logResize(from, to, t.st.count, err)
		if err != nil {
			return err
		}
		t.stats.Resizes++
		return nil
	}
}

func (t *Table) rebuild(capacity int) error {
	ns, err := newStore(t.opts.alloc, capacity, t.st.strategy, t.st.hash)
	if err != nil {
		if errors.Is(err, ErrAllocationFailure) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}
	if err := t.st.rehashInto(ns); err != nil {
		ns.release()
		return fmt.Errorf("%w: rehash into %d slots: %w", ErrAllocationFailure, capacity, err)
	}
	old := t.st
	t.st = ns
	old.release()
	return nil
}

// Compact rehashes the table at its current capacity, dropping tombstones
// left by deletes. It is a no-op for chaining tables.
func (t *Table) Compact() error {
	if err := t.usable(); err != nil {
		return err
	}
	if !t.st.strategy.openAddressing() || t.st.tombstones == 0 {
		return nil
	}
	dropped := t.st.tombstones
	err := t.rebuild(t.st.capacity())
	t.log.logCompact(t.st.capacity(), dropped, err)
	if err != nil {
		return err
	}
	t.stats.Compactions++
	return nil
}

// Find returns the value stored under key.
func (t *Table) Find(key uint16) (string, error) {
	if err := t.usable(); err != nil {
		return "", keyError("find", key, err)
	}
	if key == Sentinel {
		return "", keyError("find", key, ErrInvalidKey)
	}
	s, _ := t.st.find(key)
	if s == nil {
		return "", keyError("find", key, ErrNotFound)
	}
	return s.value, nil
}

// Update replaces the value stored under key and returns the entry count.
func (t *Table) Update(key uint16, value string) (int, error) {
	if err := t.usable(); err != nil {
		return 0, keyError("update", key, err)
	}
	if key == Sentinel {
		return 0, keyError("update", key, ErrInvalidKey)
	}
	s, _ := t.st.find(key)
	if s == nil {
		return 0, keyError("update", key, ErrNotFound)
	}
	s.value = value
	return t.st.count, nil
}

// Delete removes key and returns the new entry count.
func (t *Table) Delete(key uint16) (int, error) {
	if err := t.usable(); err != nil {
		return 0, keyError("delete", key, err)
	}
	if key == Sentinel {
		return 0, keyError("delete", key, ErrInvalidKey)
	}
	if !t.st.remove(key) {
		return 0, keyError("delete", key, ErrNotFound)
	}
	if t.st.tombstones > t.st.capacity()/4 {
		// A failed compaction keeps the tombstones; lookups stay correct.
		_ = t.Compact()
	}
	return t.st.count, nil
}

// LoadFactor returns round(100 * Len() / Size()), or 0 for an empty or
// released table.
func (t *Table) LoadFactor() int {
	if t == nil || t.st == nil || t.st.count == 0 {
		return 0
	}
	c := t.st.capacity()
	return (200*t.st.count + c) / (2 * c)
}

// Size returns the number of slots. It is 0 after Release.
func (t *Table) Size() int {
	if t == nil || t.st == nil {
		return 0
	}
	return t.st.capacity()
}

// Capacity is an alias of Size.
func (t *Table) Capacity() int { return t.Size() }

// Len returns the number of stored entries.
func (t *Table) Len() int {
	if t == nil || t.st == nil {
		return 0
	}
	return t.st.count
}

// Strategy returns the collision strategy of the table.
func (t *Table) Strategy() Strategy { return t.opts.strategy }

// Hash returns the hash strategy of the table.
func (t *Table) Hash() Hash { return t.opts.hash }

// Released reports whether Release has been called.
func (t *Table) Released() bool { return t == nil || t.st == nil }

// Stats returns the table's event counters.
func (t *Table) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	s := t.stats
	if t.st != nil {
		s.Tombstones = t.st.tombstones
	}
	return s
}

// Range calls fn for every entry in slot order, passing the primary slot
// index for chained entries. Iteration stops when fn returns false. fn must
// not modify the table.
func (t *Table) Range(fn func(index int, key uint16, value string) bool) {
	if t == nil || t.st == nil {
		return
	}
	t.st.each(func(i int, s *slot) bool {
		return fn(i, s.key, s.value)
	})
}

// Release frees the slots and overflow nodes. The table has capacity 0
// afterwards and must not be used again. Releasing twice is a no-op.
func (t *Table) Release() {
	if t == nil || t.st == nil {
		return
	}
	capacity, count := t.st.capacity(), t.st.count
	t.st.release()
	t.st = nil
	t.log.Debug("table released", "capacity", capacity, "count", count)
}

// Copy returns a deep copy of src with the same capacity and options, and
// the number of entries copied. The copy shares no memory with src.
func Copy(src *Table) (*Table, int, error) {
	if err := src.usable(); err != nil {
		return nil, 0, fmt.Errorf("chash: copy: %w", err)
	}
	st, err := src.st.clone(src.opts.alloc)
	if err != nil {
		return nil, 0, fmt.Errorf("chash: copy: %w", err)
	}
	dst := &Table{st: st, opts: src.opts, log: src.log}
	return dst, st.count, nil
}

// Move copies src into a new table and releases src. If the copy fails src
// is left untouched.
func Move(src *Table) (*Table, error) {
	dst, _, err := Copy(src)
	if err != nil {
		return nil, err
	}
	src.Release()
	return dst, nil
}
