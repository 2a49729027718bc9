package chash

import "fmt"

const (
	// Sentinel is the reserved key marking an empty slot.
	Sentinel uint16 = 0xFFFF
	// MaxKey is the largest key that can be stored.
	MaxKey uint16 = Sentinel - 1
	// MaxCapacity is the largest slot count a table may have.
	MaxCapacity = 65535 - 1
)

// slot is one cell of the store. Under chaining, next links the overflow
// nodes owned by this slot.
type slot struct {
	key     uint16
	value   string
	deleted bool
	next    *slot
}

func (s *slot) empty() bool    { return s.key == Sentinel && !s.deleted }
func (s *slot) occupied() bool { return s.key != Sentinel }

func (s *slot) reset() {
	s.key = Sentinel
	s.value = ""
	s.deleted = false
	s.next = nil
}

// allocFunc allocates the slot array of a store.
type allocFunc func(n int) ([]slot, error)

func makeSlots(n int) ([]slot, error) {
	if n <= 0 || n > MaxCapacity {
		return nil, fmt.Errorf("%w: %d slots", ErrAllocationFailure, n)
	}
	return make([]slot, n), nil
}

// store owns the slot array and every overflow node hanging off it.
type store struct {
	slots      []slot
	count      int
	tombstones int
	strategy   Strategy
	hash       Hash
}

// placement describes where insert put a key, so the insert can be undone.
type placement struct {
	index    int
	s        *slot
	reused   bool
	collided bool
}

func newStore(alloc allocFunc, capacity int, strategy Strategy, hash Hash) (*store, error) {
	slots, err := alloc(capacity)
	if err != nil {
		return nil, err
	}
	if len(slots) != capacity {
		return nil, fmt.Errorf("%w: got %d slots, want %d", ErrAllocationFailure, len(slots), capacity)
	}
	for i := range slots {
		slots[i].reset()
	}
	return &store{slots: slots, strategy: strategy, hash: hash}, nil
}

func (st *store) capacity() int { return len(st.slots) }

func (st *store) seq(key uint16) probeSeq {
	return newProbeSeq(st.strategy, st.hash, key, len(st.slots))
}

// find returns the slot holding key and its slot index, or nil.
func (st *store) find(key uint16) (*slot, int) {
	if !st.strategy.openAddressing() {
		idx := st.hash.Index(key, len(st.slots))
		for n := &st.slots[idx]; n != nil; n = n.next {
			if n.occupied() && n.key == key {
				return n, idx
			}
		}
		return nil, -1
	}
	p := st.seq(key)
	for i := 0; i < p.Len(); i++ {
		idx := p.At(i)
		s := &st.slots[idx]
		if s.empty() {
			return nil, -1
		}
		if !s.deleted && s.key == key {
			return s, idx
		}
	}
	return nil, -1
}

// insert stores a key known to be absent. It returns ErrTableFull when the
// probe sequence has no free slot.
func (st *store) insert(key uint16, value string) (placement, error) {
	if !st.strategy.openAddressing() {
		idx := st.hash.Index(key, len(st.slots))
		head := &st.slots[idx]
		if !head.occupied() {
			head.key, head.value = key, value
			st.count++
			return placement{index: idx, s: head}, nil
		}
		tail := head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = &slot{key: key, value: value}
		st.count++
		return placement{index: idx, s: tail.next, collided: true}, nil
	}

	p := st.seq(key)
	target := -1
	for i := 0; i < p.Len(); i++ {
		idx := p.At(i)
		s := &st.slots[idx]
		if s.empty() {
			if target < 0 {
				target = idx
			}
			break
		}
		if s.deleted && target < 0 {
			target = idx
		}
	}
	if target < 0 {
		return placement{}, ErrTableFull
	}

	s := &st.slots[target]
	pl := placement{index: target, s: s, reused: s.deleted, collided: target != int(p.primary)}
	if s.deleted {
		st.tombstones--
	}
	s.key, s.value, s.deleted = key, value, false
	st.count++
	return pl, nil
}

// undo reverts an insert described by pl.
func (st *store) undo(key uint16, pl placement) {
	if !st.strategy.openAddressing() {
		st.remove(key)
		return
	}
	pl.s.key, pl.s.value, pl.s.deleted = Sentinel, "", pl.reused
	if pl.reused {
		st.tombstones++
	}
	st.count--
}

// remove deletes key and reports whether it was present. Open addressing
// leaves a tombstone; chaining unlinks the node or promotes the first
// overflow node into the primary slot.
func (st *store) remove(key uint16) bool {
	if st.strategy.openAddressing() {
		s, _ := st.find(key)
		if s == nil {
			return false
		}
		s.key, s.value, s.deleted = Sentinel, "", true
		st.tombstones++
		st.count--
		return true
	}

	head := &st.slots[st.hash.Index(key, len(st.slots))]
	if head.occupied() && head.key == key {
		if nx := head.next; nx != nil {
			head.key, head.value, head.next = nx.key, nx.value, nx.next
			nx.next = nil
		} else {
			head.reset()
		}
		st.count--
		return true
	}
	for prev, n := head, head.next; n != nil; prev, n = n, n.next {
		if n.key == key {
			prev.next = n.next
			n.next = nil
			st.count--
			return true
		}
	}
	return false
}

// each visits live entries in slot order, chained nodes after their head.
func (st *store) each(fn func(index int, s *slot) bool) {
	for i := range st.slots {
		for n := &st.slots[i]; n != nil; n = n.next {
			if n.occupied() && !fn(i, n) {
				return
			}
		}
	}
}

// rehashInto reinserts every entry into dst, which must be empty.
func (st *store) rehashInto(dst *store) error {
	var err error
	st.each(func(_ int, s *slot) bool {
		_, err = dst.insert(s.key, s.value)
		return err == nil
	})
	return err
}

// clone returns a deep copy with the same capacity and slot layout.
// Tombstones are kept so probe sequences in the copy stay intact.
func (st *store) clone(alloc allocFunc) (*store, error) {
	dst, err := newStore(alloc, len(st.slots), st.strategy, st.hash)
	if err != nil {
		return nil, err
	}
	for i := range st.slots {
		src := &st.slots[i]
		d := &dst.slots[i]
		d.key, d.value, d.deleted = src.key, src.value, src.deleted
		tail := d
		for n := src.next; n != nil; n = n.next {
			tail.next = &slot{key: n.key, value: n.value}
			tail = tail.next
		}
	}
	dst.count = st.count
	dst.tombstones = st.tombstones
	return dst, nil
}

// release unlinks every overflow node and drops the slot array.
func (st *store) release() {
	for i := range st.slots {
		n := st.slots[i].next
		st.slots[i].next = nil
		for n != nil {
			nx := n.next
			n.next = nil
			n = nx
		}
	}
	st.slots = nil
	st.count = 0
	st.tombstones = 0
}
